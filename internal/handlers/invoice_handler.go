package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"invoice-backend/internal/models"
	"invoice-backend/internal/services"
	"invoice-backend/pkg/utils"

	"github.com/gorilla/mux"
)

const (
	defaultPageSize = 25
	defaultPage     = 1
)

type InvoiceHandler struct {
	Service *services.InvoiceService
}

func NewInvoiceHandler(service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Service: service}
}

func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := validateCreateInvoice(&req); len(errs) > 0 {
		utils.JSON(w, http.StatusBadRequest, models.ValidationErrorResponse{Errors: errs})
		return
	}

	invoiceNo, err := h.Service.CreateInvoice(r.Context(), &req)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	utils.JSON(w, http.StatusOK, models.CreateInvoiceResponse{
		Message:   "Invoice created successfully",
		InvoiceNo: invoiceNo,
	})
}

func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date := q.Get("date")
	if date != "" && !isISODate(date) {
		utils.JSON(w, http.StatusBadRequest, models.ValidationErrorResponse{
			Errors: []models.FieldError{{Field: "date", Message: "must be a valid date in YYYY-MM-DD format"}},
		})
		return
	}

	size, errs := positiveIntParam(q.Get("size"), "size", defaultPageSize)
	page, pageErrs := positiveIntParam(q.Get("page"), "page", defaultPage)
	errs = append(errs, pageErrs...)
	if len(errs) > 0 {
		utils.JSON(w, http.StatusBadRequest, models.ValidationErrorResponse{Errors: errs})
		return
	}

	result, err := h.Service.ListInvoices(r.Context(), date, size, page)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceNo := mux.Vars(r)["invoice_no"]

	var req models.UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := validateUpdateInvoice(&req); len(errs) > 0 {
		utils.JSON(w, http.StatusBadRequest, models.ValidationErrorResponse{Errors: errs})
		return
	}

	if err := h.Service.UpdateInvoice(r.Context(), invoiceNo, &req); err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	utils.JSON(w, http.StatusOK, models.MessageResponse{Message: "Invoice and associated products updated successfully"})
}

func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceNo := mux.Vars(r)["invoice_no"]

	if err := h.Service.DeleteInvoice(r.Context(), invoiceNo); err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	utils.JSON(w, http.StatusOK, models.MessageResponse{Message: "Invoice and associated products deleted successfully"})
}

// positiveIntParam parses a pagination query parameter, falling back to def
// when the parameter is absent.
func positiveIntParam(raw, field string, def int) (int, []models.FieldError) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, []models.FieldError{{Field: field, Message: "must be a positive integer"}}
	}
	return n, nil
}
