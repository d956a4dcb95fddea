package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"invoice-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The 400 paths below never reach the service, so a handler with a nil
// service is enough to exercise them.

func decodeValidationErrors(t *testing.T, rec *httptest.ResponseRecorder) []models.FieldError {
	t.Helper()
	var body models.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Errors
}

func TestCreateInvoiceRejectsMalformedBody(t *testing.T) {
	h := NewInvoiceHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.CreateInvoice(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Invalid request body", body.Error)
}

func TestCreateInvoiceRejectsInvalidFields(t *testing.T) {
	h := NewInvoiceHandler(nil)

	payload := `{"date":"bad","customer_name":"A","salesperson_name":"","payment_type":"CHEQUE","products":[]}`
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.CreateInvoice(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs := decodeValidationErrors(t, rec)
	got := fields(errs)
	assert.Contains(t, got, "date")
	assert.Contains(t, got, "customer_name")
	assert.Contains(t, got, "payment_type")
	assert.Contains(t, got, "products")
}

func TestListInvoicesRejectsBadDate(t *testing.T) {
	h := NewInvoiceHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/invoices?date=15-03-2024", nil)
	rec := httptest.NewRecorder()
	h.ListInvoices(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeValidationErrors(t, rec)
	assert.Contains(t, fields(errs), "date")
}

func TestListInvoicesRejectsBadPagination(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{"non-numeric size", "size=abc", "size"},
		{"zero size", "size=0", "size"},
		{"negative page", "page=-1", "page"},
		{"non-numeric page", "page=first", "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewInvoiceHandler(nil)

			req := httptest.NewRequest(http.MethodGet, "/invoices?"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.ListInvoices(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			errs := decodeValidationErrors(t, rec)
			assert.Contains(t, fields(errs), tt.field)
		})
	}
}

func TestUpdateInvoiceRejectsMalformedBody(t *testing.T) {
	h := NewInvoiceHandler(nil)

	req := httptest.NewRequest(http.MethodPut, "/invoices/inv-0103241234", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.UpdateInvoice(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateInvoiceRejectsInvalidFields(t *testing.T) {
	h := NewInvoiceHandler(nil)

	payload := `{"payment_type":"BARTER","products":[{"item_name":"Pen","quantity":0}]}`
	req := httptest.NewRequest(http.MethodPut, "/invoices/inv-0103241234", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.UpdateInvoice(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs := decodeValidationErrors(t, rec)
	got := fields(errs)
	assert.Contains(t, got, "payment_type")
	assert.Contains(t, got, "products.0.item_name")
	assert.Contains(t, got, "products.0.quantity")
}

func TestPositiveIntParamDefaults(t *testing.T) {
	n, errs := positiveIntParam("", "size", 25)
	require.Empty(t, errs)
	assert.Equal(t, 25, n)

	n, errs = positiveIntParam("3", "size", 25)
	require.Empty(t, errs)
	assert.Equal(t, 3, n)
}
