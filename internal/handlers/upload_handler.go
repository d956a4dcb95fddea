package handlers

import (
	"net/http"

	"invoice-backend/internal/models"
	"invoice-backend/internal/services"
	"invoice-backend/pkg/utils"
)

const maxUploadMemory = 32 << 20 // 32 MB

type UploadHandler struct {
	Service *services.ImportService
}

func NewUploadHandler(service *services.ImportService) *UploadHandler {
	return &UploadHandler{Service: service}
}

// Upload accepts a multipart form with an xlsx workbook under the "file" key
// and imports its invoice and product sheets.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "No file uploaded."})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "No file uploaded."})
		return
	}
	defer file.Close()

	if err := h.Service.Import(r.Context(), file); err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	utils.JSON(w, http.StatusOK, models.MessageResponse{Message: "Upload success"})
}
