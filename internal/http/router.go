package http

import (
	"invoice-backend/internal/handlers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	invoiceHandler *handlers.InvoiceHandler,
	uploadHandler *handlers.UploadHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Invoice routes
	invoicesAPI := r.PathPrefix("/invoices").Subrouter()
	invoicesAPI.HandleFunc("", invoiceHandler.CreateInvoice).Methods("POST")
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("/upload", uploadHandler.Upload).Methods("POST")
	invoicesAPI.HandleFunc("/{invoice_no}", invoiceHandler.UpdateInvoice).Methods("PUT")
	invoicesAPI.HandleFunc("/{invoice_no}", invoiceHandler.DeleteInvoice).Methods("DELETE")

	// Legacy upload route kept for older import clients
	r.HandleFunc("/upload", uploadHandler.Upload).Methods("POST")

	// Health endpoint (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
