package models

// FieldError is a single validation failure tied to a request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the 400 body for failed input validation
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// MessageResponse is the generic success body
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateInvoiceResponse returns the generated invoice number
type CreateInvoiceResponse struct {
	Message   string `json:"message"`
	InvoiceNo string `json:"invoice_no"`
}

// ErrorResponse is the opaque failure body
type ErrorResponse struct {
	Error string `json:"error"`
}
