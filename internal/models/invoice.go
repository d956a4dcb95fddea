package models

// Invoice represents a sales invoice header
type Invoice struct {
	ID              int    `json:"id"`
	InvoiceNo       string `json:"invoice_no"`
	Date            string `json:"date"` // YYYY-MM-DD
	CustomerName    string `json:"customer_name"`
	SalespersonName string `json:"salesperson_name"`
	PaymentType     string `json:"payment_type"` // CASH or CREDIT
	Notes           string `json:"notes"`
}

// InvoiceWithProducts is an invoice with its line items attached
type InvoiceWithProducts struct {
	Invoice
	Products []Product `json:"products"`
}

// CreateInvoiceRequest represents the request to create an invoice
type CreateInvoiceRequest struct {
	Date            string         `json:"date"`
	CustomerName    string         `json:"customer_name"`
	SalespersonName string         `json:"salesperson_name"`
	PaymentType     string         `json:"payment_type"`
	Notes           string         `json:"notes"`
	Products        []ProductInput `json:"products"`
}

// UpdateInvoiceRequest carries the optional header fields for an update.
// Nil pointers mean "leave unchanged".
type UpdateInvoiceRequest struct {
	CustomerName    *string        `json:"customer_name"`
	SalespersonName *string        `json:"salesperson_name"`
	PaymentType     *string        `json:"payment_type"`
	Products        []ProductInput `json:"products"`
}

// ListInvoicesResult is the page returned by a list call. TotalProfit and
// TotalCashTransactions are computed over this page only, not the whole table.
type ListInvoicesResult struct {
	Invoices              []*InvoiceWithProducts `json:"invoices"`
	TotalProfit           float64                `json:"totalProfit"`
	TotalCashTransactions float64                `json:"totalCashTransactions"`
}
