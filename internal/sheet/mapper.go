package sheet

import (
	"strconv"
	"strings"
	"time"
)

// Column headers as they appear in the source workbook. The two sheets use
// different casing for the invoice number column; both are preserved verbatim.
const (
	colInvoiceNo   = "invoice no"
	colDate        = "date"
	colCustomer    = "customer"
	colSalesperson = "salesperson"
	colPaymentType = "payment type"
	colNotes       = "notes"

	colProductInvoiceNo = "Invoice no"
	colItem             = "item"
	colQuantity         = "quantity"
	colTotalCogs        = "total cogs"
	colTotalPrice       = "total price"
)

// excelEpochOffset is the number of days between the Excel date epoch
// (1899-12-30) and the Unix epoch.
const excelEpochOffset = 25569

// InvoiceRow is a canonical invoice header mapped from one spreadsheet row
type InvoiceRow struct {
	InvoiceNo       string
	Date            string // YYYY-MM-DD
	CustomerName    string
	SalespersonName string
	PaymentType     string
	Notes           string
}

// ProductRow is a canonical line item mapped from one spreadsheet row
type ProductRow struct {
	InvoiceNo  string
	ItemName   string
	Quantity   int
	TotalCost  float64
	TotalPrice float64
}

// MapInvoiceRow converts one header-keyed row of the "invoice" sheet into a
// canonical record. Malformed values never fail the mapping; they flow through
// and surface, if at all, when the row is inserted.
func MapInvoiceRow(row map[string]string) InvoiceRow {
	return InvoiceRow{
		InvoiceNo:       strings.TrimSpace(row[colInvoiceNo]),
		Date:            SerialToDate(row[colDate]),
		CustomerName:    strings.TrimSpace(row[colCustomer]),
		SalespersonName: strings.TrimSpace(row[colSalesperson]),
		PaymentType:     NormalizePaymentType(row[colPaymentType]),
		Notes:           row[colNotes],
	}
}

// MapProductRow converts one header-keyed row of the "product sold" sheet
func MapProductRow(row map[string]string) ProductRow {
	return ProductRow{
		InvoiceNo:  strings.TrimSpace(row[colProductInvoiceNo]),
		ItemName:   strings.TrimSpace(row[colItem]),
		Quantity:   parseInt(row[colQuantity]),
		TotalCost:  parseFloat(row[colTotalCogs]),
		TotalPrice: parseFloat(row[colTotalPrice]),
	}
}

// SerialToDate converts an Excel serial date to a YYYY-MM-DD string. Values
// that do not parse as a number are returned as-is (the cell may already hold
// a date string).
func SerialToDate(value string) string {
	value = strings.TrimSpace(value)
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}

	unix := int64((serial - excelEpochOffset) * 86400)
	return time.Unix(unix, 0).UTC().Format("2006-01-02")
}

// NormalizePaymentType maps the source workbook's payment column onto the
// CASH/CREDIT enum: the literal NOTCASHORCREDIT sentinel means CREDIT and
// every other value means CASH. This mirrors the legacy import rule exactly
// and is not a general enum parse.
func NormalizePaymentType(value string) string {
	if strings.TrimSpace(value) == "NOTCASHORCREDIT" {
		return "CREDIT"
	}
	return "CASH"
}

func parseInt(value string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return int(f)
}

func parseFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}
