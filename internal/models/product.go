package models

// Product is one line item of an invoice. Cost and price are aggregates for
// the line, not unit values.
type Product struct {
	ID         int     `json:"id"`
	InvoiceNo  string  `json:"invoice_no"`
	ItemName   string  `json:"item_name"`
	Quantity   int     `json:"quantity"`
	TotalCost  float64 `json:"total_cost"`
	TotalPrice float64 `json:"total_price"`
}

// ProductInput is a line item as supplied by create/update requests
type ProductInput struct {
	ItemName   string  `json:"item_name"`
	Quantity   int     `json:"quantity"`
	TotalCost  float64 `json:"total_cost"`
	TotalPrice float64 `json:"total_price"`
}
