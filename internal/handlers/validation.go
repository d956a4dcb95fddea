package handlers

import (
	"fmt"
	"time"

	"invoice-backend/internal/models"
)

var paymentTypes = map[string]bool{
	"CASH":   true,
	"CREDIT": true,
}

func isISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validateCreateInvoice(req *models.CreateInvoiceRequest) []models.FieldError {
	var errs []models.FieldError

	if !isISODate(req.Date) {
		errs = append(errs, models.FieldError{Field: "date", Message: "must be a valid date in YYYY-MM-DD format"})
	}
	if len(req.CustomerName) < 2 {
		errs = append(errs, models.FieldError{Field: "customer_name", Message: "must be at least 2 characters"})
	}
	if len(req.SalespersonName) < 2 {
		errs = append(errs, models.FieldError{Field: "salesperson_name", Message: "must be at least 2 characters"})
	}
	if !paymentTypes[req.PaymentType] {
		errs = append(errs, models.FieldError{Field: "payment_type", Message: "must be either CASH or CREDIT"})
	}
	if len(req.Products) == 0 {
		errs = append(errs, models.FieldError{Field: "products", Message: "at least one product is required"})
	}
	errs = append(errs, validateProducts(req.Products)...)

	return errs
}

func validateUpdateInvoice(req *models.UpdateInvoiceRequest) []models.FieldError {
	var errs []models.FieldError

	if req.CustomerName != nil && len(*req.CustomerName) < 2 {
		errs = append(errs, models.FieldError{Field: "customer_name", Message: "must be at least 2 characters"})
	}
	if req.SalespersonName != nil && len(*req.SalespersonName) < 2 {
		errs = append(errs, models.FieldError{Field: "salesperson_name", Message: "must be at least 2 characters"})
	}
	if req.PaymentType != nil && !paymentTypes[*req.PaymentType] {
		errs = append(errs, models.FieldError{Field: "payment_type", Message: "must be either CASH or CREDIT"})
	}
	errs = append(errs, validateProducts(req.Products)...)

	return errs
}

func validateProducts(products []models.ProductInput) []models.FieldError {
	var errs []models.FieldError

	for i, p := range products {
		if len(p.ItemName) < 5 {
			errs = append(errs, models.FieldError{
				Field:   fmt.Sprintf("products.%d.item_name", i),
				Message: "must be at least 5 characters",
			})
		}
		if p.Quantity < 1 {
			errs = append(errs, models.FieldError{
				Field:   fmt.Sprintf("products.%d.quantity", i),
				Message: "must be at least 1",
			})
		}
		if p.TotalCost < 0 {
			errs = append(errs, models.FieldError{
				Field:   fmt.Sprintf("products.%d.total_cost", i),
				Message: "must not be negative",
			})
		}
		if p.TotalPrice < 0 {
			errs = append(errs, models.FieldError{
				Field:   fmt.Sprintf("products.%d.total_price", i),
				Message: "must not be negative",
			})
		}
	}

	return errs
}
