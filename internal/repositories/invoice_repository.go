package repositories

import (
	"context"
	"fmt"
	"log"
	"strings"

	"invoice-backend/internal/invoiceno"
	"invoice-backend/internal/models"
	"invoice-backend/internal/sheet"

	"github.com/jackc/pgx/v5/pgxpool"
)

// createAttempts bounds the regenerate-and-retry loop for invoice number
// collisions (~1/9000 chance per number on a given day).
const createAttempts = 3

// invoiceNoConstraint is the unique constraint backing invoices.invoice_no.
// Only conflicts on this constraint mean a number collision; conflicts on
// anything else must not trigger regeneration.
const invoiceNoConstraint = "invoices_invoice_no_key"

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// Create inserts an invoice with its products in one transaction and returns
// the generated invoice number. A collision on the invoice_no constraint
// triggers regeneration; any other failure rolls the whole insert back.
func (r *InvoiceRepository) Create(ctx context.Context, req *models.CreateInvoiceRequest) (string, error) {
	var err error
	for attempt := 1; attempt <= createAttempts; attempt++ {
		invoiceNo := invoiceno.Generate()
		if err = r.createOnce(ctx, invoiceNo, req); err == nil {
			return invoiceNo, nil
		}
		if !ConflictOn(err, invoiceNoConstraint) {
			return "", err
		}
		log.Printf("[InvoiceRepository] invoice number %s already taken, regenerating (attempt %d/%d)", invoiceNo, attempt, createAttempts)
	}
	return "", err
}

func (r *InvoiceRepository) createOnce(ctx context.Context, invoiceNo string, req *models.CreateInvoiceRequest) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return classify("create invoice", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO invoices (invoice_no, date, customer_name, salesperson_name, payment_type, notes)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))`,
		invoiceNo, req.Date, req.CustomerName, req.SalespersonName, req.PaymentType, req.Notes,
	)
	if err != nil {
		return classify("create invoice", err)
	}

	for _, p := range req.Products {
		_, err = tx.Exec(ctx,
			`INSERT INTO products (invoice_no, item_name, quantity, total_cost, total_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			invoiceNo, p.ItemName, p.Quantity, p.TotalCost, p.TotalPrice,
		)
		if err != nil {
			return classify("create invoice products", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return classify("create invoice", err)
	}
	return nil
}

// List returns one page of invoices with their products attached, plus profit
// and cash-transaction totals computed over that page only.
func (r *InvoiceRepository) List(ctx context.Context, date string, size, page int) (*models.ListInvoicesResult, error) {
	query := `SELECT id, invoice_no, to_char(date, 'YYYY-MM-DD'), customer_name, salesperson_name, payment_type, COALESCE(notes, '')
	          FROM invoices`
	args := []interface{}{}

	if date != "" {
		args = append(args, date)
		query += fmt.Sprintf(" WHERE date = $%d", len(args))
	}

	args = append(args, size, (page-1)*size)
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, classify("list invoices", err)
	}
	defer rows.Close()

	invoices := []*models.InvoiceWithProducts{}
	for rows.Next() {
		var inv models.InvoiceWithProducts
		err := rows.Scan(&inv.ID, &inv.InvoiceNo, &inv.Date, &inv.CustomerName,
			&inv.SalespersonName, &inv.PaymentType, &inv.Notes)
		if err != nil {
			return nil, classify("list invoices", err)
		}
		invoices = append(invoices, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list invoices", err)
	}
	rows.Close()

	result := &models.ListInvoicesResult{Invoices: invoices}
	for _, inv := range invoices {
		products, err := r.productsByInvoiceNo(ctx, inv.InvoiceNo)
		if err != nil {
			return nil, err
		}
		inv.Products = products

		var soldPrice, costPrice float64
		for _, p := range products {
			soldPrice += p.TotalPrice
			costPrice += p.TotalCost
		}

		result.TotalProfit += soldPrice - costPrice
		if strings.EqualFold(inv.PaymentType, "CASH") {
			result.TotalCashTransactions += soldPrice
		}
	}

	return result, nil
}

func (r *InvoiceRepository) productsByInvoiceNo(ctx context.Context, invoiceNo string) ([]models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, invoice_no, item_name, quantity, total_cost, total_price
		 FROM products WHERE invoice_no = $1 ORDER BY id`, invoiceNo,
	)
	if err != nil {
		return nil, classify("list products", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.InvoiceNo, &p.ItemName, &p.Quantity, &p.TotalCost, &p.TotalPrice)
		if err != nil {
			return nil, classify("list products", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// Update applies the provided header fields and, when the header matched a row
// and a non-empty products list was supplied, replaces the invoice's product
// set wholesale in the same transaction. A missing invoice_no is a silent
// no-op: nothing is touched and no error is returned.
func (r *InvoiceRepository) Update(ctx context.Context, invoiceNo string, req *models.UpdateInvoiceRequest) error {
	set := []string{}
	args := []interface{}{}

	if req.CustomerName != nil {
		args = append(args, *req.CustomerName)
		set = append(set, fmt.Sprintf("customer_name = $%d", len(args)))
	}
	if req.SalespersonName != nil {
		args = append(args, *req.SalespersonName)
		set = append(set, fmt.Sprintf("salesperson_name = $%d", len(args)))
	}
	if req.PaymentType != nil {
		args = append(args, *req.PaymentType)
		set = append(set, fmt.Sprintf("payment_type = $%d", len(args)))
	}

	// Nothing to change on the header means no rows affected, which also
	// leaves any supplied products untouched.
	if len(set) == 0 {
		return nil
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return classify("update invoice", err)
	}
	defer tx.Rollback(ctx)

	args = append(args, invoiceNo)
	tag, err := tx.Exec(ctx,
		fmt.Sprintf("UPDATE invoices SET %s WHERE invoice_no = $%d", strings.Join(set, ", "), len(args)),
		args...,
	)
	if err != nil {
		return classify("update invoice", err)
	}

	if tag.RowsAffected() > 0 && len(req.Products) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM products WHERE invoice_no = $1`, invoiceNo); err != nil {
			return classify("replace products", err)
		}

		for _, p := range req.Products {
			_, err := tx.Exec(ctx,
				`INSERT INTO products (invoice_no, item_name, quantity, total_cost, total_price)
				 VALUES ($1, $2, $3, $4, $5)`,
				invoiceNo, p.ItemName, p.Quantity, p.TotalCost, p.TotalPrice,
			)
			if err != nil {
				return classify("replace products", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return classify("update invoice", err)
	}
	return nil
}

// Delete removes an invoice and all of its products in one transaction. It
// succeeds even when the invoice_no does not exist.
func (r *InvoiceRepository) Delete(ctx context.Context, invoiceNo string) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return classify("delete invoice", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM products WHERE invoice_no = $1`, invoiceNo); err != nil {
		return classify("delete invoice products", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_no = $1`, invoiceNo); err != nil {
		return classify("delete invoice", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return classify("delete invoice", err)
	}
	return nil
}

// InsertInvoiceIgnore inserts one imported invoice header, silently skipping
// it when the invoice_no already exists. Returns whether a row was inserted.
func (r *InvoiceRepository) InsertInvoiceIgnore(ctx context.Context, row sheet.InvoiceRow) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`INSERT INTO invoices (invoice_no, date, customer_name, salesperson_name, payment_type, notes)
		 VALUES ($1, $2::date, $3, $4, $5, NULLIF($6, ''))
		 ON CONFLICT (invoice_no) DO NOTHING`,
		row.InvoiceNo, row.Date, row.CustomerName, row.SalespersonName, row.PaymentType, row.Notes,
	)
	if err != nil {
		return false, classify("import invoice", err)
	}
	return tag.RowsAffected() == 1, nil
}

// InsertProduct inserts one imported line item. The products table carries no
// unique key, so re-imported rows duplicate rather than conflict.
func (r *InvoiceRepository) InsertProduct(ctx context.Context, row sheet.ProductRow) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO products (invoice_no, item_name, quantity, total_cost, total_price)
		 VALUES ($1, $2, $3, $4, $5)`,
		row.InvoiceNo, row.ItemName, row.Quantity, row.TotalCost, row.TotalPrice,
	)
	return classify("import product", err)
}
