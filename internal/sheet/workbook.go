package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet names expected in an uploaded workbook
const (
	InvoiceSheet = "invoice"
	ProductSheet = "product sold"
)

// Workbook holds the mapped rows of an uploaded spreadsheet
type Workbook struct {
	invoices []InvoiceRow
	products []ProductRow
}

// ReadWorkbook parses an uploaded XLSX stream and maps every data row of the
// "invoice" and "product sold" sheets. It fails only when the file itself (or
// one of the two named sheets) cannot be read; individual cell values never
// abort the parse.
func ReadWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	// Raw cell values keep Excel serial dates as numbers instead of
	// locale-formatted strings.
	opts := excelize.Options{RawCellValue: true}

	invoiceRows, err := sheetRows(f, InvoiceSheet, opts)
	if err != nil {
		return nil, err
	}
	productRows, err := sheetRows(f, ProductSheet, opts)
	if err != nil {
		return nil, err
	}

	wb := &Workbook{}
	for _, row := range invoiceRows {
		wb.invoices = append(wb.invoices, MapInvoiceRow(row))
	}
	for _, row := range productRows {
		wb.products = append(wb.products, MapProductRow(row))
	}

	return wb, nil
}

// InvoiceRows returns the mapped invoice headers in sheet order
func (w *Workbook) InvoiceRows() []InvoiceRow {
	return w.invoices
}

// ProductRows returns the mapped line items in sheet order
func (w *Workbook) ProductRows() []ProductRow {
	return w.products
}

// sheetRows reads one sheet and returns its data rows keyed by the header row
func sheetRows(f *excelize.File, name string, opts excelize.Options) ([]map[string]string, error) {
	rows, err := f.GetRows(name, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	headers := rows[0]
	var mapped []map[string]string
	for _, cells := range rows[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(cells) {
				row[header] = cells[i]
			}
		}
		mapped = append(mapped, row)
	}

	return mapped, nil
}
