package services

import (
	"context"
	"io"
	"log"
	"sync"

	"invoice-backend/internal/metrics"
	"invoice-backend/internal/repositories"
	"invoice-backend/internal/sheet"
)

const importWorkers = 10

// ImportService runs the spreadsheet upload pipeline: parse the two sheets,
// map their rows, then insert every row. Invoice headers insert-or-ignore on
// invoice_no; product rows insert unconditionally since their table has no
// unique key. Rows are inserted concurrently with no ordering guarantee and
// no atomicity across rows; partial success is expected. Per-row skips and
// failures are logged and counted, never surfaced to the caller.
type ImportService struct {
	Repo *repositories.InvoiceRepository
}

func NewImportService(repo *repositories.InvoiceRepository) *ImportService {
	return &ImportService{Repo: repo}
}

// Import processes one uploaded workbook. It fails only when the workbook
// itself cannot be parsed.
func (s *ImportService) Import(ctx context.Context, r io.Reader) error {
	wb, err := sheet.ReadWorkbook(r)
	if err != nil {
		log.Printf("[Import] workbook parse failed: %v", err)
		return ErrStore
	}

	// Invoice headers settle before line items, matching the source order of
	// the legacy importer. Within each batch rows run concurrently.
	invInserted, invSkipped, invFailed := s.importInvoices(ctx, wb.InvoiceRows())
	prodInserted, prodFailed := s.importProducts(ctx, wb.ProductRows())

	log.Printf("[Import] invoices: %d inserted, %d skipped, %d failed; products: %d inserted, %d failed",
		invInserted, invSkipped, invFailed, prodInserted, prodFailed)

	return nil
}

func (s *ImportService) importInvoices(ctx context.Context, rows []sheet.InvoiceRow) (inserted, skipped, failed int) {
	jobs := make(chan sheet.InvoiceRow, len(rows))
	results := make(chan string, len(rows))

	var wg sync.WaitGroup
	for i := 0; i < importWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range jobs {
				ok, err := s.Repo.InsertInvoiceIgnore(ctx, row)
				switch {
				case err != nil:
					log.Printf("[Import] invoice row %q failed (%s): %v", row.InvoiceNo, repositories.KindOf(err), err)
					results <- "failed"
				case !ok:
					log.Printf("[Import] invoice row %q skipped, invoice_no already exists", row.InvoiceNo)
					results <- "skipped"
				default:
					results <- "inserted"
				}
			}
		}()
	}

	for _, row := range rows {
		jobs <- row
	}
	close(jobs)
	wg.Wait()
	close(results)

	return tally(sheet.InvoiceSheet, results)
}

func (s *ImportService) importProducts(ctx context.Context, rows []sheet.ProductRow) (inserted, failed int) {
	jobs := make(chan sheet.ProductRow, len(rows))
	results := make(chan string, len(rows))

	var wg sync.WaitGroup
	for i := 0; i < importWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range jobs {
				if err := s.Repo.InsertProduct(ctx, row); err != nil {
					log.Printf("[Import] product row %q/%q failed (%s): %v", row.InvoiceNo, row.ItemName, repositories.KindOf(err), err)
					results <- "failed"
				} else {
					results <- "inserted"
				}
			}
		}()
	}

	for _, row := range rows {
		jobs <- row
	}
	close(jobs)
	wg.Wait()
	close(results)

	inserted, _, failed = tally(sheet.ProductSheet, results)
	return inserted, failed
}

func tally(sheetName string, results <-chan string) (inserted, skipped, failed int) {
	for outcome := range results {
		metrics.ImportRowsTotal.WithLabelValues(sheetName, outcome).Inc()
		switch outcome {
		case "inserted":
			inserted++
		case "skipped":
			skipped++
		case "failed":
			failed++
		}
	}
	return inserted, skipped, failed
}
