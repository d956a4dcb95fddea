package services

import (
	"context"
	"errors"
	"log"

	"invoice-backend/internal/models"
	"invoice-backend/internal/repositories"
)

// ErrStore is the only failure handlers ever see from the store. The real
// cause is classified and logged server-side; nothing about it leaks to the
// caller.
var ErrStore = errors.New("something went wrong!")

type InvoiceService struct {
	Repo *repositories.InvoiceRepository
}

func NewInvoiceService(repo *repositories.InvoiceRepository) *InvoiceService {
	return &InvoiceService{Repo: repo}
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, req *models.CreateInvoiceRequest) (string, error) {
	invoiceNo, err := s.Repo.Create(ctx, req)
	if err != nil {
		log.Printf("[InvoiceService] create failed (%s): %v", repositories.KindOf(err), err)
		return "", ErrStore
	}
	return invoiceNo, nil
}

func (s *InvoiceService) ListInvoices(ctx context.Context, date string, size, page int) (*models.ListInvoicesResult, error) {
	result, err := s.Repo.List(ctx, date, size, page)
	if err != nil {
		log.Printf("[InvoiceService] list failed (%s): %v", repositories.KindOf(err), err)
		return nil, ErrStore
	}
	return result, nil
}

func (s *InvoiceService) UpdateInvoice(ctx context.Context, invoiceNo string, req *models.UpdateInvoiceRequest) error {
	if err := s.Repo.Update(ctx, invoiceNo, req); err != nil {
		log.Printf("[InvoiceService] update %s failed (%s): %v", invoiceNo, repositories.KindOf(err), err)
		return ErrStore
	}
	return nil
}

func (s *InvoiceService) DeleteInvoice(ctx context.Context, invoiceNo string) error {
	if err := s.Repo.Delete(ctx, invoiceNo); err != nil {
		log.Printf("[InvoiceService] delete %s failed (%s): %v", invoiceNo, repositories.KindOf(err), err)
		return ErrStore
	}
	return nil
}
