package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"billpop-backend/internal/domains/invoice/model"
	"billpop-backend/internal/domains/invoice/pdf"
	"billpop-backend/internal/domains/invoice/repository"
	"billpop-backend/internal/infrastructure/storage"
	"billpop-backend/pkg/logger"
)

// =====================================================
// INVOICE SERVICE IMPLEMENTATION
// =====================================================
type invoiceService struct {
	repo      repository.InvoiceRepository
	clients   ClientDirectory
	assembler *Assembler
	renderer  *pdf.Renderer
	artifacts *storage.ArtifactStore // nil when archiving is disabled
	now       func() time.Time
}

// NewInvoiceService creates the invoice service. artifacts may be nil;
// rendered PDFs are then served without being archived.
func NewInvoiceService(
	repo repository.InvoiceRepository,
	clients ClientDirectory,
	artifacts *storage.ArtifactStore,
) InvoiceService {
	return &invoiceService{
		repo:      repo,
		clients:   clients,
		assembler: NewAssembler(clients),
		renderer:  pdf.NewRenderer(),
		artifacts: artifacts,
		now:       time.Now,
	}
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	return s.repo.ListWithClientAndItems(ctx)
}

func (s *invoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req model.CreateInvoiceRequest) (*model.Invoice, error) {
	date, dueDate, err := req.ParseDates()
	if err != nil {
		return nil, err
	}

	// Snapshot the client into the invoice; the invoice must outlive
	// any later client deletion.
	client, err := s.clients.GetClient(ctx, req.ClientID)
	if err != nil {
		return nil, model.ErrNoValidClient
	}

	status := req.Status
	if status == "" {
		status = model.StatusDraft
	}

	clientID := client.ID
	invoice := &model.Invoice{
		ID:          uuid.New(),
		ClientID:    &clientID,
		ClientName:  client.Name,
		ClientEmail: client.Email,
		Date:        date,
		DueDate:     dueDate,
		Status:      status,
		Total:       req.Total,
		Items:       make([]model.InvoiceItem, 0, len(req.Items)),
	}
	for i, it := range req.Items {
		item := model.InvoiceItem{
			ID:          uuid.New(),
			InvoiceID:   invoice.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Position:    i,
		}
		item.Amount = item.ComputeAmount()
		invoice.Items = append(invoice.Items, item)
	}

	if err := s.persist(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) Generate(ctx context.Context, req model.GenerateInvoiceRequest) (*model.GenerateInvoiceResponse, error) {
	draft, err := s.assembler.Assemble(ctx, req)
	if err != nil {
		return nil, err
	}

	invoice := invoiceFromDraft(draft)
	if err := s.persist(ctx, invoice); err != nil {
		// Degraded mode: the draft survives even when the store does not.
		logger.Warn("invoice store write failed, returning draft only", err)
		return &model.GenerateInvoiceResponse{
			Draft:      draft,
			Persisted:  false,
			StoreError: err.Error(),
		}, nil
	}

	return &model.GenerateInvoiceResponse{
		Draft:     draft,
		Invoice:   invoice,
		Persisted: true,
	}, nil
}

// persist runs the two-step write: header first, then items. The steps
// are not wrapped in a transaction; an item failure leaves the header
// behind and is surfaced as-is.
func (s *invoiceService) persist(ctx context.Context, invoice *model.Invoice) error {
	if err := s.repo.CreateInvoice(ctx, invoice); err != nil {
		return err
	}
	if err := s.repo.CreateInvoiceItems(ctx, invoice.Items); err != nil {
		logger.Warn("invoice header persisted without items", err)
		return err
	}
	return nil
}

func (s *invoiceService) RenderDraftPDF(ctx context.Context, req model.RenderPDFRequest) ([]byte, string, error) {
	draft, err := req.ToDraft()
	if err != nil {
		return nil, "", err
	}
	return s.render(ctx, draft)
}

func (s *invoiceService) RenderInvoicePDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	invoice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return s.render(ctx, draftFromInvoice(invoice))
}

func (s *invoiceService) render(ctx context.Context, draft *model.InvoiceDraft) ([]byte, string, error) {
	data, err := s.renderer.Render(draft, s.now())
	if err != nil {
		return nil, "", err
	}
	filename := pdf.Filename(draft.ID)

	// Archiving is best-effort; the download must not depend on it.
	if s.artifacts != nil {
		if _, err := s.artifacts.Put(ctx, filename, data); err != nil {
			logger.Warn("failed to archive invoice PDF", err)
		}
	}

	return data, filename, nil
}

func invoiceFromDraft(draft *model.InvoiceDraft) *model.Invoice {
	clientID := draft.ClientID
	invoice := &model.Invoice{
		ID:         draft.ID,
		ClientID:   &clientID,
		ClientName: draft.ClientName,
		Date:       draft.Date,
		DueDate:    draft.DueDate,
		Status:     model.StatusDraft,
		Total:      draft.Subtotal(),
		Items:      make([]model.InvoiceItem, 0, len(draft.Items)),
	}
	if draft.ClientEmail != "" {
		email := draft.ClientEmail
		invoice.ClientEmail = &email
	}
	for i, it := range draft.Items {
		item := model.InvoiceItem{
			ID:          it.ID,
			InvoiceID:   draft.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Position:    i,
		}
		item.Amount = item.ComputeAmount()
		invoice.Items = append(invoice.Items, item)
	}
	return invoice
}

func draftFromInvoice(invoice *model.Invoice) *model.InvoiceDraft {
	draft := &model.InvoiceDraft{
		ID:         invoice.ID,
		ClientName: invoice.ClientName,
		Date:       invoice.Date,
		DueDate:    invoice.DueDate,
		Items:      make([]model.DraftItem, 0, len(invoice.Items)),
	}
	if invoice.ClientID != nil {
		draft.ClientID = *invoice.ClientID
	}
	if invoice.ClientEmail != nil {
		draft.ClientEmail = *invoice.ClientEmail
	}
	for _, it := range invoice.Items {
		draft.Items = append(draft.Items, model.DraftItem{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		})
	}
	return draft
}
