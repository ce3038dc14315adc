package service

import (
	"context"

	"github.com/google/uuid"

	"billpop-backend/internal/domains/invoice/model"
)

// =====================================================
// INVOICE SERVICE INTERFACE
// =====================================================
type InvoiceService interface {
	// ListInvoices returns all invoices newest-first with nested client
	// rows and ordered items.
	ListInvoices(ctx context.Context) ([]model.Invoice, error)

	// GetInvoice returns one invoice, or model.ErrInvoiceNotFound.
	GetInvoice(ctx context.Context, id uuid.UUID) (*model.Invoice, error)

	// CreateInvoice persists an already-normalized invoice.
	CreateInvoice(ctx context.Context, req model.CreateInvoiceRequest) (*model.Invoice, error)

	// Generate runs the assembly engine over form-level input and then
	// persists the result. A store failure is not fatal: the assembled
	// draft comes back with Persisted=false.
	Generate(ctx context.Context, req model.GenerateInvoiceRequest) (*model.GenerateInvoiceResponse, error)

	// RenderDraftPDF renders a not-persisted draft payload and returns
	// the document bytes plus the attachment filename.
	RenderDraftPDF(ctx context.Context, req model.RenderPDFRequest) ([]byte, string, error)

	// RenderInvoicePDF renders a stored invoice by id.
	RenderInvoicePDF(ctx context.Context, id uuid.UUID) ([]byte, string, error)
}
