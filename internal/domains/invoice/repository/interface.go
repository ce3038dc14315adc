package repository

import (
	"context"

	"github.com/google/uuid"

	"billpop-backend/internal/domains/invoice/model"
)

// =====================================================
// INVOICE REPOSITORY INTERFACE
// =====================================================
// Invoice creation is deliberately split into two sequential writes
// with no surrounding transaction: CreateInvoice first, then
// CreateInvoiceItems. If the item insert fails the header row stays
// behind without items; callers surface the error and do not attempt
// a compensating delete.
type InvoiceRepository interface {
	// ListWithClientAndItems returns all invoices newest-first with the
	// nested client row (when it still exists) and ordered items.
	ListWithClientAndItems(ctx context.Context) ([]model.Invoice, error)

	// GetByID returns one invoice with items, or model.ErrInvoiceNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)

	// CreateInvoice inserts the header row; the store assigns created_at.
	CreateInvoice(ctx context.Context, invoice *model.Invoice) error

	// CreateInvoiceItems bulk-inserts item rows keyed by invoice id.
	CreateInvoiceItems(ctx context.Context, items []model.InvoiceItem) error
}
