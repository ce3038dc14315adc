package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// INVOICE STATUS CONSTANTS
// =====================================================
const (
	StatusDraft   = "Draft"
	StatusUnpaid  = "Unpaid"
	StatusPaid    = "Paid"
	StatusOverdue = "Overdue"
)

// ValidStatuses lists every accepted invoice status.
var ValidStatuses = []string{StatusDraft, StatusUnpaid, StatusPaid, StatusOverdue}

// =====================================================
// ENTITY: Invoice
// =====================================================
// Total is the snapshot computed at submission time; it is never
// recomputed from the stored items afterwards.
type Invoice struct {
	ID          uuid.UUID       `json:"id"`
	ClientID    *uuid.UUID      `json:"client_id,omitempty"`
	ClientName  string          `json:"client_name"`
	ClientEmail *string         `json:"client_email,omitempty"`
	Date        time.Time       `json:"date"`
	DueDate     time.Time       `json:"due_date"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	Items       []InvoiceItem   `json:"items"`
	Client      *InvoiceClient  `json:"client,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// InvoiceClient is the nested client row returned by the list operation.
// Nil when the referenced client has been deleted; the invoice's own
// name/email snapshot remains authoritative in that case.
type InvoiceClient struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email *string   `json:"email,omitempty"`
}

// ShortID returns the 8-character display form of the invoice id.
func (i *Invoice) ShortID() string {
	return ShortID(i.ID)
}

// =====================================================
// ENTITY: InvoiceItem
// =====================================================
type InvoiceItem struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Position    int             `json:"position"`
}

// ComputeAmount returns quantity x rate in the decimal domain.
func (it *InvoiceItem) ComputeAmount() decimal.Decimal {
	return it.Rate.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// ShortID truncates a uuid to its first 8 characters for display
// and for the exported artifact filename.
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}
