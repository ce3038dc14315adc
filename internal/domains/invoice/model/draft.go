package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// DRAFT: InvoiceDraft
// =====================================================
// An in-memory, not-yet-persisted invoice assembled from form input.
// Carries a denormalized snapshot of the resolved client so the draft
// stays renderable even if the client row changes or disappears.
type InvoiceDraft struct {
	ID          uuid.UUID   `json:"id"`
	ClientID    uuid.UUID   `json:"client_id"`
	ClientName  string      `json:"client_name"`
	ClientEmail string      `json:"client_email"`
	Date        time.Time   `json:"date"`
	DueDate     time.Time   `json:"due_date"`
	Items       []DraftItem `json:"items"`
}

// DraftItem is one billable line of a draft.
type DraftItem struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// Amount returns quantity x rate for the line.
func (it DraftItem) Amount() decimal.Decimal {
	return it.Rate.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Subtotal is the exact sum of all line amounts, computed in the
// decimal domain without per-line rounding.
func (d *InvoiceDraft) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(it.Amount())
	}
	return total
}

// ShortID returns the 8-character display form of the draft id.
func (d *InvoiceDraft) ShortID() string {
	return ShortID(d.ID)
}
