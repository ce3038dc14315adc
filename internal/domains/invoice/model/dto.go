package model

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for issue and due dates.
const DateLayout = "2006-01-02"

// =====================================================
// CREATE INVOICE REQUEST
// =====================================================
// The raw persistence boundary: the caller sends an already-normalized
// invoice (client resolved, total computed). Assembly from form state
// goes through GenerateInvoiceRequest instead.
type CreateInvoiceRequest struct {
	ClientID uuid.UUID           `json:"client_id"`
	Date     string              `json:"date"`
	DueDate  string              `json:"due_date"`
	Status   string              `json:"status,omitempty"`
	Total    decimal.Decimal     `json:"total"`
	Items    []CreateInvoiceItem `json:"items"`
}

type CreateInvoiceItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// Validate validates CreateInvoiceRequest
func (req CreateInvoiceRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ClientID, validation.By(requiredClientID)),
		validation.Field(&req.Date, validation.Required.Error("missing date"), validation.Date(DateLayout)),
		validation.Field(&req.DueDate, validation.Required.Error("missing due_date"), validation.Date(DateLayout)),
		validation.Field(&req.Status, validation.In(toAnySlice(ValidStatuses)...)),
		validation.Field(&req.Total, validation.By(nonNegativeDecimal)),
		validation.Field(&req.Items, validation.Required.Error("missing or invalid items"), validation.Length(1, 0)),
	)
}

// Validate validates CreateInvoiceItem
func (it CreateInvoiceItem) Validate() error {
	return validation.ValidateStruct(&it,
		validation.Field(&it.Description, validation.Required.Error("item description is required")),
		validation.Field(&it.Quantity, validation.Min(0)),
		validation.Field(&it.Rate, validation.By(nonNegativeDecimal)),
	)
}

// ParseDates returns the issue and due dates as time values.
// Call only after Validate.
func (req CreateInvoiceRequest) ParseDates() (time.Time, time.Time, error) {
	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date: %w", err)
	}
	dueDate, err := time.Parse(DateLayout, req.DueDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid due_date: %w", err)
	}
	return date, dueDate, nil
}

// =====================================================
// GENERATE INVOICE REQUEST
// =====================================================
// Form-level input for the assembly engine. Quantity and rate arrive as
// raw form strings; invalid numerics coerce to zero instead of failing.
type GenerateInvoiceRequest struct {
	ClientID     *uuid.UUID       `json:"client_id,omitempty"`
	AddingClient bool             `json:"adding_client,omitempty"`
	Date         string           `json:"date,omitempty"`
	DueDate      string           `json:"due_date,omitempty"`
	Items        []DraftItemInput `json:"items"`
}

type DraftItemInput struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
}

// Validate validates GenerateInvoiceRequest.
// Item contents are the assembler's concern; only shape is checked here.
func (req GenerateInvoiceRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Date, validation.Date(DateLayout)),
		validation.Field(&req.DueDate, validation.Date(DateLayout)),
		validation.Field(&req.Items, validation.Required.Error("missing or invalid items"), validation.Length(1, 0)),
	)
}

// =====================================================
// GENERATE INVOICE RESPONSE
// =====================================================
// Persisted=false is the degraded path: the store write failed, the
// assembled draft is returned so the caller's work is not lost, and
// StoreError carries the failure message.
type GenerateInvoiceResponse struct {
	Draft      *InvoiceDraft `json:"draft"`
	Invoice    *Invoice      `json:"invoice,omitempty"`
	Persisted  bool          `json:"persisted"`
	StoreError string        `json:"store_error,omitempty"`
}

// =====================================================
// RENDER PDF REQUEST
// =====================================================
// A draft payload for rendering without persistence, mirroring the
// assembled draft shape. ID may be omitted; one is generated then.
type RenderPDFRequest struct {
	ID          *uuid.UUID          `json:"id,omitempty"`
	ClientName  string              `json:"client_name"`
	ClientEmail string              `json:"client_email,omitempty"`
	Date        string              `json:"date"`
	DueDate     string              `json:"due_date"`
	Items       []CreateInvoiceItem `json:"items"`
}

// Validate validates RenderPDFRequest
func (req RenderPDFRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ClientName, validation.Required.Error("missing client_name")),
		validation.Field(&req.Date, validation.Required.Error("missing date"), validation.Date(DateLayout)),
		validation.Field(&req.DueDate, validation.Required.Error("missing due_date"), validation.Date(DateLayout)),
		validation.Field(&req.Items, validation.Required.Error("missing or invalid items"), validation.Length(1, 0)),
	)
}

// ToDraft converts the request into a renderable draft. Call only after Validate.
func (req RenderPDFRequest) ToDraft() (*InvoiceDraft, error) {
	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	dueDate, err := time.Parse(DateLayout, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid due_date: %w", err)
	}

	id := uuid.New()
	if req.ID != nil {
		id = *req.ID
	}

	items := make([]DraftItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, DraftItem{
			ID:          uuid.New(),
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		})
	}

	return &InvoiceDraft{
		ID:          id,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Date:        date,
		DueDate:     dueDate,
		Items:       items,
	}, nil
}

// =====================================================
// VALIDATION HELPERS
// =====================================================

// requiredClientID rejects the zero uuid, which validation.Required
// would accept (a uuid.UUID is a [16]byte array, never length zero).
func requiredClientID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return fmt.Errorf("missing client_id")
	}
	return nil
}

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return fmt.Errorf("must be a decimal value")
	}
	if d.IsNegative() {
		return fmt.Errorf("must be no less than 0")
	}
	return nil
}

func toAnySlice(values []string) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
