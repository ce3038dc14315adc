package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	clientmodel "billpop-backend/internal/domains/client/model"
	"billpop-backend/internal/domains/invoice/model"
)

// ClientDirectory is the slice of the client domain the assembler needs:
// confirming a resolved id and provisioning throwaway clients.
type ClientDirectory interface {
	GetClient(ctx context.Context, id uuid.UUID) (*clientmodel.Client, error)
	CreateClient(ctx context.Context, req clientmodel.CreateClientRequest) (*clientmodel.Client, error)
}

// defaultDueDays is the gap between the default issue and due dates.
const defaultDueDays = 30

// =====================================================
// INVOICE ASSEMBLER
// =====================================================
// Turns form-level input into a normalized draft. Client resolution
// follows an ordered policy:
//
//  1. an explicitly selected client id wins;
//  2. in adding-client mode the engine refuses instead of falling back,
//     so the half-finished client flow cannot be silently bypassed;
//  3. otherwise a throwaway client is provisioned so invoice creation
//     is never blocked on client bookkeeping.
//
// The earlier-firing "Default Client" rule (empty store at form open)
// lives in the client service, not here.
//
// After resolution the id is confirmed against the store; a stale or
// unknown id fails with ErrNoValidClient and nothing else happens.
type Assembler struct {
	clients ClientDirectory
	now     func() time.Time
}

func NewAssembler(clients ClientDirectory) *Assembler {
	return &Assembler{
		clients: clients,
		now:     time.Now,
	}
}

// Assemble produces a normalized draft or a validation error.
func (a *Assembler) Assemble(ctx context.Context, req model.GenerateInvoiceRequest) (*model.InvoiceDraft, error) {
	items, err := a.normalizeItems(req.Items)
	if err != nil {
		return nil, err
	}

	client, err := a.resolveClient(ctx, req)
	if err != nil {
		return nil, err
	}

	date, dueDate, err := a.resolveDates(req)
	if err != nil {
		return nil, err
	}

	return &model.InvoiceDraft{
		ID:          uuid.New(),
		ClientID:    client.ID,
		ClientName:  client.Name,
		ClientEmail: client.EmailOrEmpty(),
		Date:        date,
		DueDate:     dueDate,
		Items:       items,
	}, nil
}

func (a *Assembler) resolveClient(ctx context.Context, req model.GenerateInvoiceRequest) (*clientmodel.Client, error) {
	switch {
	case req.ClientID != nil && *req.ClientID != uuid.Nil:
		// Rule 1: explicit selection. Confirm it still exists; the form
		// may hold a stale id after a deletion elsewhere.
		client, err := a.clients.GetClient(ctx, *req.ClientID)
		if err != nil {
			return nil, model.ErrNoValidClient
		}
		return client, nil

	case req.AddingClient:
		// Rule 2: a new-client flow is in progress; no auto-fallback.
		return nil, model.ErrClientFlowIncomplete

	default:
		// Rule 3: provision a throwaway client and carry on.
		suffix := model.ShortID(uuid.New())
		email := "random-" + suffix + "@example.com"
		client, err := a.clients.CreateClient(ctx, clientmodel.CreateClientRequest{
			Name:  "Random Client " + suffix,
			Email: &email,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to provision client: %w", err)
		}
		return client, nil
	}
}

func (a *Assembler) resolveDates(req model.GenerateInvoiceRequest) (time.Time, time.Time, error) {
	today := a.now().Truncate(24 * time.Hour)

	date := today
	if req.Date != "" {
		parsed, err := time.Parse(model.DateLayout, req.Date)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid date: %w", err)
		}
		date = parsed
	}

	dueDate := today.AddDate(0, 0, defaultDueDays)
	if req.DueDate != "" {
		parsed, err := time.Parse(model.DateLayout, req.DueDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid due_date: %w", err)
		}
		dueDate = parsed
	}

	return date, dueDate, nil
}

func (a *Assembler) normalizeItems(inputs []model.DraftItemInput) ([]model.DraftItem, error) {
	if len(inputs) == 0 {
		return nil, model.ErrEmptyItems
	}

	items := make([]model.DraftItem, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Description) == "" {
			return nil, model.ErrMissingDescription
		}

		items = append(items, model.DraftItem{
			ID:          uuid.New(),
			Description: in.Description,
			Quantity:    parseQuantity(in.Quantity),
			Rate:        parseRate(in.Rate),
		})
	}

	return items, nil
}

// parseQuantity coerces raw form input to a non-negative integer by
// reading the longest leading run of digits, so "3.5" and "3x" both
// become 3. Anything without a digit prefix, and negative input,
// becomes 0 rather than rejecting the whole form.
func parseQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	qty, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return qty
}

// parseRate coerces raw form input to a non-negative decimal,
// with the same clamp-to-zero behavior as parseQuantity.
func parseRate(raw string) decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}
