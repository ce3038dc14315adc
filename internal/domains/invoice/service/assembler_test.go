package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientmodel "billpop-backend/internal/domains/client/model"
	"billpop-backend/internal/domains/invoice/model"
)

type fakeDirectory struct {
	clients map[uuid.UUID]*clientmodel.Client
	created []*clientmodel.Client
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{clients: make(map[uuid.UUID]*clientmodel.Client)}
}

func (f *fakeDirectory) add(name string) *clientmodel.Client {
	c := &clientmodel.Client{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	f.clients[c.ID] = c
	return c
}

func (f *fakeDirectory) GetClient(_ context.Context, id uuid.UUID) (*clientmodel.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, clientmodel.ErrClientNotFound
	}
	return c, nil
}

func (f *fakeDirectory) CreateClient(_ context.Context, req clientmodel.CreateClientRequest) (*clientmodel.Client, error) {
	c := &clientmodel.Client{ID: uuid.New(), Name: req.Name, Email: req.Email, CreatedAt: time.Now()}
	f.clients[c.ID] = c
	f.created = append(f.created, c)
	return c, nil
}

func fixedAssembler(dir ClientDirectory, now time.Time) *Assembler {
	a := NewAssembler(dir)
	a.now = func() time.Time { return now }
	return a
}

func items(descs ...string) []model.DraftItemInput {
	out := make([]model.DraftItemInput, 0, len(descs))
	for _, d := range descs {
		out = append(out, model.DraftItemInput{Description: d, Quantity: "1", Rate: "10"})
	}
	return out
}

func TestAssembleUsesSelectedClient(t *testing.T) {
	dir := newFakeDirectory()
	selected := dir.add("Acme Corp")
	a := NewAssembler(dir)

	draft, err := a.Assemble(context.Background(), model.GenerateInvoiceRequest{
		ClientID: &selected.ID,
		Items:    items("Consulting"),
	})
	require.NoError(t, err)

	assert.Equal(t, selected.ID, draft.ClientID)
	assert.Equal(t, "Acme Corp", draft.ClientName)
	assert.Empty(t, dir.created, "no client should be provisioned when one is selected")
}

func TestAssembleRejectsStaleClient(t *testing.T) {
	dir := newFakeDirectory()
	stale := uuid.New()
	a := NewAssembler(dir)

	_, err := a.Assemble(context.Background(), model.GenerateInvoiceRequest{
		ClientID: &stale,
		Items:    items("Consulting"),
	})

	assert.ErrorIs(t, err, model.ErrNoValidClient)
	assert.Empty(t, dir.created, "a stale selection must not fall back to provisioning")
}

func TestAssembleRefusesDuringClientFlow(t *testing.T) {
	dir := newFakeDirectory()
	a := NewAssembler(dir)

	_, err := a.Assemble(context.Background(), model.GenerateInvoiceRequest{
		AddingClient: true,
		Items:        items("Consulting"),
	})

	assert.ErrorIs(t, err, model.ErrClientFlowIncomplete)
	assert.Empty(t, dir.created)
}

func TestAssembleProvisionsThrowawayClient(t *testing.T) {
	dir := newFakeDirectory()
	a := NewAssembler(dir)

	draft, err := a.Assemble(context.Background(), model.GenerateInvoiceRequest{
		Items: items("Consulting"),
	})
	require.NoError(t, err)
	require.Len(t, dir.created, 1)

	created := dir.created[0]
	assert.Equal(t, created.ID, draft.ClientID)
	assert.Regexp(t, `^Random Client [0-9a-f]{8}$`, created.Name)
	require.NotNil(t, created.Email)
	assert.Regexp(t, `^random-[0-9a-f]{8}@example\.com$`, *created.Email)
}

func TestAssembleItemValidation(t *testing.T) {
	dir := newFakeDirectory()
	selected := dir.add("Acme Corp")
	a := NewAssembler(dir)

	tests := []struct {
		name    string
		items   []model.DraftItemInput
		wantErr error
	}{
		{
			name:    "no items",
			items:   nil,
			wantErr: model.ErrEmptyItems,
		},
		{
			name:    "blank description",
			items:   []model.DraftItemInput{{Description: "   ", Quantity: "1", Rate: "10"}},
			wantErr: model.ErrMissingDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Assemble(context.Background(), model.GenerateInvoiceRequest{
				ClientID: &selected.ID,
				Items:    tt.items,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAssembleCoercesNumericInput(t *testing.T) {
	dir := newFakeDirectory()
	selected := dir.add("Acme Corp")
	a := NewAssembler(dir)

	tests := []struct {
		name     string
		quantity string
		rate     string
		wantQty  int
		wantRate string
	}{
		{"valid values", "2", "50.00", 2, "50"},
		{"malformed quantity", "two", "50.00", 0, "50"},
		{"decimal quantity truncates", "3.5", "50.00", 3, "50"},
		{"trailing junk truncates", "3x", "50.00", 3, "50"},
		{"malformed rate", "2", "fifty", 2, "0"},
		{"negative quantity", "-3", "50.00", 0, "50"},
		{"negative rate", "2", "-50.00", 2, "0"},
		{"empty values", "", "", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := a.Assemble(context.Background(), model.GenerateInvoiceRequest{
				ClientID: &selected.ID,
				Items:    []model.DraftItemInput{{Description: "Work", Quantity: tt.quantity, Rate: tt.rate}},
			})
			require.NoError(t, err)
			require.Len(t, draft.Items, 1)

			assert.Equal(t, tt.wantQty, draft.Items[0].Quantity)
			assert.Equal(t, tt.wantRate, draft.Items[0].Rate.String())
		})
	}
}

func TestAssembleSubtotal(t *testing.T) {
	dir := newFakeDirectory()
	selected := dir.add("Acme Corp")
	a := NewAssembler(dir)

	draft, err := a.Assemble(context.Background(), model.GenerateInvoiceRequest{
		ClientID: &selected.ID,
		Items: []model.DraftItemInput{
			{Description: "Design", Quantity: "2", Rate: "50.00"},
			{Description: "Hosting", Quantity: "1", Rate: "20.50"},
		},
	})
	require.NoError(t, err)

	assert.True(t, draft.Subtotal().Equal(decimal.RequireFromString("120.50")),
		"got %s", draft.Subtotal())
}

func TestAssembleDefaultDates(t *testing.T) {
	dir := newFakeDirectory()
	selected := dir.add("Acme Corp")
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	a := fixedAssembler(dir, now)

	draft, err := a.Assemble(context.Background(), model.GenerateInvoiceRequest{
		ClientID: &selected.ID,
		Items:    items("Consulting"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", draft.Date.Format(model.DateLayout))
	assert.Equal(t, "2026-04-09", draft.DueDate.Format(model.DateLayout))
}

func TestAssembleExplicitDates(t *testing.T) {
	dir := newFakeDirectory()
	selected := dir.add("Acme Corp")
	a := NewAssembler(dir)

	draft, err := a.Assemble(context.Background(), model.GenerateInvoiceRequest{
		ClientID: &selected.ID,
		Date:     "2026-01-15",
		DueDate:  "2026-02-01",
		Items:    items("Consulting"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-01-15", draft.Date.Format(model.DateLayout))
	assert.Equal(t, "2026-02-01", draft.DueDate.Format(model.DateLayout))
}

var errDirectoryDown = errors.New("directory unavailable")

type failingDirectory struct{}

func (failingDirectory) GetClient(context.Context, uuid.UUID) (*clientmodel.Client, error) {
	return nil, errDirectoryDown
}

func (failingDirectory) CreateClient(context.Context, clientmodel.CreateClientRequest) (*clientmodel.Client, error) {
	return nil, errDirectoryDown
}

func TestAssembleProvisioningFailure(t *testing.T) {
	a := NewAssembler(failingDirectory{})

	_, err := a.Assemble(context.Background(), model.GenerateInvoiceRequest{
		Items: items("Consulting"),
	})

	assert.ErrorIs(t, err, errDirectoryDown)
}
