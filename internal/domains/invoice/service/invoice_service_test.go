package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billpop-backend/internal/domains/invoice/model"
)

type fakeInvoiceRepo struct {
	headers   []*model.Invoice
	items     [][]model.InvoiceItem
	headerErr error
	itemsErr  error
}

func (f *fakeInvoiceRepo) ListWithClientAndItems(context.Context) ([]model.Invoice, error) {
	out := make([]model.Invoice, 0, len(f.headers))
	for _, h := range f.headers {
		out = append(out, *h)
	}
	return out, nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	for _, h := range f.headers {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, model.ErrInvoiceNotFound
}

func (f *fakeInvoiceRepo) CreateInvoice(_ context.Context, invoice *model.Invoice) error {
	if f.headerErr != nil {
		return f.headerErr
	}
	f.headers = append(f.headers, invoice)
	return nil
}

func (f *fakeInvoiceRepo) CreateInvoiceItems(_ context.Context, items []model.InvoiceItem) error {
	if f.itemsErr != nil {
		return f.itemsErr
	}
	f.items = append(f.items, items)
	return nil
}

func generateRequest(clientID uuid.UUID) model.GenerateInvoiceRequest {
	return model.GenerateInvoiceRequest{
		ClientID: &clientID,
		Items: []model.DraftItemInput{
			{Description: "Design", Quantity: "2", Rate: "50.00"},
			{Description: "Hosting", Quantity: "1", Rate: "20.50"},
		},
	}
}

func TestGeneratePersistsInvoice(t *testing.T) {
	dir := newFakeDirectory()
	client := dir.add("Acme Corp")
	repo := &fakeInvoiceRepo{}
	svc := NewInvoiceService(repo, dir, nil)

	result, err := svc.Generate(context.Background(), generateRequest(client.ID))
	require.NoError(t, err)

	assert.True(t, result.Persisted)
	require.NotNil(t, result.Invoice)
	assert.Empty(t, result.StoreError)
	assert.True(t, result.Invoice.Total.Equal(decimal.RequireFromString("120.50")))
	assert.Equal(t, model.StatusDraft, result.Invoice.Status)

	require.Len(t, repo.headers, 1)
	require.Len(t, repo.items, 1)
	assert.Len(t, repo.items[0], 2)
	assert.Equal(t, 0, repo.items[0][0].Position)
	assert.Equal(t, 1, repo.items[0][1].Position)
}

func TestGenerateDegradesOnHeaderFailure(t *testing.T) {
	dir := newFakeDirectory()
	client := dir.add("Acme Corp")
	repo := &fakeInvoiceRepo{headerErr: errors.New("connection refused")}
	svc := NewInvoiceService(repo, dir, nil)

	result, err := svc.Generate(context.Background(), generateRequest(client.ID))
	require.NoError(t, err, "a store failure must not fail the whole operation")

	assert.False(t, result.Persisted)
	assert.Nil(t, result.Invoice)
	require.NotNil(t, result.Draft)
	assert.Contains(t, result.StoreError, "connection refused")
	assert.Equal(t, "Acme Corp", result.Draft.ClientName)
}

func TestGenerateItemFailureLeavesHeader(t *testing.T) {
	dir := newFakeDirectory()
	client := dir.add("Acme Corp")
	repo := &fakeInvoiceRepo{itemsErr: errors.New("batch insert failed")}
	svc := NewInvoiceService(repo, dir, nil)

	result, err := svc.Generate(context.Background(), generateRequest(client.ID))
	require.NoError(t, err)

	assert.False(t, result.Persisted)
	assert.Contains(t, result.StoreError, "batch insert failed")
	// The header write is not rolled back when items fail.
	assert.Len(t, repo.headers, 1)
	assert.Empty(t, repo.items)
}

func TestGenerateAssemblyErrorIsFatal(t *testing.T) {
	dir := newFakeDirectory()
	repo := &fakeInvoiceRepo{}
	svc := NewInvoiceService(repo, dir, nil)

	_, err := svc.Generate(context.Background(), model.GenerateInvoiceRequest{
		AddingClient: true,
		Items:        items("Consulting"),
	})

	assert.ErrorIs(t, err, model.ErrClientFlowIncomplete)
	assert.Empty(t, repo.headers, "nothing may be written when assembly fails")
}

func TestCreateInvoiceSnapshotsClient(t *testing.T) {
	dir := newFakeDirectory()
	client := dir.add("Acme Corp")
	repo := &fakeInvoiceRepo{}
	svc := NewInvoiceService(repo, dir, nil)

	invoice, err := svc.CreateInvoice(context.Background(), model.CreateInvoiceRequest{
		ClientID: client.ID,
		Date:     "2026-01-15",
		DueDate:  "2026-02-01",
		Status:   model.StatusPaid,
		Total:    decimal.RequireFromString("99.00"),
		Items: []model.CreateInvoiceItem{
			{Description: "Support", Quantity: 3, Rate: decimal.RequireFromString("33.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", invoice.ClientName)
	require.NotNil(t, invoice.ClientID)
	assert.Equal(t, client.ID, *invoice.ClientID)
	assert.Equal(t, model.StatusPaid, invoice.Status)
	require.Len(t, invoice.Items, 1)
	assert.True(t, invoice.Items[0].Amount.Equal(decimal.RequireFromString("99.00")))
}

func TestCreateInvoiceUnknownClient(t *testing.T) {
	dir := newFakeDirectory()
	repo := &fakeInvoiceRepo{}
	svc := NewInvoiceService(repo, dir, nil)

	_, err := svc.CreateInvoice(context.Background(), model.CreateInvoiceRequest{
		ClientID: uuid.New(),
		Date:     "2026-01-15",
		DueDate:  "2026-02-01",
		Items: []model.CreateInvoiceItem{
			{Description: "Support", Quantity: 1, Rate: decimal.NewFromInt(10)},
		},
	})

	assert.ErrorIs(t, err, model.ErrNoValidClient)
	assert.Empty(t, repo.headers)
}

func TestRenderInvoicePDF(t *testing.T) {
	dir := newFakeDirectory()
	client := dir.add("Acme Corp")
	repo := &fakeInvoiceRepo{}
	svc := NewInvoiceService(repo, dir, nil)

	result, err := svc.Generate(context.Background(), generateRequest(client.ID))
	require.NoError(t, err)
	require.True(t, result.Persisted)

	data, filename, err := svc.RenderInvoicePDF(context.Background(), result.Invoice.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, data)
	assert.Equal(t, "invoice-"+model.ShortID(result.Invoice.ID)+".pdf", filename)
}

func TestRenderInvoicePDFNotFound(t *testing.T) {
	svc := NewInvoiceService(&fakeInvoiceRepo{}, newFakeDirectory(), nil)

	_, _, err := svc.RenderInvoicePDF(context.Background(), uuid.New())

	assert.ErrorIs(t, err, model.ErrInvoiceNotFound)
}
