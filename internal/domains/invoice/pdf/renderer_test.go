package pdf

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billpop-backend/internal/domains/invoice/model"
)

func sampleDraft() *model.InvoiceDraft {
	return &model.InvoiceDraft{
		ID:          uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000"),
		ClientID:    uuid.New(),
		ClientName:  "Acme Corp",
		ClientEmail: "billing@acme.example",
		Date:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Items: []model.DraftItem{
			{ID: uuid.New(), Description: "Design work", Quantity: 2, Rate: decimal.RequireFromString("50.00")},
			{ID: uuid.New(), Description: "Hosting", Quantity: 1, Rate: decimal.RequireFromString("20.50")},
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer()
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	data, err := r.Render(sampleDraft(), now)
	require.NoError(t, err)

	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderIsDeterministic(t *testing.T) {
	r := NewRenderer()
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	first, err := r.Render(sampleDraft(), now)
	require.NoError(t, err)
	second, err := r.Render(sampleDraft(), now)
	require.NoError(t, err)

	assert.Equal(t, first, second, "equal input must produce identical bytes")
}

func TestRenderEmptyEmail(t *testing.T) {
	draft := sampleDraft()
	draft.ClientEmail = ""

	data, err := NewRenderer().Render(draft, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestFilename(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-e5f6-7890-abcd-ef0123456789")

	assert.Equal(t, "invoice-a1b2c3d4.pdf", Filename(id))
}
