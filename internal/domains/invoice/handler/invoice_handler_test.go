package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billpop-backend/internal/domains/invoice/model"
)

type fakeInvoiceService struct {
	invoices    []model.Invoice
	generateErr error
	generated   *model.GenerateInvoiceResponse
}

func (f *fakeInvoiceService) ListInvoices(context.Context) ([]model.Invoice, error) {
	return f.invoices, nil
}

func (f *fakeInvoiceService) GetInvoice(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	for i := range f.invoices {
		if f.invoices[i].ID == id {
			return &f.invoices[i], nil
		}
	}
	return nil, model.ErrInvoiceNotFound
}

func (f *fakeInvoiceService) CreateInvoice(_ context.Context, req model.CreateInvoiceRequest) (*model.Invoice, error) {
	inv := model.Invoice{ID: uuid.New(), ClientID: &req.ClientID, Status: req.Status, Total: req.Total}
	f.invoices = append(f.invoices, inv)
	return &inv, nil
}

func (f *fakeInvoiceService) Generate(context.Context, model.GenerateInvoiceRequest) (*model.GenerateInvoiceResponse, error) {
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return f.generated, nil
}

func (f *fakeInvoiceService) RenderDraftPDF(context.Context, model.RenderPDFRequest) ([]byte, string, error) {
	return []byte("%PDF-fake"), "invoice-a1b2c3d4.pdf", nil
}

func (f *fakeInvoiceService) RenderInvoicePDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	if _, err := f.GetInvoice(ctx, id); err != nil {
		return nil, "", err
	}
	return []byte("%PDF-fake"), "invoice-" + model.ShortID(id) + ".pdf", nil
}

func setupRouter(svc *fakeInvoiceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	NewInvoiceHandler(svc).RegisterRoutes(api)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateRejectsEmptyItems(t *testing.T) {
	svc := &fakeInvoiceService{}
	router := setupRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/api/invoices/generate", map[string]interface{}{
		"items": []interface{}{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing or invalid items")
}

func TestGenerateAssemblyErrorIs400(t *testing.T) {
	svc := &fakeInvoiceService{generateErr: model.ErrClientFlowIncomplete}
	router := setupRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/api/invoices/generate", map[string]interface{}{
		"adding_client": true,
		"items": []map[string]string{
			{"description": "Work", "quantity": "1", "rate": "10"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateDegradedStillReturns200(t *testing.T) {
	draft := &model.InvoiceDraft{ID: uuid.New(), ClientName: "Acme Corp"}
	svc := &fakeInvoiceService{generated: &model.GenerateInvoiceResponse{
		Draft:      draft,
		Persisted:  false,
		StoreError: "connection refused",
	}}
	router := setupRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/api/invoices/generate", map[string]interface{}{
		"items": []map[string]string{
			{"description": "Work", "quantity": "1", "rate": "10"},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Persisted  bool   `json:"persisted"`
			StoreError string `json:"store_error"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.False(t, body.Data.Persisted)
	assert.Equal(t, "connection refused", body.Data.StoreError)
}

func TestCreateInvoiceMissingClient(t *testing.T) {
	svc := &fakeInvoiceService{}
	router := setupRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/api/invoices", map[string]interface{}{
		"date":     "2026-01-15",
		"due_date": "2026-02-01",
		"items": []map[string]interface{}{
			{"description": "Work", "quantity": 1, "rate": "10"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing client_id")
	assert.Empty(t, svc.invoices)
}

func TestCreateInvoiceSuccessIs200(t *testing.T) {
	svc := &fakeInvoiceService{}
	router := setupRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/api/invoices", map[string]interface{}{
		"client_id": uuid.NewString(),
		"date":      "2026-01-15",
		"due_date":  "2026-02-01",
		"total":     "120.50",
		"items": []map[string]interface{}{
			{"description": "Work", "quantity": 1, "rate": "10"},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.invoices, 1)
}

func TestDownloadPDFHeaders(t *testing.T) {
	id := uuid.New()
	svc := &fakeInvoiceService{invoices: []model.Invoice{{ID: id}}}
	router := setupRouter(svc)

	w := doJSON(t, router, http.MethodGet, "/api/invoices/"+id.String()+"/pdf", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "invoice-"+model.ShortID(id)+".pdf")
}

func TestDownloadPDFNotFound(t *testing.T) {
	svc := &fakeInvoiceService{}
	router := setupRouter(svc)

	w := doJSON(t, router, http.MethodGet, "/api/invoices/"+uuid.NewString()+"/pdf", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadPDFInvalidID(t *testing.T) {
	svc := &fakeInvoiceService{}
	router := setupRouter(svc)

	w := doJSON(t, router, http.MethodGet, "/api/invoices/not-a-uuid/pdf", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRenderDraftPDFEndpoint(t *testing.T) {
	svc := &fakeInvoiceService{}
	router := setupRouter(svc)

	w := doJSON(t, router, http.MethodPost, "/api/invoices/pdf", map[string]interface{}{
		"client_name": "Acme Corp",
		"date":        "2026-01-15",
		"due_date":    "2026-02-01",
		"items": []map[string]interface{}{
			{"description": "Work", "quantity": 1, "rate": "10"},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestPrintInvoiceSurface(t *testing.T) {
	id := uuid.New()
	email := "billing@acme.example"
	svc := &fakeInvoiceService{invoices: []model.Invoice{{
		ID:          id,
		ClientName:  "Acme Corp",
		ClientEmail: &email,
		Date:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Items: []model.InvoiceItem{
			{Description: "Design", Quantity: 2, Rate: decimal.RequireFromString("50.00")},
		},
	}}}
	router := setupRouter(svc)

	w := doJSON(t, router, http.MethodGet, "/api/invoices/"+id.String()+"/print", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	html := w.Body.String()
	assert.Contains(t, html, "Invoice #"+model.ShortID(id))
	assert.Contains(t, html, "Acme Corp")
	assert.Contains(t, html, "window.print()")
	assert.Contains(t, html, "$100.00", "the printed total is recomputed from the lines")
}

func TestPrintInvoiceNotFound(t *testing.T) {
	svc := &fakeInvoiceService{}
	router := setupRouter(svc)

	w := doJSON(t, router, http.MethodGet, "/api/invoices/"+uuid.NewString()+"/print", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
