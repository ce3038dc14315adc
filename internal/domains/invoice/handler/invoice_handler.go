package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billpop-backend/internal/domains/invoice/model"
	"billpop-backend/internal/domains/invoice/service"
	"billpop-backend/internal/shared/response"
)

// =====================================================
// INVOICE HANDLER
// =====================================================
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// RegisterRoutes registers all invoice routes
func (h *InvoiceHandler) RegisterRoutes(api *gin.RouterGroup) {
	invoices := api.Group("/invoices")
	{
		invoices.GET("", h.ListInvoices)           // GET  /api/invoices
		invoices.POST("", h.CreateInvoice)         // POST /api/invoices
		invoices.POST("/generate", h.Generate)     // POST /api/invoices/generate
		invoices.POST("/pdf", h.RenderDraftPDF)    // POST /api/invoices/pdf
		invoices.GET("/:id/pdf", h.DownloadPDF)    // GET  /api/invoices/:id/pdf
		invoices.GET("/:id/print", h.PrintInvoice) // GET  /api/invoices/:id/print
	}
}

// ListInvoices returns all invoices newest-first, each with its nested
// client (when still present) and ordered items.
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, invoices)
}

// CreateInvoice persists an already-normalized invoice payload.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req model.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid invoice payload", err.Error())
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrNoValidClient) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, invoice)
}

// Generate assembles an invoice from form-level input and persists it.
// Assembly failures are 400s; a store failure still returns 200 with
// persisted=false and the assembled draft.
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req model.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid invoice payload", err.Error())
		return
	}

	result, err := h.invoiceService.Generate(c.Request.Context(), req)
	if err != nil {
		if isAssemblyError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// RenderDraftPDF renders a draft payload to PDF without persisting it.
func (h *InvoiceHandler) RenderDraftPDF(c *gin.Context) {
	var req model.RenderPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid draft payload", err.Error())
		return
	}

	data, filename, err := h.invoiceService.RenderDraftPDF(c.Request.Context(), req)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	servePDF(c, data, filename)
}

// DownloadPDF renders a stored invoice to PDF.
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice id")
		return
	}

	data, filename, err := h.invoiceService.RenderInvoicePDF(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrInvoiceNotFound) {
			response.NotFound(c, "Invoice not found")
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	servePDF(c, data, filename)
}

func servePDF(c *gin.Context, data []byte, filename string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func isAssemblyError(err error) bool {
	return errors.Is(err, model.ErrNoValidClient) ||
		errors.Is(err, model.ErrClientFlowIncomplete) ||
		errors.Is(err, model.ErrEmptyItems) ||
		errors.Is(err, model.ErrMissingDescription)
}
