package handler

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billpop-backend/internal/domains/invoice/model"
	"billpop-backend/internal/shared/response"
)

// =====================================================
// PRINT SURFACE
// =====================================================
// A self-contained HTML rendition of one invoice that opens the
// browser's print dialog on load. It mirrors the PDF layout so either
// export path produces the same document.

const printDateFormat = "January 2, 2006"

var printTmpl = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice #{{.ShortID}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #111827; margin: 40px; }
  h1 { font-size: 32px; margin: 0; }
  .invoice-number { color: #6b7280; margin-bottom: 32px; }
  .columns { display: flex; justify-content: space-between; margin-bottom: 32px; }
  .columns h2 { font-size: 16px; border-bottom: 1px solid #e5e7eb; padding-bottom: 6px; }
  .label { color: #6b7280; margin-right: 8px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 16px; }
  th { background: #f3f4f6; color: #374151; font-size: 12px; text-transform: uppercase; padding: 8px; }
  th:first-child, td:first-child { text-align: left; width: 40%; }
  th, td { text-align: right; width: 20%; padding: 8px; border-bottom: 1px solid #e5e7eb; }
  .total { font-weight: bold; font-size: 16px; text-align: right; }
  .instructions { color: #6b7280; margin-top: 32px; }
  footer { color: #9ca3af; font-size: 12px; text-align: center; margin-top: 48px; }
</style>
</head>
<body onload="window.print()">
<h1>Invoice</h1>
<div class="invoice-number">Invoice #{{.ShortID}}</div>
<div class="columns">
  <div>
    <h2>Bill To</h2>
    <div>{{.ClientName}}</div>
    {{if .ClientEmail}}<div class="label">{{.ClientEmail}}</div>{{end}}
  </div>
  <div>
    <h2>Invoice Details</h2>
    <div><span class="label">Date Issued:</span>{{.Date}}</div>
    <div><span class="label">Due Date:</span>{{.DueDate}}</div>
  </div>
</div>
<table>
  <thead>
    <tr><th>Description</th><th>Qty</th><th>Rate</th><th>Amount</th></tr>
  </thead>
  <tbody>
    {{range .Items}}
    <tr><td>{{.Description}}</td><td>{{.Quantity}}</td><td>${{.Rate}}</td><td>${{.Amount}}</td></tr>
    {{end}}
  </tbody>
</table>
<div class="total">Total: ${{.Total}}</div>
<div class="instructions">
  <strong>Payment Instructions</strong><br>
  Please make payment by the due date to avoid late fees. Thank you for your business!
</div>
<footer>Generated by BillPop | {{.GeneratedAt}}</footer>
</body>
</html>
`))

type printView struct {
	ShortID     string
	ClientName  string
	ClientEmail string
	Date        string
	DueDate     string
	Items       []printItem
	Total       string
	GeneratedAt string
}

type printItem struct {
	Description string
	Quantity    int
	Rate        string
	Amount      string
}

// PrintInvoice serves the printable HTML view of a stored invoice.
func (h *InvoiceHandler) PrintInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice id")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrInvoiceNotFound) {
			response.NotFound(c, "Invoice not found")
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	view := buildPrintView(invoice, time.Now())
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := printTmpl.Execute(c.Writer, view); err != nil {
		_ = c.Error(err)
	}
}

func buildPrintView(invoice *model.Invoice, now time.Time) printView {
	view := printView{
		ShortID:     invoice.ShortID(),
		ClientName:  invoice.ClientName,
		Date:        invoice.Date.Format(printDateFormat),
		DueDate:     invoice.DueDate.Format(printDateFormat),
		GeneratedAt: now.Format("1/2/2006, 3:04:05 PM"),
	}
	if invoice.ClientEmail != nil {
		view.ClientEmail = *invoice.ClientEmail
	}

	// The printed total is recomputed from the lines, like the PDF.
	total := decimal.Zero
	for _, it := range invoice.Items {
		amount := it.ComputeAmount()
		total = total.Add(amount)
		view.Items = append(view.Items, printItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate.StringFixed(2),
			Amount:      amount.StringFixed(2),
		})
	}
	view.Total = total.StringFixed(2)
	return view
}
