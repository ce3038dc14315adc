package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"billpop-backend/internal/domains/invoice/model"
)

const (
	pageMargin = 15.0

	// Column share of the usable width: description, qty, rate, amount.
	descShare   = 0.40
	qtyShare    = 0.20
	rateShare   = 0.20
	amountShare = 0.20

	dateFormat      = "January 2, 2006"
	timestampFormat = "1/2/2006, 3:04:05 PM"

	paymentInstructions = "Please make payment by the due date to avoid late fees. " +
		"Thank you for your business!"
)

// =====================================================
// PDF RENDERER
// =====================================================
// Renders a draft to PDF bytes. Rendering is deterministic for equal
// inputs: the only ambient value, the generation timestamp, is passed
// in by the caller and pinned into the document metadata.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Filename returns the attachment name for an invoice id.
func Filename(id uuid.UUID) string {
	return "invoice-" + model.ShortID(id) + ".pdf"
}

// Render produces the invoice document. The total printed at the foot
// of the table is recomputed from the line items, independent of any
// total stored alongside the invoice.
func (r *Renderer) Render(draft *model.InvoiceDraft, now time.Time) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(now)
	doc.SetTitle("Invoice #"+draft.ShortID(), false)
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.AddPage()

	pageWidth, _ := doc.GetPageSize()
	usable := pageWidth - 2*pageMargin

	r.header(doc, draft)
	r.parties(doc, draft, usable)
	r.itemsTable(doc, draft, usable)
	r.payment(doc, usable)
	r.footer(doc, usable, now)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) header(doc *gofpdf.Fpdf, draft *model.InvoiceDraft) {
	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(17, 24, 39)
	doc.CellFormat(0, 12, "Invoice", "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 12)
	doc.SetTextColor(107, 114, 128)
	doc.CellFormat(0, 7, "Invoice #"+draft.ShortID(), "", 1, "L", false, 0, "")
	doc.Ln(6)
}

func (r *Renderer) parties(doc *gofpdf.Fpdf, draft *model.InvoiceDraft, usable float64) {
	half := usable / 2
	top := doc.GetY()

	// Left column: who the invoice bills.
	doc.SetFont("Helvetica", "B", 14)
	doc.SetTextColor(17, 24, 39)
	doc.CellFormat(half, 8, "Bill To", "B", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(half, 6, draft.ClientName, "", 1, "L", false, 0, "")
	if draft.ClientEmail != "" {
		doc.SetTextColor(107, 114, 128)
		doc.CellFormat(half, 6, draft.ClientEmail, "", 1, "L", false, 0, "")
	}
	bottom := doc.GetY()

	// Right column: dates.
	doc.SetXY(pageMargin+half, top)
	doc.SetFont("Helvetica", "B", 14)
	doc.SetTextColor(17, 24, 39)
	doc.CellFormat(half, 8, "Invoice Details", "B", 1, "L", false, 0, "")

	r.dateLine(doc, half, "Date Issued:", draft.Date)
	r.dateLine(doc, half, "Due Date:", draft.DueDate)
	if y := doc.GetY(); y > bottom {
		bottom = y
	}

	doc.SetXY(pageMargin, bottom)
	doc.Ln(8)
}

func (r *Renderer) dateLine(doc *gofpdf.Fpdf, width float64, label string, value time.Time) {
	doc.SetX(pageMargin + width)
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(107, 114, 128)
	doc.CellFormat(width/2, 6, label, "", 0, "L", false, 0, "")
	doc.SetTextColor(17, 24, 39)
	doc.CellFormat(width/2, 6, value.Format(dateFormat), "", 1, "L", false, 0, "")
}

func (r *Renderer) itemsTable(doc *gofpdf.Fpdf, draft *model.InvoiceDraft, usable float64) {
	widths := []float64{
		usable * descShare,
		usable * qtyShare,
		usable * rateShare,
		usable * amountShare,
	}
	headers := []string{"DESCRIPTION", "QTY", "RATE", "AMOUNT"}
	aligns := []string{"L", "R", "R", "R"}

	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(55, 65, 81)
	doc.SetFillColor(243, 244, 246)
	for i, h := range headers {
		doc.CellFormat(widths[i], 9, h, "", 0, aligns[i], true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(17, 24, 39)
	doc.SetDrawColor(229, 231, 235)
	for _, it := range draft.Items {
		cells := []string{
			it.Description,
			fmt.Sprintf("%d", it.Quantity),
			"$" + it.Rate.StringFixed(2),
			"$" + it.Amount().StringFixed(2),
		}
		for i, c := range cells {
			doc.CellFormat(widths[i], 9, c, "B", 0, aligns[i], false, 0, "")
		}
		doc.Ln(-1)
	}

	doc.Ln(3)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(widths[0]+widths[1]+widths[2], 9, "Total", "", 0, "R", false, 0, "")
	doc.CellFormat(widths[3], 9, "$"+draft.Subtotal().StringFixed(2), "", 1, "R", false, 0, "")
}

func (r *Renderer) payment(doc *gofpdf.Fpdf, usable float64) {
	doc.Ln(10)
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(17, 24, 39)
	doc.CellFormat(usable, 7, "Payment Instructions", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(107, 114, 128)
	doc.MultiCell(usable, 5, paymentInstructions, "", "L", false)
}

func (r *Renderer) footer(doc *gofpdf.Fpdf, usable float64, now time.Time) {
	doc.SetY(-25)
	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(156, 163, 175)
	line := "Generated by BillPop | " + now.Format(timestampFormat)
	doc.CellFormat(usable, 6, line, "", 1, "C", false, 0, "")
}
