package infra

// pdf.go renders the printable RFQ sheet sent to vendors: header block,
// line-item table and invited vendor list on A4 portrait.

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/embunadw/E-Procurement/internal/model"

	"github.com/go-pdf/fpdf"
)

// RenderRfqPDF expects rfq loaded with its details, user and invitations.
func RenderRfqPDF(rfq *model.Rfq) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(rfq.Number, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "REQUEST FOR QUOTATION", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, tr(rfq.Number), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	label := func(k, v string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(40, 6, k, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW-40, 6, tr(v), "", "L", false)
	}
	label("Title", rfq.Title)
	label("Category", string(rfq.Category))
	label("Type", string(rfq.Type))
	label("Due date", rfq.DueDate.Format("02 Jan 2006 15:04"))
	label("Approval", string(rfq.IsApproved))
	if rfq.User != nil {
		label("Requested by", rfq.User.Username)
	}
	if rfq.Specification != "" {
		label("Specification", rfq.Specification)
	}
	pdf.Ln(3)

	// ── Line items ───────────────────────────────────────────────────────────
	cols := []struct {
		title string
		width float64
		align string
	}{
		{"No", 10, "C"},
		{"PR Number", 28, "L"},
		{"Part Number", 35, "L"},
		{"Description", 62, "L"},
		{"Qty", 20, "R"},
		{"UoM", 15, "C"},
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for i, d := range rfq.Details {
		desc := d.Description
		if len(desc) > 45 {
			desc = desc[:44] + "..."
		}
		values := []string{
			strconv.Itoa(i + 1),
			d.PRNumber,
			d.PartNumber,
			desc,
			strconv.FormatFloat(d.PRQty, 'f', -1, 64),
			d.PRUom,
		}
		for j, c := range cols {
			pdf.CellFormat(c.width, 6, tr(values[j]), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(rfq.Details) == 0 {
		pdf.CellFormat(contentW, 6, "No line items", "1", 1, "C", false, 0, "")
	}

	// ── Invited vendors ──────────────────────────────────────────────────────
	if len(rfq.Vendors) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Invited vendors", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, inv := range rfq.Vendors {
			name := fmt.Sprintf("Vendor #%d", inv.VendorID)
			if inv.Vendor != nil {
				name = inv.Vendor.Name
			}
			pdf.CellFormat(contentW, 5, tr("- "+name), "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render rfq %d: %w", rfq.RfqID, err)
	}
	return buf.Bytes(), nil
}
