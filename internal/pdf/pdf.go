// Package pdf renders an invoice document to a PDF file using core fonts.
package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/woodworkpro/woodwork-server/internal/currency"
	"github.com/woodworkpro/woodwork-server/internal/services"
)

const (
	pageMargin = 15.0
	accentR    = 0
	accentG    = 90
	accentB    = 156
)

// Render produces the PDF bytes for an invoice document.
func Render(doc services.InvoiceDocument) ([]byte, error) {
	f := gofpdf.New("P", "mm", "A4", "")
	f.SetTitle(doc.Title, true)
	f.SetMargins(pageMargin, pageMargin, pageMargin)
	f.SetAutoPageBreak(true, pageMargin)
	f.AddPage()

	pageW, _ := f.GetPageSize()
	usable := pageW - 2*pageMargin

	embedLogo(f, doc.LogoDataURI)

	// Header: brand block left, invoice meta right.
	f.SetFont("Helvetica", "B", 22)
	f.SetTextColor(accentR, accentG, accentB)
	f.CellFormat(usable*0.6, 10, doc.BrandName, "", 0, "L", false, 0, "")
	f.SetTextColor(51, 51, 51)
	f.CellFormat(usable*0.4, 10, doc.T("invoice"), "", 1, "R", false, 0, "")

	f.SetFont("Helvetica", "", 9)
	f.SetTextColor(85, 85, 85)
	f.MultiCell(usable*0.6, 4.5, doc.CompanyInfo, "", "L", false)
	f.SetTextColor(51, 51, 51)
	f.CellFormat(usable, 5, fmt.Sprintf("%s: %s", doc.T("job_title"), doc.Title), "", 1, "R", false, 0, "")
	f.CellFormat(usable, 5, fmt.Sprintf("%s: %s", doc.T("date"), doc.Date.Format("1/2/2006")), "", 1, "R", false, 0, "")

	f.SetDrawColor(accentR, accentG, accentB)
	f.Line(pageMargin, f.GetY()+2, pageW-pageMargin, f.GetY()+2)
	f.Ln(8)

	// Bill-to block.
	sectionTitle(f, doc.T("bill_to"))
	f.SetFont("Helvetica", "", 10)
	if doc.HasCustomer {
		f.SetFont("Helvetica", "B", 10)
		f.CellFormat(usable, 5, doc.CustomerName, "", 1, "L", false, 0, "")
		f.SetFont("Helvetica", "", 10)
		if doc.CustomerAddress != "" {
			f.CellFormat(usable, 5, doc.CustomerAddress, "", 1, "L", false, 0, "")
		}
		if doc.CustomerPhone != "" {
			f.CellFormat(usable, 5, doc.CustomerPhone, "", 1, "L", false, 0, "")
		}
	} else {
		f.CellFormat(usable, 5, doc.CustomerPlaceholder, "", 1, "L", false, 0, "")
	}
	f.Ln(6)

	// Work summary.
	sectionTitle(f, doc.T("work_summary"))
	for _, door := range doc.Doors {
		f.SetFont("Helvetica", "B", 10)
		f.SetFillColor(249, 249, 249)
		f.CellFormat(usable, 7, fmt.Sprintf("%s #%d", doc.T("door"), door.Number), "1", 1, "L", true, 0, "")
		f.SetFont("Helvetica", "", 9)
		for _, line := range door.Lines {
			label := fmt.Sprintf("%s (%s %s)", line.Label, trimFloat(line.Quantity), line.Unit)
			rate := fmt.Sprintf("@ %s/%s", currency.PKR(line.UnitPrice), line.Unit)
			f.CellFormat(usable*0.45, 6, label, "1", 0, "L", false, 0, "")
			f.CellFormat(usable*0.30, 6, rate, "1", 0, "L", false, 0, "")
			f.CellFormat(usable*0.25, 6, currency.PKR(line.Amount), "1", 1, "R", false, 0, "")
		}
		f.SetFont("Helvetica", "B", 9)
		f.CellFormat(usable*0.75, 6, doc.T("subtotal"), "1", 0, "R", false, 0, "")
		f.CellFormat(usable*0.25, 6, currency.PKR(door.Subtotal), "1", 1, "R", false, 0, "")
		f.Ln(2)
	}
	f.Ln(4)

	// Grand total.
	f.SetFont("Helvetica", "B", 13)
	f.SetTextColor(accentR, accentG, accentB)
	f.CellFormat(usable*0.75, 8, doc.T("grand_total"), "", 0, "R", false, 0, "")
	f.CellFormat(usable*0.25, 8, currency.PKR(doc.GrandTotal), "", 1, "R", false, 0, "")
	f.SetTextColor(51, 51, 51)

	if doc.Notes != "" {
		f.Ln(4)
		sectionTitle(f, doc.T("notes"))
		f.SetFont("Helvetica", "", 10)
		f.MultiCell(usable, 5, doc.Notes, "", "L", false)
	}

	f.Ln(10)
	f.SetFont("Helvetica", "I", 8)
	f.SetTextColor(136, 136, 136)
	f.CellFormat(usable, 5, doc.T("thank_you"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render invoice pdf")
	}
	return buf.Bytes(), nil
}

func trimFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func sectionTitle(f *gofpdf.Fpdf, title string) {
	f.SetFont("Helvetica", "B", 12)
	f.SetTextColor(accentR, accentG, accentB)
	f.CellFormat(0, 7, title, "B", 1, "L", false, 0, "")
	f.SetTextColor(51, 51, 51)
	f.Ln(2)
}

// embedLogo decodes the document's data: URI and draws it top-left. Failures
// degrade to no logo, matching the HTML export.
func embedLogo(f *gofpdf.Fpdf, dataURI string) {
	if dataURI == "" {
		return
	}
	comma := strings.Index(dataURI, ",")
	if !strings.HasPrefix(dataURI, "data:") || comma < 0 {
		return
	}
	raw, err := base64.StdEncoding.DecodeString(dataURI[comma+1:])
	if err != nil {
		log.WithError(err).Warn("could not decode logo for PDF")
		return
	}
	imageType := "JPG"
	if strings.Contains(dataURI[:comma], "png") {
		imageType = "PNG"
	}
	opts := gofpdf.ImageOptions{ImageType: imageType}
	f.RegisterImageOptionsReader("brand-logo", opts, bytes.NewReader(raw))
	if f.Err() {
		log.WithError(f.Error()).Warn("could not register logo image for PDF")
		f.ClearError()
		return
	}
	f.ImageOptions("brand-logo", pageMargin, pageMargin, 20, 20, false, opts, 0, "")
	f.SetY(pageMargin + 24)
}
