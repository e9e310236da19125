package services

import (
	"encoding/base64"
	"html/template"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/woodworkpro/woodwork-server/internal/i18n"
	"github.com/woodworkpro/woodwork-server/internal/models"
)

// InvoiceLine is one non-zero billing category of a door. Quantity, unit
// price and amount all come from the persisted door record.
type InvoiceLine struct {
	Label     string
	Unit      string
	Quantity  float64
	UnitPrice float64
	Amount    float64
}

type InvoiceDoor struct {
	Number   int
	Lines    []InvoiceLine
	Subtotal float64
}

// InvoiceDocument is the presentation model fed to the HTML template and the
// PDF renderer. It performs no computation of its own: every amount is taken
// from already-persisted fields so the exported invoice always matches what
// was saved.
type InvoiceDocument struct {
	BrandName   string
	CompanyInfo string
	// LogoDataURI is a data: URI for inline embedding, empty when the logo
	// is unset or unreadable.
	LogoDataURI string
	Title       string
	Date        time.Time

	HasCustomer     bool
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	// Placeholder shown in the bill-to block when no customer is linked.
	CustomerPlaceholder string

	Doors      []InvoiceDoor
	GrandTotal float64
	Notes      string

	Lang string
}

// LogoURL exposes the data: URI to html/template, which would otherwise
// filter it out of a src attribute.
func (d InvoiceDocument) LogoURL() template.URL { return template.URL(d.LogoDataURI) }

// T resolves a message code in the document's language.
func (d InvoiceDocument) T(code string) string { return i18n.T(d.Lang, code) }

// InvoiceService builds invoice documents from saved jobs.
type InvoiceService struct{}

func NewInvoiceService() *InvoiceService { return &InvoiceService{} }

// BuildInvoice assembles the document for a saved job. customer may be nil.
// Categories with a zero measurement are omitted entirely, not shown as
// zero-value rows. An unreadable logo degrades to no logo.
func (s *InvoiceService) BuildInvoice(job models.Job, customer *models.Customer, branding models.BrandingSettings, lang string) InvoiceDocument {
	doc := InvoiceDocument{
		BrandName:           branding.BrandName,
		CompanyInfo:         branding.CompanyInfo,
		LogoDataURI:         encodeLogo(branding.LogoPath),
		Title:               job.Title,
		Date:                job.Date,
		GrandTotal:          job.GrandTotal,
		Notes:               job.Notes,
		CustomerPlaceholder: i18n.T(lang, "valued_customer"),
		Lang:                lang,
	}
	if customer != nil {
		doc.HasCustomer = true
		doc.CustomerName = customer.Name
		doc.CustomerPhone = customer.Phone
		doc.CustomerAddress = customer.Address
	}
	for i, d := range job.Doors {
		id := InvoiceDoor{Number: i + 1, Subtotal: d.Subtotal}
		add := func(code, unitCode string, qty, price float64) {
			if qty <= 0 {
				return
			}
			id.Lines = append(id.Lines, InvoiceLine{
				Label:     i18n.T(lang, code),
				Unit:      i18n.T(lang, unitCode),
				Quantity:  qty,
				UnitPrice: price,
				Amount:    qty * price,
			})
		}
		add("area", "sq_ft", d.Area, d.AreaPrice)
		add("beading", "ft", d.Beading, d.BeadingPrice)
		add("frame", "ft", d.Frame, d.FramePrice)
		add("paling", "ft", d.Paling, d.PalingPrice)
		add("polish", "sq_ft", d.Polish, d.PolishPrice)
		doc.Doors = append(doc.Doors, id)
	}
	return doc
}

// encodeLogo reads the branding logo and returns it as a data: URI. Any
// failure is logged and yields an empty string: the invoice renders without
// a logo rather than failing the export.
func encodeLogo(path string) string {
	if path == "" {
		return ""
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("could not read logo for invoice")
		return ""
	}
	mime := http.DetectContentType(raw)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw)
}
