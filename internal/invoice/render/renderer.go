// Package render turns one invoice into a standalone HTML document. Four
// templates exist; all of them consume the same RenderInput and display the
// same derived numbers, differing only in layout and typography. The output
// embeds its own stylesheet (including A4 print rules) so the exact same
// document serves the live preview, the print dialog and the PDF backend.
package render

import "time"

// RenderInput is the deterministic input used for invoice rendering. All
// derived amounts arrive pre-computed; renderers never do math.
type RenderInput struct {
	Invoice   InvoiceView
	Sender    PartyView
	Receiver  PartyView
	Items     []LineItemView
	Totals    TotalsView
	Signature SignatureView
}

type InvoiceView struct {
	Number          string
	Status          string
	InvoiceDate     *time.Time
	DueDate         *time.Time
	Currency        string
	LogoURL         string
	AdditionalNotes string
	PaymentTerms    string
	Payment         PaymentView
}

type PartyView struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	ZipCode string
	Country string
}

type PaymentView struct {
	BankName      string
	AccountName   string
	AccountNumber string
}

type LineItemView struct {
	Name        string
	Description string
	Quantity    float64
	UnitPrice   float64
	Total       float64
}

// ChargeRow is one rendered modifier line (discount, tax or shipping).
// Negative rows subtract from the running total.
type ChargeRow struct {
	Label    string
	Amount   float64
	Negative bool
}

type TotalsView struct {
	SubTotal     float64
	Charges      []ChargeRow
	Total        float64
	TotalInWords string
}

type SignatureView struct {
	Present    bool
	IsImage    bool
	Data       string
	FontFamily string
	Color      string
}

// Renderer renders one invoice template.
type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}

// TemplateCount is the number of shipped templates.
const TemplateCount = 4

// ForTemplate returns the renderer for a template id. Unknown ids fall back
// to template 1 deterministically; rendering never fails on a bad selector.
func ForTemplate(id int) Renderer {
	switch id {
	case 2:
		return bandedRenderer
	case 3:
		return minimalRenderer
	case 4:
		return sidebarRenderer
	default:
		return classicRenderer
	}
}

var (
	classicRenderer = newHTMLRenderer("classic", classicTemplate)
	bandedRenderer  = newHTMLRenderer("banded", bandedTemplate)
	minimalRenderer = newHTMLRenderer("minimal", minimalTemplate)
	sidebarRenderer = newHTMLRenderer("sidebar", sidebarTemplate)
)
