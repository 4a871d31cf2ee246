package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/smallbiznis/invoicely/internal/money"
)

type htmlRenderer struct {
	tpl *template.Template
}

func newHTMLRenderer(name, source string) Renderer {
	funcs := template.FuncMap{
		"formatMoney":    formatMoney,
		"formatDate":     formatDate,
		"formatQuantity": formatQuantity,
	}
	return &htmlRenderer{
		tpl: template.Must(template.New(name).Funcs(funcs).Parse(source)),
	}
}

func (r *htmlRenderer) RenderHTML(input RenderInput) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatMoney renders an amount with thousands separators and the currency
// code appended as a literal suffix token. No symbol lookup or conversion.
func formatMoney(amount float64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}
	return money.FormatThousands(amount) + " " + currency
}

func formatDate(value *time.Time) string {
	if value == nil || value.IsZero() {
		return "-"
	}
	return value.UTC().Format("Jan 02, 2006")
}

func formatQuantity(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
}
