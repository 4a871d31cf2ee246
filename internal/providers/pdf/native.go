package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/smallbiznis/invoicely/internal/invoice/render"
	"github.com/smallbiznis/invoicely/internal/money"
)

// NativeProvider draws a simplified invoice layout with maroto. It ignores
// template styling but shows the same numbers, so it works on hosts without
// a Chromium binary.
type NativeProvider struct{}

func NewNative() *NativeProvider {
	return &NativeProvider{}
}

func (p *NativeProvider) GenerateInvoice(_ context.Context, doc Document) (io.Reader, error) {
	in := doc.Input

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, "Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, in.Invoice.Number, props.Text{
			Size:  11,
			Align: align.Right,
			Top:   3,
		}),
	)

	m.AddRow(26,
		col.New(4).Add(partyLines("From", in.Sender)...),
		col.New(4).Add(partyLines("Bill to", in.Receiver)...),
		col.New(4).Add(
			labelText("Issued", 0),
			valueText(dateOrDash(in.Invoice.InvoiceDate), 4),
			labelText("Due", 10),
			valueText(dateOrDash(in.Invoice.DueDate), 14),
		),
	)

	m.AddRows(p.itemRows(in)...)
	m.AddRows(p.totalRows(in)...)

	if notes := strings.TrimSpace(in.Invoice.AdditionalNotes); notes != "" {
		m.AddRow(12,
			col.New(12).Add(
				labelText("Notes", 0),
				valueText(notes, 4),
			),
		)
	}
	if in.Invoice.Payment.AccountNumber != "" {
		m.AddRow(16,
			col.New(12).Add(
				labelText("Payment details", 0),
				valueText(strings.TrimSpace(in.Invoice.Payment.BankName+" "+in.Invoice.Payment.AccountName), 4),
				valueText(in.Invoice.Payment.AccountNumber, 8),
			),
		)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: maroto generate: %v", ErrGenerateFailed, err)
	}
	return bytes.NewReader(out.GetBytes()), nil
}

func (p *NativeProvider) itemRows(in render.RenderInput) []core.Row {
	rows := []core.Row{
		row.New(8).Add(
			text.NewCol(6, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		),
		row.New(1).Add(line.NewCol(12)),
	}
	currency := in.Invoice.Currency
	for _, item := range in.Items {
		name := item.Name
		if item.Description != "" {
			name = name + " - " + item.Description
		}
		rows = append(rows, row.New(7).Add(
			text.NewCol(6, name, props.Text{Size: 9}),
			text.NewCol(2, formatQty(item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatAmount(item.UnitPrice, currency), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatAmount(item.Total, currency), props.Text{Size: 9, Align: align.Right}),
		))
	}
	rows = append(rows, row.New(1).Add(line.NewCol(12)))
	return rows
}

func (p *NativeProvider) totalRows(in render.RenderInput) []core.Row {
	currency := in.Invoice.Currency
	rows := []core.Row{
		summaryRow("Subtotal", formatAmount(in.Totals.SubTotal, currency), false),
	}
	for _, charge := range in.Totals.Charges {
		amount := formatAmount(charge.Amount, currency)
		if charge.Negative {
			amount = "-" + amount
		}
		rows = append(rows, summaryRow(charge.Label, amount, false))
	}
	rows = append(rows,
		summaryRow("Total", formatAmount(in.Totals.Total, currency), true),
		row.New(6).Add(
			col.New(6),
			text.NewCol(6, in.Totals.TotalInWords, props.Text{
				Size:  8,
				Style: fontstyle.Italic,
				Align: align.Right,
			}),
		),
	)
	return rows
}

func summaryRow(label, amount string, final bool) core.Row {
	style := fontstyle.Normal
	size := 9.0
	if final {
		style = fontstyle.Bold
		size = 11
	}
	return row.New(6).Add(
		col.New(4),
		text.NewCol(4, label, props.Text{Size: size, Style: style, Align: align.Right}),
		text.NewCol(4, amount, props.Text{Size: size, Style: style, Align: align.Right}),
	)
}

func partyLines(label string, party render.PartyView) []core.Component {
	parts := []core.Component{
		labelText(label, 0),
		valueText(party.Name, 4),
	}
	offset := 8.0
	for _, v := range []string{party.Address, strings.TrimSpace(party.City + " " + party.ZipCode), party.Email} {
		if strings.TrimSpace(v) == "" {
			continue
		}
		parts = append(parts, valueText(v, offset))
		offset += 4
	}
	return parts
}

func labelText(value string, top float64) core.Component {
	return text.New(value, props.Text{Size: 7, Style: fontstyle.Bold, Top: top})
}

func valueText(value string, top float64) core.Component {
	return text.New(value, props.Text{Size: 9, Top: top})
}

func formatAmount(amount float64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}
	return money.FormatThousands(amount) + " " + currency
}

func formatQty(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
}

func dateOrDash(value *time.Time) string {
	if value == nil || value.IsZero() {
		return "-"
	}
	return value.UTC().Format("Jan 02, 2006")
}
