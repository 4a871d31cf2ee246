package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	invoicedomain "github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/render"
)

func (s *Service) Render(ctx context.Context, id string, templateID int) (string, error) {
	inv, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}
	return s.RenderPayload(ctx, inv, templateID)
}

// RenderPayload renders an invoice that did not come through storage, so
// derived totals are re-established before anything is drawn.
func (s *Service) RenderPayload(ctx context.Context, inv invoicedomain.Invoice, templateID int) (string, error) {
	inv = inv.Recalculate()
	if templateID < 1 || templateID > render.TemplateCount {
		templateID = inv.Template
	}
	return render.ForTemplate(templateID).RenderHTML(buildRenderInput(inv, s.clock.Now()))
}

// buildRenderInput projects the aggregate into the flat view the templates
// consume. Charge rows only appear for modifiers the document should show.
func buildRenderInput(inv invoicedomain.Invoice, now time.Time) render.RenderInput {
	details := inv.Details

	input := render.RenderInput{
		Invoice: render.InvoiceView{
			Number:          inv.InvoiceNumber,
			Status:          string(inv.EffectiveStatus(now)),
			Currency:        inv.Currency,
			LogoURL:         details.InvoiceLogo,
			AdditionalNotes: details.AdditionalNotes,
			PaymentTerms:    details.PaymentTerms,
			Payment: render.PaymentView{
				BankName:      details.PaymentInformation.BankName,
				AccountName:   details.PaymentInformation.AccountName,
				AccountNumber: details.PaymentInformation.AccountNumber,
			},
		},
		Sender:   partyView(inv.Sender),
		Receiver: partyView(inv.Receiver),
		Totals: render.TotalsView{
			SubTotal:     details.SubTotal,
			Charges:      chargeRows(details),
			Total:        details.TotalAmount,
			TotalInWords: details.TotalAmountInWords,
		},
		Signature: signatureView(details.Signature),
	}

	if !details.InvoiceDate.IsZero() {
		invoiceDate := details.InvoiceDate
		input.Invoice.InvoiceDate = &invoiceDate
	}
	if !details.DueDate.IsZero() {
		dueDate := details.DueDate
		input.Invoice.DueDate = &dueDate
	}

	input.Items = make([]render.LineItemView, 0, len(details.Items))
	for _, item := range details.Items {
		input.Items = append(input.Items, render.LineItemView{
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}

	return input
}

func chargeRows(details invoicedomain.Details) []render.ChargeRow {
	rows := make([]render.ChargeRow, 0, 3)
	if details.Discount.DisplayActive() {
		rows = append(rows, render.ChargeRow{
			Label:    modifierLabel("Discount", details.Discount),
			Amount:   details.DiscountAmount,
			Negative: true,
		})
	}
	if details.Tax.DisplayActive() {
		rows = append(rows, render.ChargeRow{
			Label:  modifierLabel("Tax", details.Tax),
			Amount: details.TaxAmount,
		})
	}
	if details.Shipping.DisplayActive() {
		rows = append(rows, render.ChargeRow{
			Label:  modifierLabel("Shipping", details.Shipping),
			Amount: details.ShippingAmount,
		})
	}
	return rows
}

// modifierLabel appends the rate for percentage modifiers, e.g.
// "Discount (10%)". Amount modifiers keep the bare label.
func modifierLabel(name string, m invoicedomain.Modifier) string {
	if m.ValueType != invoicedomain.ValuePercentage {
		return name
	}
	return fmt.Sprintf("%s (%s%%)", name, strconv.FormatFloat(m.Value, 'f', -1, 64))
}

func partyView(p invoicedomain.Party) render.PartyView {
	return render.PartyView{
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address,
		City:    p.City,
		ZipCode: p.ZipCode,
		Country: p.Country,
	}
}

func signatureView(sig invoicedomain.Signature) render.SignatureView {
	if sig.Data == "" {
		return render.SignatureView{}
	}
	return render.SignatureView{
		Present:    true,
		IsImage:    sig.IsDataURL(),
		Data:       sig.Data,
		FontFamily: sig.FontFamily,
		Color:      sig.Color,
	}
}
