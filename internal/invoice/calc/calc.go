// Package calc is the pure calculation engine behind every invoice total.
// It never reads or writes state: the same inputs always produce the same
// Totals, which is what keeps the editor, the four templates and the PDF
// export showing identical numbers.
package calc

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/smallbiznis/invoicely/internal/money"
)

// ValueType selects how a modifier value is interpreted.
type ValueType string

const (
	ValueAmount     ValueType = "amount"
	ValuePercentage ValueType = "percentage"
)

// maxSpellable is the largest whole amount passed to the words renderer.
// It stays safely below MaxInt64 so the float conversion is exact.
const maxSpellable = 9.2e18

// Item is the minimal input for one line: quantity and unit price.
type Item struct {
	Quantity  float64
	UnitPrice float64
}

// Modifier is one charge adjustment. Percentage values apply to the running
// total at the point the modifier is evaluated.
type Modifier struct {
	Enabled bool
	Value   float64
	Type    ValueType
}

// Totals is the full derived financial state of an invoice.
type Totals struct {
	SubTotal           float64
	DiscountAmount     float64
	TaxAmount          float64
	ShippingAmount     float64
	TotalAmount        float64
	TotalAmountInWords string
}

// ItemTotal derives one line total. Non-finite or negative inputs clamp to
// zero before multiplying.
func ItemTotal(quantity, unitPrice float64) float64 {
	return money.Round2(money.Sanitize(quantity) * money.Sanitize(unitPrice))
}

// Recompute derives the invoice totals. Modifiers apply in a fixed order:
// discount first, then tax on the discounted running total, then shipping,
// whose percentage base is also the running total. The final amount rounds
// to cents half away from zero.
func Recompute(items []Item, discount, tax, shipping Modifier) Totals {
	subTotal := decimal.Zero
	for _, item := range items {
		subTotal = subTotal.Add(decimal.NewFromFloat(ItemTotal(item.Quantity, item.UnitPrice)))
	}

	running := subTotal

	discountAmount := modifierPortion(discount, running)
	running = running.Sub(discountAmount)

	taxAmount := modifierPortion(tax, running)
	running = running.Add(taxAmount)

	shippingAmount := modifierPortion(shipping, running)
	running = running.Add(shippingAmount)

	total := running.Round(2)
	totalFloat, _ := total.Float64()

	// Converting a float64 above MaxInt64 to int64 is not defined, so cap
	// the integer part fed into the words renderer.
	wordsBase := math.Floor(totalFloat)
	if wordsBase > maxSpellable {
		wordsBase = maxSpellable
	}

	return Totals{
		SubTotal:           round2(subTotal),
		DiscountAmount:     round2(discountAmount),
		TaxAmount:          round2(taxAmount),
		ShippingAmount:     round2(shippingAmount),
		TotalAmount:        totalFloat,
		TotalAmountInWords: money.NumberToWords(int64(wordsBase)),
	}
}

// modifierPortion resolves a modifier against the running total. Disabled or
// non-positive modifiers contribute nothing.
func modifierPortion(m Modifier, running decimal.Decimal) decimal.Decimal {
	value := money.Sanitize(m.Value)
	if !m.Enabled || value <= 0 {
		return decimal.Zero
	}
	if m.Type == ValuePercentage {
		return running.Mul(decimal.NewFromFloat(value)).Div(decimal.NewFromInt(100)).Round(2)
	}
	return decimal.NewFromFloat(value).Round(2)
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
