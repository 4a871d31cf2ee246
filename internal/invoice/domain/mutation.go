package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smallbiznis/invoicely/internal/invoice/calc"
)

// ItemField names a mutable line-item field.
type ItemField string

const (
	ItemFieldName        ItemField = "name"
	ItemFieldDescription ItemField = "description"
	ItemFieldQuantity    ItemField = "quantity"
	ItemFieldUnitPrice   ItemField = "unit_price"
)

// ParseItemField accepts both the normalized snake_case spelling and the
// legacy camelCase one.
func ParseItemField(raw string) (ItemField, error) {
	switch strings.TrimSpace(raw) {
	case "name":
		return ItemFieldName, nil
	case "description":
		return ItemFieldDescription, nil
	case "quantity":
		return ItemFieldQuantity, nil
	case "unit_price", "unitPrice":
		return ItemFieldUnitPrice, nil
	default:
		return "", ErrInvalidItemField
	}
}

// ModifierKind names one of the three charge modifiers.
type ModifierKind string

const (
	ModifierDiscount ModifierKind = "discount"
	ModifierTax      ModifierKind = "tax"
	ModifierShipping ModifierKind = "shipping"
)

// ParseModifierKind validates a modifier kind from the wire.
func ParseModifierKind(raw string) (ModifierKind, error) {
	switch ModifierKind(strings.TrimSpace(raw)) {
	case ModifierDiscount:
		return ModifierDiscount, nil
	case ModifierTax:
		return ModifierTax, nil
	case ModifierShipping:
		return ModifierShipping, nil
	default:
		return "", ErrInvalidModifierKind
	}
}

// ModifierPatch is a partial modifier update; nil fields are left unchanged.
type ModifierPatch struct {
	Enabled   *bool      `json:"enabled"`
	Value     *float64   `json:"value"`
	ValueType *ValueType `json:"value_type"`
}

// The mutation API below is copy-on-write: every operation returns a fresh
// Invoice and leaves the receiver untouched, so a failed operation can never
// corrupt the caller's state and re-renders stay predictable. Each operation
// finishes with a Recompute; that refresh is the only path by which the
// derived totals change.

// AddItem appends a zeroed line item.
func (inv Invoice) AddItem() Invoice {
	next := inv.clone()
	next.Details.Items = append(next.Details.Items, LineItem{Quantity: 1})
	next.refreshTotals()
	return next
}

// RemoveItem removes the item at index. The last remaining item cannot be
// removed; the editor always keeps at least one row.
func (inv Invoice) RemoveItem(index int) (Invoice, error) {
	if index < 0 || index >= len(inv.Details.Items) {
		return inv, ErrIndexOutOfRange
	}
	if len(inv.Details.Items) == 1 {
		return inv, ErrLastItem
	}
	next := inv.clone()
	next.Details.Items = append(next.Details.Items[:index], next.Details.Items[index+1:]...)
	next.refreshTotals()
	return next, nil
}

// MoveItem splices the item out of from and re-inserts it at to, preserving
// the relative order of everything else.
func (inv Invoice) MoveItem(from, to int) (Invoice, error) {
	n := len(inv.Details.Items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return inv, ErrIndexOutOfRange
	}
	next := inv.clone()
	items := next.Details.Items
	moved := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items[:to], append([]LineItem{moved}, items[to:]...)...)
	next.Details.Items = items
	next.refreshTotals()
	return next, nil
}

// DuplicateItem inserts a copy immediately after index. Non-empty name and
// description get a " (Copy)" suffix so the rows stay distinguishable.
func (inv Invoice) DuplicateItem(index int) (Invoice, error) {
	if index < 0 || index >= len(inv.Details.Items) {
		return inv, ErrIndexOutOfRange
	}
	next := inv.clone()
	items := next.Details.Items

	dup := items[index]
	if dup.Name != "" {
		dup.Name += " (Copy)"
	}
	if dup.Description != "" {
		dup.Description += " (Copy)"
	}

	items = append(items[:index+1], append([]LineItem{dup}, items[index+1:]...)...)
	next.Details.Items = items
	next.refreshTotals()
	return next, nil
}

// UpdateItem sets one field of the item at index. Quantity and unit price
// coerce loose input to numbers and immediately re-derive the item total.
func (inv Invoice) UpdateItem(index int, field ItemField, value any) (Invoice, error) {
	if index < 0 || index >= len(inv.Details.Items) {
		return inv, ErrIndexOutOfRange
	}
	next := inv.clone()
	item := &next.Details.Items[index]

	switch field {
	case ItemFieldName:
		item.Name = coerceString(value)
	case ItemFieldDescription:
		item.Description = coerceString(value)
	case ItemFieldQuantity:
		item.Quantity = coerceNumber(value)
		item.Total = calc.ItemTotal(item.Quantity, item.UnitPrice)
	case ItemFieldUnitPrice:
		item.UnitPrice = coerceNumber(value)
		item.Total = calc.ItemTotal(item.Quantity, item.UnitPrice)
	default:
		return inv, ErrInvalidItemField
	}

	next.refreshTotals()
	return next, nil
}

// UpdateModifier shallow-merges a patch into the named modifier.
func (inv Invoice) UpdateModifier(kind ModifierKind, patch ModifierPatch) (Invoice, error) {
	next := inv.clone()

	var target *Modifier
	switch kind {
	case ModifierDiscount:
		target = &next.Details.Discount
	case ModifierTax:
		target = &next.Details.Tax
	case ModifierShipping:
		target = &next.Details.Shipping
	default:
		return inv, ErrInvalidModifierKind
	}

	if patch.Enabled != nil {
		target.Enabled = *patch.Enabled
	}
	if patch.Value != nil {
		target.Value = *patch.Value
	}
	if patch.ValueType != nil {
		if *patch.ValueType == ValuePercentage {
			target.ValueType = ValuePercentage
		} else {
			target.ValueType = ValueAmount
		}
	}

	next.refreshTotals()
	return next, nil
}

// Recalculate re-derives every item total and the invoice totals. Used when
// an invoice arrives from outside (load, import, stateless export) and its
// derived fields cannot be trusted.
func (inv Invoice) Recalculate() Invoice {
	next := inv.clone()
	next.refreshTotals()
	return next
}

func (inv Invoice) clone() Invoice {
	next := inv
	next.Details.Items = make([]LineItem, len(inv.Details.Items))
	copy(next.Details.Items, inv.Details.Items)
	return next
}

// refreshTotals runs the calculation engine over the current item list and
// modifiers and writes the result back, including the denormalized
// TotalAmount column.
func (inv *Invoice) refreshTotals() {
	items := make([]calc.Item, len(inv.Details.Items))
	for i, item := range inv.Details.Items {
		items[i] = calc.Item{Quantity: item.Quantity, UnitPrice: item.UnitPrice}
		inv.Details.Items[i].Total = calc.ItemTotal(item.Quantity, item.UnitPrice)
	}

	totals := calc.Recompute(items, inv.Details.Discount.asCalc(), inv.Details.Tax.asCalc(), inv.Details.Shipping.asCalc())

	inv.Details.SubTotal = totals.SubTotal
	inv.Details.DiscountAmount = totals.DiscountAmount
	inv.Details.TaxAmount = totals.TaxAmount
	inv.Details.ShippingAmount = totals.ShippingAmount
	inv.Details.TotalAmount = totals.TotalAmount
	inv.Details.TotalAmountInWords = totals.TotalAmountInWords
	inv.TotalAmount = totals.TotalAmount
	inv.Currency = currencyOrDefault(inv.Details.Currency)
}

func currencyOrDefault(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return "USD"
	}
	return currency
}

func coerceString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}

// coerceNumber absorbs the loose typing of form input. Anything that does not
// parse becomes 0 rather than an error.
func coerceNumber(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
