package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftInvoice(items ...LineItem) Invoice {
	if len(items) == 0 {
		items = []LineItem{{Name: "Service", Quantity: 1, UnitPrice: 100}}
	}
	inv := Invoice{
		InvoiceNumber: "INV-20260901-001",
		Status:        InvoiceStatusDraft,
		Template:      1,
		Details: Details{
			Currency: "USD",
			Items:    items,
		},
	}
	return inv.Recalculate()
}

func TestAddItem_AppendsZeroedRow(t *testing.T) {
	inv := draftInvoice()

	next := inv.AddItem()

	require.Len(t, next.Details.Items, 2)
	added := next.Details.Items[1]
	assert.Equal(t, "", added.Name)
	assert.Equal(t, 1.0, added.Quantity)
	assert.Equal(t, 0.0, added.UnitPrice)
	assert.Equal(t, 0.0, added.Total)

	// copy-on-write: the original is untouched
	assert.Len(t, inv.Details.Items, 1)
}

func TestRemoveItem(t *testing.T) {
	inv := draftInvoice(
		LineItem{Name: "A", Quantity: 1, UnitPrice: 10},
		LineItem{Name: "B", Quantity: 1, UnitPrice: 20},
	)

	next, err := inv.RemoveItem(0)
	require.NoError(t, err)
	require.Len(t, next.Details.Items, 1)
	assert.Equal(t, "B", next.Details.Items[0].Name)
	assert.Equal(t, 20.0, next.Details.SubTotal)

	_, err = next.RemoveItem(0)
	assert.ErrorIs(t, err, ErrLastItem)

	_, err = inv.RemoveItem(7)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMoveItem_PreservesRelativeOrder(t *testing.T) {
	inv := draftInvoice(
		LineItem{Name: "A", Quantity: 1, UnitPrice: 1},
		LineItem{Name: "B", Quantity: 1, UnitPrice: 2},
		LineItem{Name: "C", Quantity: 1, UnitPrice: 3},
		LineItem{Name: "D", Quantity: 1, UnitPrice: 4},
	)

	next, err := inv.MoveItem(0, 2)
	require.NoError(t, err)

	names := make([]string, 0, 4)
	for _, item := range next.Details.Items {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"B", "C", "A", "D"}, names)
	assert.Equal(t, inv.Details.SubTotal, next.Details.SubTotal)

	_, err = inv.MoveItem(0, 9)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDuplicateItem_ThenRemoveRestoresList(t *testing.T) {
	inv := draftInvoice(
		LineItem{Name: "A", Description: "first", Quantity: 2, UnitPrice: 50},
		LineItem{Name: "B", Quantity: 1, UnitPrice: 25},
	)

	dup, err := inv.DuplicateItem(0)
	require.NoError(t, err)
	require.Len(t, dup.Details.Items, 3)
	assert.Equal(t, "A (Copy)", dup.Details.Items[1].Name)
	assert.Equal(t, "first (Copy)", dup.Details.Items[1].Description)
	assert.Equal(t, 100.0, dup.Details.Items[1].Total)

	restored, err := dup.RemoveItem(1)
	require.NoError(t, err)
	assert.Equal(t, inv.Details.Items, restored.Details.Items)
	assert.Equal(t, inv.Details.TotalAmount, restored.Details.TotalAmount)
}

func TestDuplicateItem_EmptyFieldsGetNoSuffix(t *testing.T) {
	inv := draftInvoice(LineItem{Quantity: 1})

	dup, err := inv.DuplicateItem(0)
	require.NoError(t, err)
	assert.Equal(t, "", dup.Details.Items[1].Name)
	assert.Equal(t, "", dup.Details.Items[1].Description)
}

func TestUpdateItem_RecomputesTotals(t *testing.T) {
	inv := draftInvoice()

	next, err := inv.UpdateItem(0, ItemFieldQuantity, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, next.Details.Items[0].Quantity)
	assert.Equal(t, 300.0, next.Details.Items[0].Total)
	assert.Equal(t, 300.0, next.Details.SubTotal)
	assert.Equal(t, 300.0, next.TotalAmount)

	next, err = next.UpdateItem(0, ItemFieldUnitPrice, "12.50")
	require.NoError(t, err)
	assert.Equal(t, 37.5, next.Details.Items[0].Total)
}

func TestUpdateItem_BadNumericInputBecomesZero(t *testing.T) {
	inv := draftInvoice()

	next, err := inv.UpdateItem(0, ItemFieldQuantity, "not a number")
	require.NoError(t, err)
	assert.Equal(t, 0.0, next.Details.Items[0].Quantity)
	assert.Equal(t, 0.0, next.Details.SubTotal)
}

func TestUpdateModifier_MergesPatch(t *testing.T) {
	inv := draftInvoice(LineItem{Name: "A", Quantity: 10, UnitPrice: 100})

	enabled := true
	value := 10.0
	vt := ValuePercentage
	next, err := inv.UpdateModifier(ModifierDiscount, ModifierPatch{Enabled: &enabled, Value: &value, ValueType: &vt})
	require.NoError(t, err)
	assert.Equal(t, 900.0, next.Details.TotalAmount)

	// merging only the value keeps the rest
	value = 20.0
	next, err = next.UpdateModifier(ModifierDiscount, ModifierPatch{Value: &value})
	require.NoError(t, err)
	assert.True(t, next.Details.Discount.Enabled)
	assert.Equal(t, ValuePercentage, next.Details.Discount.ValueType)
	assert.Equal(t, 800.0, next.Details.TotalAmount)

	_, err = inv.UpdateModifier(ModifierKind("vat"), ModifierPatch{})
	assert.ErrorIs(t, err, ErrInvalidModifierKind)
}

func TestModifier_LegacyJSONKeys(t *testing.T) {
	var discount Modifier
	require.NoError(t, json.Unmarshal([]byte(`{"enabled":true,"amount":15,"amountType":"percentage"}`), &discount))
	assert.Equal(t, Modifier{Enabled: true, Value: 15, ValueType: ValuePercentage}, discount)

	var shipping Modifier
	require.NoError(t, json.Unmarshal([]byte(`{"enabled":true,"cost":50,"costType":"amount"}`), &shipping))
	assert.Equal(t, Modifier{Enabled: true, Value: 50, ValueType: ValueAmount}, shipping)
}

func TestValidateForSave(t *testing.T) {
	inv := draftInvoice()
	inv.Sender = Party{Name: "Acme", Email: "billing@acme.test"}
	inv.Receiver = Party{Name: "Globex"}
	assert.NoError(t, inv.ValidateForSave())

	missingSender := inv
	missingSender.Sender.Name = "  "
	assert.ErrorIs(t, missingSender.ValidateForSave(), ErrSenderNameRequired)

	missingEmail := inv
	missingEmail.Sender.Email = ""
	assert.ErrorIs(t, missingEmail.ValidateForSave(), ErrSenderEmailRequired)

	missingReceiver := inv
	missingReceiver.Receiver.Name = ""
	assert.ErrorIs(t, missingReceiver.ValidateForSave(), ErrReceiverNameRequired)

	unnamed := draftInvoice(LineItem{Quantity: 1})
	unnamed.Sender = inv.Sender
	unnamed.Receiver = inv.Receiver
	assert.ErrorIs(t, unnamed.ValidateForSave(), ErrItemsRequired)
}

func TestParseItemField(t *testing.T) {
	field, err := ParseItemField("unitPrice")
	require.NoError(t, err)
	assert.Equal(t, ItemFieldUnitPrice, field)

	_, err = ParseItemField("total")
	assert.ErrorIs(t, err, ErrInvalidItemField)
}

func TestSignature_IsDataURL(t *testing.T) {
	assert.True(t, Signature{Data: "data:image/png;base64,AAAA"}.IsDataURL())
	assert.False(t, Signature{Data: "John Hancock"}.IsDataURL())
	assert.False(t, Signature{Data: strings.Repeat("x", 10)}.IsDataURL())
}
