// Package domain contains the invoice aggregate and the operations that keep
// its derived financial state consistent.
package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invoicely/internal/invoice/calc"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// ValueType aliases the calculation engine's modifier mode so callers deal
// with one type.
type ValueType = calc.ValueType

const (
	ValueAmount     = calc.ValueAmount
	ValuePercentage = calc.ValuePercentage
)

// Party is one side of an invoice (sender or receiver).
type Party struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// Modifier is the normalized shape of a charge modifier. The legacy wire
// format used amount/amountType for discount and tax but cost/costType for
// shipping; those keys are still accepted on input.
type Modifier struct {
	Enabled   bool      `json:"enabled"`
	Value     float64   `json:"value"`
	ValueType ValueType `json:"value_type"`
}

// UnmarshalJSON accepts both the normalized keys and the legacy
// amount/amountType and cost/costType spellings.
func (m *Modifier) UnmarshalJSON(data []byte) error {
	var raw struct {
		Enabled    bool     `json:"enabled"`
		Value      *float64 `json:"value"`
		ValueType  *string  `json:"value_type"`
		Amount     *float64 `json:"amount"`
		AmountType *string  `json:"amountType"`
		Cost       *float64 `json:"cost"`
		CostType   *string  `json:"costType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Enabled = raw.Enabled
	switch {
	case raw.Value != nil:
		m.Value = *raw.Value
	case raw.Amount != nil:
		m.Value = *raw.Amount
	case raw.Cost != nil:
		m.Value = *raw.Cost
	}
	switch {
	case raw.ValueType != nil:
		m.ValueType = ValueType(*raw.ValueType)
	case raw.AmountType != nil:
		m.ValueType = ValueType(*raw.AmountType)
	case raw.CostType != nil:
		m.ValueType = ValueType(*raw.CostType)
	}
	if m.ValueType != ValuePercentage {
		m.ValueType = ValueAmount
	}
	return nil
}

func (m Modifier) asCalc() calc.Modifier {
	return calc.Modifier{Enabled: m.Enabled, Value: m.Value, Type: m.ValueType}
}

// DisplayActive reports whether a renderer should show the modifier row.
// Historical records may carry a value without the enabled flag, so display
// keys off the value alone.
func (m Modifier) DisplayActive() bool {
	return m.Value > 0
}

// LineItem is one row of an invoice. Total is derived and never set by hand.
type LineItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// PaymentInformation holds the bank details shown on the invoice.
type PaymentInformation struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
}

// SignatureMode selects how the signature block renders.
type SignatureMode string

const (
	SignatureDraw   SignatureMode = "draw"
	SignatureTyped  SignatureMode = "type"
	SignatureUpload SignatureMode = "upload"
)

// Signature is the signature block. Data is either a data: URL (drawn or
// uploaded image) or plain typed text.
type Signature struct {
	Mode       SignatureMode `json:"type"`
	Data       string        `json:"data"`
	FontFamily string        `json:"font_family"`
	Color      string        `json:"color"`
}

// IsDataURL reports whether Data holds an embedded image rather than text.
func (s Signature) IsDataURL() bool {
	return strings.HasPrefix(s.Data, "data:")
}

// Details is the financial and document payload of an invoice.
type Details struct {
	InvoiceDate time.Time `json:"invoice_date"`
	DueDate     time.Time `json:"due_date"`
	Currency    string    `json:"currency"`

	Items []LineItem `json:"items"`

	Discount Modifier `json:"discount"`
	Tax      Modifier `json:"tax"`
	Shipping Modifier `json:"shipping"`

	// Derived fields, refreshed through the calculation engine on every
	// mutation. Never hand-edited.
	SubTotal           float64 `json:"sub_total"`
	DiscountAmount     float64 `json:"discount_amount"`
	TaxAmount          float64 `json:"tax_amount"`
	ShippingAmount     float64 `json:"shipping_amount"`
	TotalAmount        float64 `json:"total_amount"`
	TotalAmountInWords string  `json:"total_amount_in_words"`

	AdditionalNotes    string             `json:"additional_notes"`
	PaymentTerms       string             `json:"payment_terms"`
	PaymentInformation PaymentInformation `json:"payment_information"`
	Signature          Signature          `json:"signature"`
	InvoiceLogo        string             `json:"invoice_logo"`
}

// Invoice is the root aggregate. Sender, Receiver and Details persist as JSON
// documents; number, status, template, currency and total are mirrored into
// columns for filtering.
type Invoice struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	UserID        snowflake.ID      `gorm:"not null;index;uniqueIndex:ux_invoices_user_number" json:"user_id"`
	InvoiceNumber string            `gorm:"type:text;not null;uniqueIndex:ux_invoices_user_number" json:"invoice_number"`
	Status        InvoiceStatus     `gorm:"type:text;not null;default:'draft'" json:"status"`
	Template      int               `gorm:"not null;default:1" json:"template"`
	Currency      string            `gorm:"type:text;not null;default:'USD'" json:"currency"`
	TotalAmount   float64           `gorm:"not null;default:0" json:"total_amount"`
	Sender        Party             `gorm:"serializer:json" json:"sender"`
	Receiver      Party             `gorm:"serializer:json" json:"receiver"`
	Details       Details           `gorm:"serializer:json" json:"details"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// EffectiveStatus derives overdue from the due date at read time; overdue is
// never persisted.
func (inv Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if inv.Status == InvoiceStatusSent && !inv.Details.DueDate.IsZero() && now.After(inv.Details.DueDate) {
		return InvoiceStatusOverdue
	}
	return inv.Status
}
