package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/smallbiznis/invoicely/pkg/db/pagination"
)

var (
	ErrInvalidUser          = errors.New("invalid_user")
	ErrInvalidInvoiceID     = errors.New("invalid_invoice_id")
	ErrInvoiceNotFound      = errors.New("invoice_not_found")
	ErrDuplicateNumber      = errors.New("duplicate_invoice_number")
	ErrIndexOutOfRange      = errors.New("item_index_out_of_range")
	ErrLastItem             = errors.New("last_item_not_removable")
	ErrInvalidItemField     = errors.New("invalid_item_field")
	ErrInvalidModifierKind  = errors.New("invalid_modifier_kind")
	ErrInvalidStatus        = errors.New("invalid_status")
	ErrSenderNameRequired   = errors.New("invalid_sender_name")
	ErrSenderEmailRequired  = errors.New("invalid_sender_email")
	ErrReceiverNameRequired = errors.New("invalid_receiver_name")
	ErrItemsRequired        = errors.New("invalid_items")
	ErrInvalidPageToken     = errors.New("invalid_page_token")
	ErrExportFailed         = errors.New("export_failed")
)

// CreateRequest seeds a new draft. Anything omitted gets the documented
// defaults: due date 30 days after the invoice date, one empty item row,
// template 1.
type CreateRequest struct {
	Sender      Party      `json:"sender"`
	Receiver    Party      `json:"receiver"`
	InvoiceDate *time.Time `json:"invoice_date"`
	DueDate     *time.Time `json:"due_date"`
	Currency    string     `json:"currency"`
	Template    int        `json:"template"`
}

// UpdateRequest replaces one wizard slice of the invoice. Nil slices are left
// untouched; derived totals are re-established regardless of which slice
// changed.
type UpdateRequest struct {
	Sender   *Party   `json:"sender"`
	Receiver *Party   `json:"receiver"`
	Details  *Details `json:"details"`
	Template *int     `json:"template"`
}

type ListRequest struct {
	pagination.Pagination
	Status      *InvoiceStatus `form:"status"`
	Number      *string        `form:"invoice_number"`
	CreatedFrom *time.Time     `form:"created_from"`
	CreatedTo   *time.Time     `form:"created_to"`
}

type ListResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

// ExportResult is a finished PDF ready to stream to the client.
type ExportResult struct {
	Filename string
	Content  []byte
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Invoice, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	Update(ctx context.Context, id string, req UpdateRequest) (Invoice, error)
	SetStatus(ctx context.Context, id string, status InvoiceStatus) (Invoice, error)

	AddItem(ctx context.Context, id string) (Invoice, error)
	RemoveItem(ctx context.Context, id string, index int) (Invoice, error)
	MoveItem(ctx context.Context, id string, from, to int) (Invoice, error)
	DuplicateItem(ctx context.Context, id string, index int) (Invoice, error)
	UpdateItem(ctx context.Context, id string, index int, field string, value any) (Invoice, error)
	UpdateModifier(ctx context.Context, id string, kind string, patch ModifierPatch) (Invoice, error)

	Render(ctx context.Context, id string, templateID int) (string, error)
	RenderPayload(ctx context.Context, inv Invoice, templateID int) (string, error)
	ExportPDF(ctx context.Context, id string) (ExportResult, error)
	ExportPayload(ctx context.Context, inv Invoice) (ExportResult, error)
}

// ValidateForSave enforces the persistence-boundary invariants: sender name
// and email, receiver name, an invoice number and at least one named item.
func (inv Invoice) ValidateForSave() error {
	if strings.TrimSpace(inv.Sender.Name) == "" {
		return ErrSenderNameRequired
	}
	if strings.TrimSpace(inv.Sender.Email) == "" {
		return ErrSenderEmailRequired
	}
	if strings.TrimSpace(inv.Receiver.Name) == "" {
		return ErrReceiverNameRequired
	}
	if !inv.hasNamedItem() {
		return ErrItemsRequired
	}
	return nil
}

func (inv Invoice) hasNamedItem() bool {
	for _, item := range inv.Details.Items {
		if strings.TrimSpace(item.Name) != "" {
			return true
		}
	}
	return false
}

// ParseStatus validates a lifecycle status from the wire. Overdue is derived,
// never set directly.
func ParseStatus(raw string) (InvoiceStatus, error) {
	switch InvoiceStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case InvoiceStatusDraft:
		return InvoiceStatusDraft, nil
	case InvoiceStatusSent:
		return InvoiceStatusSent, nil
	case InvoiceStatusPaid:
		return InvoiceStatusPaid, nil
	default:
		return "", ErrInvalidStatus
	}
}
