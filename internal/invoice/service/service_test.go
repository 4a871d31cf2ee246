package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/invoicely/internal/clock"
	"github.com/smallbiznis/invoicely/internal/config"
	invoicedomain "github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/providers/pdf"
	"github.com/smallbiznis/invoicely/internal/usercontext"
)

type stubPDF struct {
	err error
}

func (s stubPDF) GenerateInvoice(_ context.Context, _ pdf.Document) (io.Reader, error) {
	if s.err != nil {
		return nil, s.err
	}
	return bytes.NewReader([]byte("%PDF-1.4 stub")), nil
}

func newTestService(t *testing.T, provider pdf.Provider) (*Service, *clock.FakeClock, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&invoicedomain.Invoice{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))

	svc := NewService(ServiceParam{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Cfg:   config.Config{},
		PDF:   provider,
	})
	return svc.(*Service), fake, gdb
}

func userCtx(id int64) context.Context {
	return usercontext.WithUserID(context.Background(), id)
}

// fillValid takes a fresh draft to the minimum shape that passes
// save validation: named parties and one named, priced item.
func fillValid(t *testing.T, svc *Service, ctx context.Context, id string) invoicedomain.Invoice {
	t.Helper()

	_, err := svc.Update(ctx, id, invoicedomain.UpdateRequest{
		Sender:   &invoicedomain.Party{Name: "Acme Corp", Email: "billing@acme.test"},
		Receiver: &invoicedomain.Party{Name: "Globex"},
	})
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, id, 0, "name", "Consulting")
	require.NoError(t, err)
	_, err = svc.UpdateItem(ctx, id, 0, "quantity", 2)
	require.NoError(t, err)
	inv, err := svc.UpdateItem(ctx, id, 0, "unit_price", 100)
	require.NoError(t, err)
	return inv
}

func TestCreateDefaults(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{})
	ctx := userCtx(42)

	inv, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)

	assert.Equal(t, "INV-20260901-001", inv.InvoiceNumber)
	assert.Equal(t, invoicedomain.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, 1, inv.Template)
	assert.Equal(t, "USD", inv.Currency)
	require.Len(t, inv.Details.Items, 1)
	assert.Equal(t, float64(1), inv.Details.Items[0].Quantity)
	assert.Equal(t, inv.Details.InvoiceDate.AddDate(0, 0, 30), inv.Details.DueDate)
	assert.Equal(t, invoicedomain.ValuePercentage, inv.Details.Discount.ValueType)
	assert.Equal(t, invoicedomain.ValueAmount, inv.Details.Shipping.ValueType)
}

func TestCreateSequencesWithinDay(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{})
	ctx := userCtx(42)

	first, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)
	second, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)

	assert.Equal(t, "INV-20260901-001", first.InvoiceNumber)
	assert.Equal(t, "INV-20260901-002", second.InvoiceNumber)
}

func TestCreateBackdatedStartsOwnSequence(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{})
	ctx := userCtx(42)

	// Two invoices dated today must not advance a backdated day's run.
	_, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)
	_, err = svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)

	past := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	backdated, err := svc.Create(ctx, invoicedomain.CreateRequest{InvoiceDate: &past})
	require.NoError(t, err)
	assert.Equal(t, "INV-20250101-001", backdated.InvoiceNumber)

	again, err := svc.Create(ctx, invoicedomain.CreateRequest{InvoiceDate: &past})
	require.NoError(t, err)
	assert.Equal(t, "INV-20250101-002", again.InvoiceNumber)

	today, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "INV-20260901-003", today.InvoiceNumber)
}

func TestCreateClampsTemplate(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{})
	ctx := userCtx(42)

	inv, err := svc.Create(ctx, invoicedomain.CreateRequest{Template: 99})
	require.NoError(t, err)
	assert.Equal(t, 1, inv.Template)
}

func TestCreateRequiresUser(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{})

	_, err := svc.Create(context.Background(), invoicedomain.CreateRequest{})
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidUser)
}

func TestGetByID(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{})
	ctx := userCtx(42)

	created, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.InvoiceNumber, got.InvoiceNumber)

	_, err = svc.GetByID(ctx, "not-a-number")
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidInvoiceID)

	_, err = svc.GetByID(ctx, "123456789")
	assert.ErrorIs(t, err, invoicedomain.ErrInvoiceNotFound)

	_, err = svc.GetByID(userCtx(77), created.ID.String())
	assert.ErrorIs(t, err, invoicedomain.ErrInvoiceNotFound)
}

func TestUpdateRecomputesTotals(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{})
	ctx := userCtx(42)

	created, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)

	details := created.Details
	details.Items = []invoicedomain.LineItem{{Name: "Consulting", Quantity: 2, UnitPrice: 100}}
	details.Tax = invoicedomain.Modifier{Enabled: true, Value: 25, ValueType: invoicedomain.ValuePercentage}

	updated, err := svc.Update(ctx, created.ID.String(), invoicedomain.UpdateRequest{Details: &details})
	require.NoError(t, err)

	assert.Equal(t, 200.0, updated.Details.SubTotal)
	assert.Equal(t, 50.0, updated.Details.TaxAmount)
	assert.Equal(t, 250.0, updated.Details.TotalAmount)
	assert.Equal(t, 250.0, updated.TotalAmount)
	assert.Equal(t, "Two Hundred Fifty", updated.Details.TotalAmountInWords)
}

func TestItemMutationsPersist(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{})
	ctx := userCtx(42)

	created, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)
	id := created.ID.String()

	inv, err := svc.AddItem(ctx, id)
	require.NoError(t, err)
	require.Len(t, inv.Details.Items, 2)

	inv, err = svc.UpdateItem(ctx, id, 1, "unitPrice", "12.50")
	require.NoError(t, err)
	assert.Equal(t, 12.5, inv.Details.Items[1].UnitPrice)
	assert.Equal(t, 12.5, inv.Details.Items[1].Total)

	inv, err = svc.DuplicateItem(ctx, id, 1)
	require.NoError(t, err)
	require.Len(t, inv.Details.Items, 3)

	inv, err = svc.MoveItem(ctx, id, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 12.5, inv.Details.Items[0].UnitPrice)

	inv, err = svc.RemoveItem(ctx, id, 0)
	require.NoError(t, err)
	require.Len(t, inv.Details.Items, 2)

	// Reload to prove mutations reached storage.
	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got.Details.Items, 2)

	_, err = svc.UpdateItem(ctx, id, 0, "color", "red")
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidItemField)
}

func TestRemoveLastItemRejected(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{})
	ctx := userCtx(42)

	created, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)

	_, err = svc.RemoveItem(ctx, created.ID.String(), 0)
	assert.ErrorIs(t, err, invoicedomain.ErrLastItem)
}

func TestUpdateModifier(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{})
	ctx := userCtx(42)

	created, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)
	id := created.ID.String()
	fillValid(t, svc, ctx, id)

	enabled := true
	value := 10.0
	inv, err := svc.UpdateModifier(ctx, id, "discount", invoicedomain.ModifierPatch{Enabled: &enabled, Value: &value})
	require.NoError(t, err)
	assert.Equal(t, 20.0, inv.Details.DiscountAmount)
	assert.Equal(t, 180.0, inv.Details.TotalAmount)

	_, err = svc.UpdateModifier(ctx, id, "handling", invoicedomain.ModifierPatch{})
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidModifierKind)
}

func TestStatusLifecycle(t *testing.T) {
	svc, fake, _ := newTestService(t, stubPDF{})
	ctx := userCtx(42)

	created, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)
	id := created.ID.String()

	// Empty drafts cannot be sent.
	_, err = svc.SetStatus(ctx, id, invoicedomain.InvoiceStatusSent)
	assert.ErrorIs(t, err, invoicedomain.ErrSenderNameRequired)

	// Draft cannot jump straight to paid.
	_, err = svc.SetStatus(ctx, id, invoicedomain.InvoiceStatusPaid)
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidStatus)

	fillValid(t, svc, ctx, id)

	inv, err := svc.SetStatus(ctx, id, invoicedomain.InvoiceStatusSent)
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.InvoiceStatusSent, inv.Status)

	// Past the due date a sent invoice reads as overdue, but the stored
	// status stays sent.
	fake.Advance(45 * 24 * time.Hour)
	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.InvoiceStatusOverdue, got.Status)

	inv, err = svc.SetStatus(ctx, id, invoicedomain.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.InvoiceStatusPaid, inv.Status)
}

func TestListPaginates(t *testing.T) {
	svc, _, gdb := newTestService(t, stubPDF{})
	ctx := userCtx(42)

	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		inv, err := svc.Create(ctx, invoicedomain.CreateRequest{})
		require.NoError(t, err)
		ids = append(ids, inv.ID.String())
		// Spread creation times so cursor ordering is deterministic.
		require.NoError(t, gdb.Model(&invoicedomain.Invoice{}).
			Where("id = ?", inv.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	// One invoice belonging to another user must never leak in.
	_, err := svc.Create(userCtx(77), invoicedomain.CreateRequest{})
	require.NoError(t, err)

	seen := make([]string, 0, 5)
	token := ""
	pages := 0
	for {
		req := invoicedomain.ListRequest{}
		req.PageSize = 2
		req.PageToken = token
		resp, err := svc.List(ctx, req)
		require.NoError(t, err)
		for _, inv := range resp.Invoices {
			seen = append(seen, inv.ID.String())
		}
		pages++
		if !resp.HasMore {
			break
		}
		token = resp.NextPageToken
	}

	assert.Equal(t, 3, pages)
	// Newest first.
	assert.Equal(t, []string{ids[4], ids[3], ids[2], ids[1], ids[0]}, seen)
}

func TestListFiltersByStatus(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{})
	ctx := userCtx(42)

	first, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)
	_, err = svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)

	fillValid(t, svc, ctx, first.ID.String())
	_, err = svc.SetStatus(ctx, first.ID.String(), invoicedomain.InvoiceStatusSent)
	require.NoError(t, err)

	sent := invoicedomain.InvoiceStatusSent
	resp, err := svc.List(ctx, invoicedomain.ListRequest{Status: &sent})
	require.NoError(t, err)
	require.Len(t, resp.Invoices, 1)
	assert.Equal(t, first.ID, resp.Invoices[0].ID)
}

func TestRenderContainsInvoiceNumber(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{})
	ctx := userCtx(42)

	created, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)

	html, err := svc.Render(ctx, created.ID.String(), 0)
	require.NoError(t, err)
	assert.Contains(t, html, created.InvoiceNumber)
	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
}

func TestExportPDF(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{})
	ctx := userCtx(42)

	created, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)
	id := created.ID.String()

	// Empty drafts are not exportable.
	_, err = svc.ExportPDF(ctx, id)
	assert.ErrorIs(t, err, invoicedomain.ErrSenderNameRequired)

	fillValid(t, svc, ctx, id)

	result, err := svc.ExportPDF(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "invoice-inv-20260901-001.pdf", result.Filename)
	assert.True(t, bytes.HasPrefix(result.Content, []byte("%PDF")))
}

func TestExportPDFWrapsProviderError(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{err: errors.New("chromium exploded")})
	ctx := userCtx(42)

	created, err := svc.Create(ctx, invoicedomain.CreateRequest{})
	require.NoError(t, err)
	fillValid(t, svc, ctx, created.ID.String())

	_, err = svc.ExportPDF(ctx, created.ID.String())
	assert.ErrorIs(t, err, invoicedomain.ErrExportFailed)
}

func TestExportPayloadStateless(t *testing.T) {
	svc, _, _ := newTestService(t, stubPDF{})

	inv := invoicedomain.Invoice{
		InvoiceNumber: "INV-2026-0042",
		Sender:        invoicedomain.Party{Name: "Acme Corp", Email: "billing@acme.test"},
		Receiver:      invoicedomain.Party{Name: "Globex"},
		Details: invoicedomain.Details{
			Items: []invoicedomain.LineItem{{Name: "Consulting", Quantity: 1, UnitPrice: 150}},
		},
	}

	result, err := svc.ExportPayload(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, "invoice-inv-2026-0042.pdf", result.Filename)
	assert.NotEmpty(t, result.Content)
}
