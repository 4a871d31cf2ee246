package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/invoicely/internal/clock"
	"github.com/smallbiznis/invoicely/internal/config"
	invoicedomain "github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/service"
	"github.com/smallbiznis/invoicely/internal/observability"
	obsmetrics "github.com/smallbiznis/invoicely/internal/observability/metrics"
	"github.com/smallbiznis/invoicely/internal/providers/pdf"
	"github.com/smallbiznis/invoicely/internal/usercontext"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubPDF struct{}

func (stubPDF) GenerateInvoice(_ context.Context, _ pdf.Document) (io.Reader, error) {
	return bytes.NewReader([]byte("%PDF-1.4 stub")), nil
}

func newTestServer(t *testing.T) (*Server, invoicedomain.Service) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&invoicedomain.Invoice{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{DefaultUserID: 42, HTTPPort: "8080"}
	svc := service.NewService(service.ServiceParam{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)),
		Cfg:   cfg,
		PDF:   stubPDF{},
	})

	metrics := obsmetrics.NewHTTPMetrics()
	engine := NewEngine(observability.Config{}, metrics)
	srv := NewServer(ServerParams{
		Gin:        engine,
		Cfg:        cfg,
		DB:         gdb,
		GenID:      node,
		InvoiceSvc: svc,
		ObsMetrics: metrics,
		Log:        zap.NewNop(),
	})
	return srv, svc
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload.Data
}

func createDraft(t *testing.T, srv *Server) string {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/api/invoices", invoicedomain.CreateRequest{})
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := decodeData(t, rec)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func fillValidHTTP(t *testing.T, srv *Server, svc invoicedomain.Service, id string) {
	t.Helper()

	ctx := usercontext.WithUserID(context.Background(), 42)
	_, err := svc.Update(ctx, id, invoicedomain.UpdateRequest{
		Sender:   &invoicedomain.Party{Name: "Acme Corp", Email: "billing@acme.test"},
		Receiver: &invoicedomain.Party{Name: "Globex"},
	})
	require.NoError(t, err)
	_, err = svc.UpdateItem(ctx, id, 0, "name", "Consulting")
	require.NoError(t, err)
	_, err = svc.UpdateItem(ctx, id, 0, "unit_price", 100)
	require.NoError(t, err)
}

func TestUserScoping(t *testing.T) {
	srv, _ := newTestServer(t)

	// Default user applies when no header is sent.
	rec := doJSON(t, srv, http.MethodGet, "/api/invoices", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A malformed header is rejected outright.
	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	req.Header.Set("X-User-Id", "not-a-number")
	rec = httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndGetInvoice(t *testing.T) {
	srv, _ := newTestServer(t)

	id := createDraft(t, srv)

	rec := doJSON(t, srv, http.MethodGet, "/api/invoices/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, "INV-20260901-001", data["invoice_number"])
	assert.Equal(t, "draft", data["status"])

	rec = doJSON(t, srv, http.MethodGet, "/api/invoices/999999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var failure struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failure))
	assert.False(t, failure.Success)
	assert.Equal(t, "invoice_not_found", failure.Error)
}

func TestItemMutationRoutes(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createDraft(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/invoices/"+id+"/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPatch, "/api/invoices/"+id+"/items/1", gin.H{
		"field": "unit_price",
		"value": "19.99",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/invoices/"+id+"/items/1/duplicate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/invoices/"+id+"/items/2/move", gin.H{"to": 0})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/api/invoices/"+id+"/items/0", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Out of range index maps to 400.
	rec = doJSON(t, srv, http.MethodDelete, "/api/invoices/"+id+"/items/9", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestModifierRoute(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createDraft(t, srv)

	rec := doJSON(t, srv, http.MethodPatch, "/api/invoices/"+id+"/modifiers/tax", gin.H{
		"enabled": true,
		"value":   10,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPatch, "/api/invoices/"+id+"/modifiers/handling", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusRoute(t *testing.T) {
	srv, svc := newTestServer(t)
	id := createDraft(t, srv)

	// Empty drafts cannot be sent.
	rec := doJSON(t, srv, http.MethodPost, "/api/invoices/"+id+"/status", gin.H{"status": "sent"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	fillValidHTTP(t, srv, svc, id)

	rec = doJSON(t, srv, http.MethodPost, "/api/invoices/"+id+"/status", gin.H{"status": "sent"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sent", decodeData(t, rec)["status"])

	// Overdue is derived, not settable.
	rec = doJSON(t, srv, http.MethodPost, "/api/invoices/"+id+"/status", gin.H{"status": "overdue"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenderRoute(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createDraft(t, srv)

	rec := doJSON(t, srv, http.MethodGet, "/api/invoices/"+id+"/render?template=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "INV-20260901-001")

	rec = doJSON(t, srv, http.MethodGet, "/api/invoices/"+id+"/render?template=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportRoutes(t *testing.T) {
	srv, svc := newTestServer(t)
	id := createDraft(t, srv)
	fillValidHTTP(t, srv, svc, id)

	rec := doJSON(t, srv, http.MethodPost, "/api/invoices/"+id+"/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "invoice-inv-20260901-001.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestStatelessExportRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	payload := invoicedomain.Invoice{
		InvoiceNumber: "INV-2026-0042",
		Sender:        invoicedomain.Party{Name: "Acme Corp", Email: "billing@acme.test"},
		Receiver:      invoicedomain.Party{Name: "Globex"},
		Details: invoicedomain.Details{
			Items: []invoicedomain.LineItem{{Name: "Consulting", Quantity: 1, UnitPrice: 150}},
		},
	}

	rec := doJSON(t, srv, http.MethodPost, "/api/export/pdf", payload)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	// Invalid payloads fail validation before any PDF work happens.
	rec = doJSON(t, srv, http.MethodPost, "/api/export/pdf", invoicedomain.Invoice{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDraftSessionLifecycle(t *testing.T) {
	srv, svc := newTestServer(t)
	id := createDraft(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/invoices/"+id+"/draft", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID, _ := decodeData(t, rec)["session_id"].(string)
	require.Len(t, sessionID, 26)

	ctx := usercontext.WithUserID(context.Background(), 42)
	inv, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	inv.Details.AdditionalNotes = "autosaved note"

	rec = doJSON(t, srv, http.MethodPut, "/api/drafts/"+sessionID, inv)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/drafts/"+sessionID+"/flush", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "autosaved note", got.Details.AdditionalNotes)

	rec = doJSON(t, srv, http.MethodDelete, "/api/drafts/"+sessionID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Stopped sessions are gone.
	rec = doJSON(t, srv, http.MethodPut, "/api/drafts/"+sessionID, inv)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRouteFiltersAndPaginates(t *testing.T) {
	srv, _ := newTestServer(t)
	for i := 0; i < 3; i++ {
		createDraft(t, srv)
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/invoices?page_size=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data          []map[string]any `json:"data"`
		NextPageToken string           `json:"next_page_token"`
		HasMore       bool             `json:"has_more"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload.Data, 2)
	assert.NotEmpty(t, payload.NextPageToken)

	rec = doJSON(t, srv, http.MethodGet, "/api/invoices?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
