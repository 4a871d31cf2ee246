package service

import (
	"context"
	"fmt"
	"io"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	invoicedomain "github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/providers/pdf"
)

func (s *Service) ExportPDF(ctx context.Context, id string) (invoicedomain.ExportResult, error) {
	inv, err := s.load(ctx, id)
	if err != nil {
		return invoicedomain.ExportResult{}, err
	}
	return s.ExportPayload(ctx, inv)
}

// ExportPayload renders and prints an invoice supplied by the caller. The
// invoice never touches storage, which also serves the stateless export
// endpoint.
func (s *Service) ExportPayload(ctx context.Context, inv invoicedomain.Invoice) (invoicedomain.ExportResult, error) {
	inv = inv.Recalculate()
	if err := inv.ValidateForSave(); err != nil {
		return invoicedomain.ExportResult{}, err
	}

	html, err := s.RenderPayload(ctx, inv, inv.Template)
	if err != nil {
		return invoicedomain.ExportResult{}, fmt.Errorf("%w: %v", invoicedomain.ErrExportFailed, err)
	}

	reader, err := s.pdf.GenerateInvoice(ctx, pdf.Document{
		HTML:  html,
		Input: buildRenderInput(inv, s.clock.Now()),
	})
	if err != nil {
		return invoicedomain.ExportResult{}, fmt.Errorf("%w: %v", invoicedomain.ErrExportFailed, err)
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return invoicedomain.ExportResult{}, fmt.Errorf("%w: %v", invoicedomain.ErrExportFailed, err)
	}

	s.log.Info("invoice exported",
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.Int("bytes", len(content)),
	)
	return invoicedomain.ExportResult{
		Filename: exportFilename(inv.InvoiceNumber),
		Content:  content,
	}, nil
}

// exportFilename slugs the invoice number so the attachment name survives
// every filesystem, e.g. "invoice-inv-20260901-001.pdf".
func exportFilename(number string) string {
	cleaned := slug.Make(number)
	if cleaned == "" {
		cleaned = "draft"
	}
	return "invoice-" + cleaned + ".pdf"
}
