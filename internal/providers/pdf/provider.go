// Package pdf turns a rendered invoice into PDF bytes. Two backends exist:
// headless Chromium prints the exact HTML the browser preview shows, and a
// native maroto backend draws a simplified layout without any external
// binary. The backend is picked per call from hot-reloadable config.
package pdf

import (
	"context"
	"errors"
	"io"

	"github.com/smallbiznis/invoicely/internal/invoice/render"
)

var ErrGenerateFailed = errors.New("pdf_generate_failed")

// Document is one invoice ready for export. HTML carries the full rendered
// template; Input carries the structured view for backends that draw their
// own layout.
type Document struct {
	HTML  string
	Input render.RenderInput
}

type Provider interface {
	GenerateInvoice(ctx context.Context, doc Document) (io.Reader, error)
}
