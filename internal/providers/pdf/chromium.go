package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ChromiumOptions tunes one print run. Resolved per call so hot-reloaded
// config takes effect without restarting anything.
type ChromiumOptions struct {
	ExecPath string
	Timeout  time.Duration
}

// ChromiumProvider prints the rendered HTML through headless Chromium, so
// the PDF is pixel-identical to the browser preview and print dialog.
type ChromiumProvider struct {
	opts func() ChromiumOptions
	log  *zap.Logger
}

func NewChromium(opts func() ChromiumOptions, log *zap.Logger) *ChromiumProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChromiumProvider{opts: opts, log: log.Named("pdf.chromium")}
}

func (p *ChromiumProvider) GenerateInvoice(ctx context.Context, doc Document) (io.Reader, error) {
	opts := p.opts()
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	runCtx, cancelRun := chromedp.NewContext(allocCtx)
	defer cancelRun()
	runCtx, cancelTimeout := context.WithTimeout(runCtx, opts.Timeout)
	defer cancelTimeout()

	start := time.Now()
	var pdfBuf []byte
	dataURL := "data:text/html," + url.PathEscape(doc.HTML)
	err := chromedp.Run(runCtx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, perr := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(8.27).   // A4 inches
				WithPaperHeight(11.69). // A4 inches
				Do(ctx)
			if perr == nil {
				pdfBuf = buf
			}
			return perr
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: chromium print: %v", ErrGenerateFailed, err)
	}
	p.log.Debug("printed invoice",
		zap.String("invoice_number", doc.Input.Invoice.Number),
		zap.Int("bytes", len(pdfBuf)),
		zap.Duration("took", time.Since(start)),
	)
	return bytes.NewReader(pdfBuf), nil
}
