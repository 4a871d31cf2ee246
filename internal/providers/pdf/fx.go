package pdf

import (
	"context"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/invoicely/internal/config"
)

var Module = fx.Module("providers.pdf",
	fx.Provide(config.NewPDFConfigHolder),
	fx.Provide(NewProvider),
)

type Params struct {
	fx.In

	Holder *config.PDFConfigHolder
	Log    *zap.Logger
}

// NewProvider returns a provider that re-reads the backend selection on
// every call, so pdf.yml edits apply to the next export.
func NewProvider(p Params) Provider {
	chromium := NewChromium(func() ChromiumOptions {
		cfg := p.Holder.Get()
		return ChromiumOptions{
			ExecPath: cfg.ChromiumPath,
			Timeout:  cfg.Timeout(),
		}
	}, p.Log)
	return &switchingProvider{
		holder:   p.Holder,
		chromium: chromium,
		native:   NewNative(),
	}
}

type switchingProvider struct {
	holder   *config.PDFConfigHolder
	chromium Provider
	native   Provider
}

func (s *switchingProvider) GenerateInvoice(ctx context.Context, doc Document) (io.Reader, error) {
	if s.holder.Get().Backend == config.PDFBackendNative {
		return s.native.GenerateInvoice(ctx, doc)
	}
	return s.chromium.GenerateInvoice(ctx, doc)
}
