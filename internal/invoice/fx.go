// Package invoice wires the invoice service into the application graph.
package invoice

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/invoicely/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(service.NewService),
)
