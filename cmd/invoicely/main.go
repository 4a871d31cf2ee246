package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/invoicely/internal/clock"
	"github.com/smallbiznis/invoicely/internal/config"
	"github.com/smallbiznis/invoicely/internal/migration"
	"github.com/smallbiznis/invoicely/internal/observability"
	"github.com/smallbiznis/invoicely/internal/seed"
	"github.com/smallbiznis/invoicely/internal/server"
	"github.com/smallbiznis/invoicely/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		fx.Invoke(seedDev),
		server.Module,
	)
	app.Run()
}

func seedDev(cfg config.Config, gdb *gorm.DB, node *snowflake.Node, log *zap.Logger) {
	if cfg.IsProduction() {
		return
	}
	if err := seed.EnsureDemoInvoice(gdb, node); err != nil {
		log.Warn("demo seed failed", zap.Error(err))
	}
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
