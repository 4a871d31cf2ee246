package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/invoicely/internal/config"
	"github.com/smallbiznis/invoicely/internal/invoice"
	"github.com/smallbiznis/invoicely/internal/invoice/draft"
	invoicedomain "github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/observability"
	obsmiddleware "github.com/smallbiznis/invoicely/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/invoicely/internal/observability/metrics"
	obstracing "github.com/smallbiznis/invoicely/internal/observability/tracing"
	"github.com/smallbiznis/invoicely/internal/providers/pdf"
)

var Module = fx.Module("http.server",
	pdf.Module,
	invoice.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", httpMetrics.Handler())

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", srv.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	genID      *snowflake.Node
	invoiceSvc invoicedomain.Service
	obsMetrics *obsmetrics.HTTPMetrics
	log        *zap.Logger

	draftMu sync.Mutex
	drafts  map[string]*draftSession
}

type draftSession struct {
	session   *draft.Session
	invoiceID string
	userID    snowflake.ID
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	GenID      *snowflake.Node
	InvoiceSvc invoicedomain.Service
	ObsMetrics *obsmetrics.HTTPMetrics
	Log        *zap.Logger
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		genID:      p.GenID,
		invoiceSvc: p.InvoiceSvc,
		obsMetrics: p.ObsMetrics,
		log:        p.Log.Named("http"),
		drafts:     make(map[string]*draftSession),
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.UserScoped())

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.POST("/invoices/:id/status", s.SetInvoiceStatus)

	// -------- Line items --------
	api.POST("/invoices/:id/items", s.AddInvoiceItem)
	api.DELETE("/invoices/:id/items/:index", s.RemoveInvoiceItem)
	api.POST("/invoices/:id/items/:index/move", s.MoveInvoiceItem)
	api.POST("/invoices/:id/items/:index/duplicate", s.DuplicateInvoiceItem)
	api.PATCH("/invoices/:id/items/:index", s.UpdateInvoiceItem)
	api.PATCH("/invoices/:id/modifiers/:kind", s.UpdateInvoiceModifier)

	// -------- Rendering and export --------
	api.GET("/invoices/:id/render", s.RenderInvoice)
	api.POST("/invoices/:id/export", s.ExportInvoice)
	api.POST("/export/pdf", s.ExportPayload)

	// -------- Draft autosave --------
	api.POST("/invoices/:id/draft", s.OpenDraftSession)
	api.PUT("/drafts/:sessionId", s.TriggerDraftSave)
	api.POST("/drafts/:sessionId/flush", s.FlushDraftSession)
	api.DELETE("/drafts/:sessionId", s.CloseDraftSession)
}
