package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/karat/bullionledger/internal/adapter/http/handler"
	"github.com/karat/bullionledger/internal/adapter/http/middleware"
	"github.com/karat/bullionledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PartyHandler          *handler.PartyHandler
	TransactionHandler    *handler.TransactionHandler
	PurchaseHandler       *handler.PurchaseHandler
	VoucherHandler        *handler.VoucherHandler
	FixingHandler         *handler.FixingHandler
	TransferHandler       *handler.TransferHandler
	RegistryHandler       *handler.RegistryHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	IdempotencyTTL        time.Duration
	Logger                zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Parties
		r.Route("/parties", func(r chi.Router) {
			r.Post("/", cfg.PartyHandler.Create)
			r.Get("/", cfg.PartyHandler.List)
			r.Get("/{id}", cfg.PartyHandler.Get)
			r.Get("/{id}/entries", cfg.RegistryHandler.ListByParty)
			r.Get("/{id}/transfers", cfg.TransferHandler.ListByParty)
		})

		// Metal transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Put("/{id}", cfg.TransactionHandler.Update)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
			r.Post("/{id}/lines", cfg.TransactionHandler.AddLine)
			r.Put("/{id}/lines/{index}", cfg.TransactionHandler.UpdateLine)
			r.Delete("/{id}/lines/{index}", cfg.TransactionHandler.RemoveLine)
		})

		// Metal purchases
		r.Route("/purchases", func(r chi.Router) {
			r.Post("/", cfg.PurchaseHandler.Create)
			r.Get("/", cfg.PurchaseHandler.List)
			r.Get("/{id}", cfg.PurchaseHandler.Get)
			r.Put("/{id}", cfg.PurchaseHandler.Update)
			r.Delete("/{id}", cfg.PurchaseHandler.Delete)
		})

		// Entry vouchers
		r.Route("/vouchers", func(r chi.Router) {
			r.Post("/", cfg.VoucherHandler.Create)
			r.Get("/", cfg.VoucherHandler.List)
			r.Get("/{id}", cfg.VoucherHandler.Get)
			r.Delete("/{id}", cfg.VoucherHandler.Delete)
		})

		// Fixings
		r.Route("/fixings", func(r chi.Router) {
			r.Post("/", cfg.FixingHandler.Create)
			r.Get("/", cfg.FixingHandler.List)
			r.Get("/{id}", cfg.FixingHandler.Get)
			r.Delete("/{id}", cfg.FixingHandler.Delete)
			r.Post("/{id}/restore", cfg.FixingHandler.Restore)
		})

		// Fund transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Post("/opening-balance", cfg.TransferHandler.CreateOpeningBalance)
			r.Get("/{id}", cfg.TransferHandler.Get)
		})

		// Registry reads
		r.Route("/registry", func(r chi.Router) {
			r.Get("/batches/{transactionID}", cfg.RegistryHandler.GetBatch)
			r.Get("/batches/{transactionID}/sums", cfg.RegistryHandler.GetBatchSums)
			r.Get("/stock/{code}", cfg.RegistryHandler.StockLedger)
		})

		// Reconciliation
		r.Route("/reconciliation", func(r chi.Router) {
			r.Get("/batches/{transactionID}", cfg.ReconciliationHandler.CheckBatch)
			r.Get("/totals", cfg.ReconciliationHandler.LedgerTotals)
		})
	})

	return r
}
