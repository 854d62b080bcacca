package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gstbooks/gstbooks/internal/adapter/http/handler"
	"github.com/gstbooks/gstbooks/internal/adapter/http/middleware"
	"github.com/gstbooks/gstbooks/internal/domain"
	"github.com/gstbooks/gstbooks/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	VoucherHandler     *handler.VoucherHandler
	ReportHandler      *handler.ReportHandler
	OutstandingHandler *handler.OutstandingHandler
	CashFlowHandler    *handler.CashFlowHandler
	StockHandler       *handler.StockHandler
	RegistryHandler    *handler.RegistryHandler
	SettingsHandler    *handler.SettingsHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Logger             *zerolog.Logger
}

// NewRouter creates a new HTTP router. The voucher posting paths keep
// the exact spellings older clients already call, casing included.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(*cfg.Logger).Wrap)
	} else {
		r.Use(chimiddleware.Logger)
	}
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Voucher posting
		r.Post("/vouchers", cfg.VoucherHandler.Post)
		r.Post("/sale-vouchers/vouchers", cfg.VoucherHandler.PostKind(domain.KindSales))
		r.Post("/purchase-vouchers", cfg.VoucherHandler.PostKind(domain.KindPurchase))
		r.Post("/CreditNotevoucher", cfg.VoucherHandler.PostKind(domain.KindCreditNote))
		r.Post("/DebitNoteVoucher", cfg.VoucherHandler.PostKind(domain.KindDebitNote))
		r.Post("/StockJournal", cfg.VoucherHandler.PostKind(domain.KindStockJournal))
		r.Post("/DeliveryItem", cfg.VoucherHandler.PostKind(domain.KindDelivery))

		// Voucher retrieval
		r.Get("/vouchers", cfg.VoucherHandler.List)
		r.Get("/vouchers/{id}", cfg.VoucherHandler.Get)
		r.Get("/daybook", cfg.VoucherHandler.Daybook)

		// Ledger statement and aggregate reports
		r.Get("/ledger-report/report", cfg.ReportHandler.LedgerReport)
		r.Get("/trial-balance", cfg.ReportHandler.TrialBalance)
		r.Get("/profit-loss", cfg.ReportHandler.ProfitAndLoss)
		r.Get("/balance-sheet", cfg.ReportHandler.BalanceSheet)

		// Outstanding
		r.Get("/outstanding-receivables", cfg.OutstandingHandler.Receivables)
		r.Get("/outstanding-payables", cfg.OutstandingHandler.Payables)
		r.Get("/billwise-receivables", cfg.OutstandingHandler.BillwiseReceivables)
		r.Get("/billwise-payables", cfg.OutstandingHandler.BillwisePayables)

		// Cash flow
		r.Get("/cash-flow", cfg.CashFlowHandler.Statement)
		r.Get("/cash-flow/summary/{monthCode}", cfg.CashFlowHandler.MonthDetail)

		// Stock reports
		r.Get("/stock-summary", cfg.StockHandler.Summary)
		r.Get("/movement-analysis", cfg.StockHandler.Movements)
		r.Get("/ageing-analysis", cfg.StockHandler.Ageing)
		r.Get("/godown-summary", cfg.StockHandler.GodownSummary)

		// Master-data lookups
		r.Get("/ledgers", cfg.RegistryHandler.ListLedgers)
		r.Get("/ledgers/dropdown", cfg.RegistryHandler.LedgerDropdown)
		r.Get("/ledgers/{id}", cfg.RegistryHandler.GetLedger)
		r.Get("/ledger-groups", cfg.RegistryHandler.ListGroups)
		r.Get("/stock-items", cfg.RegistryHandler.ListStockItems)
		r.Get("/stock-items/{id}", cfg.RegistryHandler.GetStockItem)

		// Valuation settings
		r.Get("/valuation/settings", cfg.SettingsHandler.Get)
		r.Put("/valuation/settings", cfg.SettingsHandler.Save)
	})

	return r
}
