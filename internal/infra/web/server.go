package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/infra/metrics"
	"github.com/madhawadiyanath/Daycare-Managment-System-sub000/internal/usecase"
)

type Server struct {
	payments     usecase.PaymentUseCase
	transactions usecase.TransactionUseCase
	reports      usecase.ReportUseCase
	auth         *AuthManager
	adminKey     string
	log          *zerolog.Logger
}

func NewServer(
	payments usecase.PaymentUseCase,
	transactions usecase.TransactionUseCase,
	reports usecase.ReportUseCase,
	auth *AuthManager,
	adminKey string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		payments:     payments,
		transactions: transactions,
		reports:      reports,
		auth:         auth,
		adminKey:     adminKey,
		log:          logger,
	}
}

// Router builds the full HTTP surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/packages", s.listPackages)

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", s.createPayment)
			r.Get("/", s.listPayments)
			r.Get("/stats", s.paymentStats)
			r.Get("/receipt/{receiptId}", s.getPaymentByReceipt)
			r.Get("/email/{email}", s.listPaymentsByEmail)
			r.Get("/{id}", s.getPayment)
			r.Put("/{id}/status", s.updatePaymentStatus)
			r.Delete("/{id}", s.cancelPayment)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", s.createTransaction)
			r.Get("/", s.listTransactions)
			r.Get("/user/{userId}", s.listTransactionsByUser)
			r.Get("/summary/{userId}", s.transactionSummary)
			r.Get("/{id}", s.getTransaction)
			r.Put("/{id}", s.updateTransaction)
			r.Delete("/{id}", s.deleteTransaction)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/session", s.adminLogin)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Get("/reports/payments.xlsx", s.exportPayments)
			})
		})
	})

	return r
}

// requireAdmin guards admin-only routes behind a valid session token.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminKey == "" {
			s.log.Error().Msg("admin API key is not configured")
			writeMessage(w, http.StatusForbidden, "Forbidden")
			return
		}
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.ObserveHTTPRequest(route, r.Method, ww.Status(), float64(time.Since(start).Milliseconds()))
	})
}
