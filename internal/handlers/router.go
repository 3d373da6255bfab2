// Package handlers wires the HTTP surface: one chi router carrying the
// /api/v1 routes, auth, CORS, rate limiting, and request metrics.
package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/threadline/pos-service/internal/domain/ports"
	authhandler "github.com/threadline/pos-service/internal/handlers/auth"
	bankhandler "github.com/threadline/pos-service/internal/handlers/bank"
	customerhandler "github.com/threadline/pos-service/internal/handlers/customer"
	orderhandler "github.com/threadline/pos-service/internal/handlers/order"
	paymenthandler "github.com/threadline/pos-service/internal/handlers/payment"
	sports "github.com/threadline/pos-service/internal/services/ports"
	"github.com/threadline/pos-service/pkg/middleware"
	"github.com/threadline/pos-service/pkg/observability"
)

// RouterConfig carries everything the router needs
type RouterConfig struct {
	PaymentService  sports.PaymentService
	OrderService    sports.OrderService
	BankService     sports.BankService
	CustomerService sports.CustomerService
	AuthService     sports.AuthService
	Logger          ports.Logger
	HealthChecker   *observability.HealthChecker
	RateLimiter     *middleware.RateLimiter
	AllowedOrigins  []string
}

// NewRouter builds the service's HTTP handler
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(observability.HTTPMetrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.HealthChecker != nil {
		r.Get("/health", cfg.HealthChecker.HealthHandler())
	}

	authH := authhandler.NewHandler(cfg.AuthService, cfg.Logger)
	r.Post("/auth/login", authH.Login)

	paymentH := paymenthandler.NewHandler(cfg.PaymentService, cfg.Logger)
	orderH := orderhandler.NewHandler(cfg.OrderService, cfg.Logger)
	bankH := bankhandler.NewHandler(cfg.BankService, cfg.Logger)
	customerH := customerhandler.NewHandler(cfg.CustomerService, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.AuthService))
		r.Use(middleware.ShopScope)

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", paymentH.Create)
			r.Get("/{id}", paymentH.Get)
			r.Put("/{id}", paymentH.Update)
			r.Delete("/{id}", paymentH.Delete)
			r.Get("/order/{orderId}", paymentH.ListByOrder)
			r.Get("/shop/{shopId}", paymentH.ListByShop)
			r.Get("/shop/{shopId}/date-range", paymentH.ListByDateRange)
			r.Get("/shop/{shopId}/method/{method}", paymentH.ListByMethod)
			r.Get("/shop/{shopId}/summary", paymentH.Summary)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderH.Create)
			r.Get("/{id}", orderH.Get)
			r.Put("/{id}", orderH.Update)
			r.Post("/{id}/payment", orderH.RecordPayment)
			r.Put("/{id}/status", orderH.UpdateStatus)
			r.Get("/customer/{customerId}", orderH.ListByCustomer)
			r.Get("/shop/{shopId}", orderH.ListByShop)
			r.Get("/shop/{shopId}/pending", orderH.ListPending)
			r.Get("/shop/{shopId}/summary", orderH.Summary)
		})

		r.Route("/bank-accounts", func(r chi.Router) {
			r.Post("/", bankH.CreateAccount)
			r.Get("/{shopId}", bankH.ListAccounts)
			r.Get("/{shopId}/active", bankH.ListActiveAccounts)
			r.Get("/{shopId}/{id}", bankH.GetAccount)
			r.Put("/{shopId}/{id}", bankH.UpdateAccount)
			r.Delete("/{shopId}/{id}", bankH.CloseAccount)
			r.Get("/{shopId}/{id}/reconciliation", bankH.Reconciliation)
		})

		r.Route("/bank-collections", func(r chi.Router) {
			r.Post("/", bankH.CreateCollection)
			r.Get("/account/{bankAccountId}", bankH.ListCollectionsByAccount)
			r.Get("/shop/{shopId}", bankH.ListCollectionsByShop)
			r.Get("/shop/{shopId}/summary", bankH.CollectionSummary)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", customerH.Create)
			r.Get("/{id}", customerH.Get)
			r.Put("/{id}", customerH.Update)
			r.Delete("/{id}", customerH.Delete)
			r.Get("/shop/{shopId}", customerH.ListByShop)
		})
	})

	return r
}
