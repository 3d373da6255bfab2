// Package shutdown coordinates graceful teardown. Components register in
// startup order and are shut down in reverse, so servers drain before the
// resources they depend on close.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/threadline/pos-service/internal/domain/ports"
)

var (
	shutdownDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_shutdown_duration_seconds",
		Help:    "Time taken to shut down gracefully",
		Buckets: []float64{1, 5, 10, 15, 20, 30},
	})

	shutdownErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_shutdown_errors_total",
		Help: "Shutdown errors by component",
	}, []string{"component"})
)

// Func tears down one component
type Func func(context.Context) error

type component struct {
	fn   Func
	name string
}

// Manager shuts registered components down in LIFO order on SIGINT/SIGTERM
type Manager struct {
	logger     ports.Logger
	components []component
	mu         sync.Mutex
	timeout    time.Duration
}

// NewManager creates a shutdown manager with an overall teardown deadline
func NewManager(logger ports.Logger, timeout time.Duration) *Manager {
	return &Manager{logger: logger, timeout: timeout}
}

// Register adds a component. Registration order should follow startup
// order; teardown runs in reverse.
func (m *Manager) Register(name string, fn Func) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.components = append(m.components, component{name: name, fn: fn})
}

// RegisterHTTPServer registers an HTTP server's Shutdown method
func (m *Manager) RegisterHTTPServer(name string, server interface {
	Shutdown(context.Context) error
}) {
	m.Register(name, server.Shutdown)
}

// RegisterNoErr registers a teardown function that cannot fail
func (m *Manager) RegisterNoErr(name string, fn func()) {
	m.Register(name, func(context.Context) error {
		fn()
		return nil
	})
}

// WaitForShutdown blocks until SIGINT or SIGTERM, then runs Shutdown
func (m *Manager) WaitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	m.logger.Info("shutdown signal received",
		ports.String("signal", sig.String()))

	m.Shutdown()
}

// Shutdown tears components down in reverse registration order, one at a
// time, under a single deadline.
func (m *Manager) Shutdown() {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	m.mu.Lock()
	components := make([]component, len(m.components))
	copy(components, m.components)
	m.mu.Unlock()

	failed := 0
	for i := len(components) - 1; i >= 0; i-- {
		c := components[i]
		if err := c.fn(ctx); err != nil {
			failed++
			shutdownErrors.WithLabelValues(c.name).Inc()
			m.logger.Error("component shutdown failed",
				ports.String("component", c.name),
				ports.Err(err))
			continue
		}
		m.logger.Info("component shut down",
			ports.String("component", c.name))
	}

	elapsed := time.Since(start)
	shutdownDuration.Observe(elapsed.Seconds())

	if failed > 0 {
		m.logger.Error("graceful shutdown finished with errors",
			ports.Int("failed", failed))
		return
	}
	m.logger.Info("graceful shutdown complete",
		ports.String("elapsed", elapsed.String()))
}
