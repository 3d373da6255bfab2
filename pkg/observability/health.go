package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthStatus is what the health endpoint reports
type HealthStatus struct {
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Status    string            `json:"status"`
}

// HealthChecker probes the service's dependencies.
// The only hard dependency is the database pool.
type HealthChecker struct {
	pool *pgxpool.Pool
}

// NewHealthChecker creates a health checker over the database pool
func NewHealthChecker(pool *pgxpool.Pool) *HealthChecker {
	return &HealthChecker{pool: pool}
}

// Check pings the database with a short deadline
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
		Status:    "healthy",
	}

	if h.pool == nil {
		status.Checks["database"] = "not configured"
		return status
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.pool.Ping(pingCtx); err != nil {
		status.Checks["database"] = "unhealthy: " + err.Error()
		status.Status = "unhealthy"
	} else {
		status.Checks["database"] = "healthy"
	}
	return status
}

// HealthHandler serves the check result, 503 when unhealthy
func (h *HealthChecker) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := h.Check(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if status.Status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(status)
	}
}
