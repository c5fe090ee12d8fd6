package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/osse101/SlotGuard_Go/internal/database"
	"github.com/osse101/SlotGuard_Go/internal/logger"
)

// HealthResponse is the body of /healthz and /readyz
type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// ReadinessCheck is one dependency /readyz waits on
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// DatabaseCheck pings the pool
func DatabaseCheck(pool database.Pool) ReadinessCheck {
	return ReadinessCheck{Name: CheckDatabase, Check: pool.Ping}
}

// HandleHealthz answers as long as the process serves requests
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleReadyz runs every check concurrently under ReadyzTimeout and reports
// ready only when all pass. With no checks it is always ready.
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse "A dependency check failed"
// @Router /readyz [get]
func HandleReadyz(checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), ReadyzTimeout)
		defer cancel()

		results := make(map[string]string, len(checks))
		var (
			mu     sync.Mutex
			wg     sync.WaitGroup
			failed bool
		)
		for _, c := range checks {
			wg.Add(1)
			go func(c ReadinessCheck) {
				defer wg.Done()
				status := StatusOK
				if err := c.Check(ctx); err != nil {
					logger.FromContext(ctx).Error(LogMsgReadinessFailed, LogFieldCheck, c.Name, LogFieldError, err)
					status = StatusUnavailable
				}
				mu.Lock()
				defer mu.Unlock()
				results[c.Name] = status
				failed = failed || status != StatusOK
			}(c)
		}
		wg.Wait()

		if failed {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  StatusUnavailable,
				Message: MsgChecksFailed,
				Checks:  results,
			})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK, Checks: results})
	}
}
