package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health check status values.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// healthCheckTimeout bounds each dependency probe.
const healthCheckTimeout = 3 * time.Second

// HealthChecker probes a single dependency.
type HealthChecker func(ctx context.Context) error

// checkResult reports one dependency probe in the health response.
type checkResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency"`
}

// healthHandler reports service health, running the configured dependency
// checks. The database is critical; the cache only degrades the service.
func healthHandler(serviceName, version string, checks map[string]HealthChecker, critical map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := StatusHealthy
		results := make(map[string]checkResult, len(checks))

		for name, check := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
			start := time.Now()
			err := check(ctx)
			latency := time.Since(start)
			cancel()

			if err != nil {
				result := checkResult{
					Status:  StatusDegraded,
					Message: err.Error(),
					Latency: latency.String(),
				}
				if critical[name] {
					result.Status = StatusUnhealthy
					status = StatusUnhealthy
				} else if status == StatusHealthy {
					status = StatusDegraded
				}
				results[name] = result
				continue
			}

			results[name] = checkResult{Status: StatusHealthy, Latency: latency.String()}
		}

		code := http.StatusOK
		if status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"service":   serviceName,
			"version":   version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"checks":    results,
		})
	}
}
