package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitelens/audit"
	"github.com/use-agent/sitelens/models"
)

// Health returns the handler for GET /api/v1/health.
//
// Reports session utilisation and degrades status when > 80% of the
// session slots are occupied.
func Health(a *audit.Auditor, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := a.Stats()

		status := "healthy"
		if stats.MaxSessions > 0 && int64(stats.ActiveSessions) > stats.MaxSessions*8/10 {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:   status,
			Uptime:   time.Since(startTime).Round(time.Second).String(),
			Sessions: stats,
			Version:  "0.1.0",
		})
	}
}
