package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitelens/audit"
	"github.com/use-agent/sitelens/cache"
	"github.com/use-agent/sitelens/config"
	"github.com/use-agent/sitelens/models"
	"github.com/use-agent/sitelens/webhook"
)

// Report returns the handler for POST /api/v1/report.
//
// The four modules are extracted in-process and concurrently; if any
// one fails the whole report fails, naming the failed module in the
// detail, rather than returning a composite with a hole in it.
func Report(a *audit.Auditor, cc *cache.Cache, whCfg config.WebhookConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AuditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "missing or invalid url parameter",
				Code:  models.ErrCodeInvalidInput,
			})
			return
		}

		key := cache.Key(req.URL, "report")
		if cached, hit := cc.Get(key); hit {
			c.JSON(http.StatusOK, cached)
			return
		}

		report, err := a.Report(c.Request.Context(), req.URL)
		if err != nil {
			if whCfg.URL != "" {
				webhook.DeliverAsync(whCfg.URL, whCfg.Secret, &webhook.Event{
					Type:      "report.failed",
					URL:       req.URL,
					Timestamp: time.Now().Unix(),
					Data:      gin.H{"detail": err.Error()},
				})
			}
			respondError(c, "report generation failed", err)
			return
		}

		cc.Set(key, report)
		if whCfg.URL != "" {
			webhook.DeliverAsync(whCfg.URL, whCfg.Secret, &webhook.Event{
				Type:      "report.completed",
				URL:       req.URL,
				Timestamp: time.Now().Unix(),
				Data:      report,
			})
		}
		c.JSON(http.StatusOK, report)
	}
}
