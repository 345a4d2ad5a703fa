package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitelens/audit"
	"github.com/use-agent/sitelens/cache"
	"github.com/use-agent/sitelens/models"
)

// BasicInfo returns the handler for POST /api/v1/basic-info.
func BasicInfo(a *audit.Auditor, cc *cache.Cache) gin.HandlerFunc {
	return auditEndpoint(cc, "basic-info", "fetch failed", a.BasicInfo)
}

// SEOElements returns the handler for POST /api/v1/seo-elements.
func SEOElements(a *audit.Auditor, cc *cache.Cache) gin.HandlerFunc {
	return auditEndpoint(cc, "seo-elements", "analysis failed", a.SEOElements)
}

// TechSEO returns the handler for POST /api/v1/tech-seo.
func TechSEO(a *audit.Auditor, cc *cache.Cache) gin.HandlerFunc {
	return auditEndpoint(cc, "tech-seo", "technical SEO check failed", a.TechSEO)
}

// Accessibility returns the handler for POST /api/v1/accessibility.
func Accessibility(a *audit.Auditor, cc *cache.Cache) gin.HandlerFunc {
	return auditEndpoint(cc, "accessibility", "accessibility check failed", a.Accessibility)
}

// auditEndpoint builds the shared handler shape of the four module
// endpoints: bind {url}, consult the cache, run the extractor, cache
// and return the result.
func auditEndpoint[T any](cc *cache.Cache, moduleID, errLabel string, run func(context.Context, string) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AuditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "missing or invalid url parameter",
				Code:  models.ErrCodeInvalidInput,
			})
			return
		}

		key := cache.Key(req.URL, moduleID)
		if cached, hit := cc.Get(key); hit {
			c.JSON(http.StatusOK, cached)
			return
		}

		result, err := run(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, errLabel, err)
			return
		}

		cc.Set(key, result)
		c.JSON(http.StatusOK, result)
	}
}

// respondError maps an audit failure to its HTTP response. Rendering
// failures and timeouts are module-fatal and surface as 500 with the
// diagnostic detail; no fabricated score is ever returned.
func respondError(c *gin.Context, label string, err error) {
	var auditErr *models.AuditError
	if !errors.As(err, &auditErr) {
		auditErr = models.NewAuditError(models.ErrCodeInternal, err.Error(), err)
	}

	status := http.StatusInternalServerError
	if auditErr.Code == models.ErrCodeInvalidInput {
		status = http.StatusBadRequest
	}

	c.JSON(status, models.ErrorResponse{
		Error:  label,
		Detail: err.Error(),
		Code:   auditErr.Code,
	})
}
