package handler

import (
	"net/http"

	"github.com/andybalholm/cascadia"
	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitelens/audit"
	"github.com/use-agent/sitelens/models"
)

// Screenshot returns the handler for GET /api/v1/screenshot.
//
// Renders the target and returns a full-page PNG. An optional selector
// query parameter highlights one element before capture; it is
// validated up front so a bad selector fails fast instead of being
// injected into the page.
func Screenshot(a *audit.Auditor) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := c.Query("url")
		if target == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "missing url parameter",
				Code:  models.ErrCodeInvalidInput,
			})
			return
		}

		selector := c.Query("selector")
		if selector != "" {
			if _, err := cascadia.Parse(selector); err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Error:  "invalid selector",
					Detail: err.Error(),
					Code:   models.ErrCodeInvalidInput,
				})
				return
			}
		}

		png, err := a.Screenshot(c.Request.Context(), target, selector)
		if err != nil {
			respondError(c, "screenshot failed", err)
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
