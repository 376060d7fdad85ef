package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Check is a named readiness dependency, e.g. {"postgres", db.Ping}.
type Check struct {
	Name string
	Fn   func() error
}

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness check (always returns 200 OK).
//   - /readyz: Readiness check, runs every registered Check.
type HealthHandler struct {
	checks []Check
}

// NewHealthHandler constructs a HealthHandler. Checks with a nil Fn are ignored.
func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: Returns 200 OK when every check passes, 503 with the failing
//     dependency names otherwise.
func (h *HealthHandler) Register(r *gin.Engine) {
	// Liveness check (just checks if the service is up)
	// @Summary      Liveness check
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness check (checks dependencies)
	// @Summary      Readiness check
	// @Description  Returns ready if the service dependencies (DB) are reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]any
	// @Failure      503  {object}  map[string]any
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		failing := map[string]string{}
		for _, chk := range h.checks {
			if chk.Fn == nil {
				continue
			}
			if err := chk.Fn(); err != nil {
				failing[chk.Name] = err.Error()
			}
		}
		if len(failing) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "failing": failing})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}
