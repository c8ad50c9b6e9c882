package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/loan_tracker/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status       string `json:"status" example:"healthy"`
	Database     string `json:"database" example:"connected"`
	LoanCount    int    `json:"loanCount,omitempty" example:"42"`
	Error        string `json:"error,omitempty"`
	Timestamp    string `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Env          string `json:"env" example:"development"`
	HasDBURL     bool   `json:"hasDbUrl"`
	HasDirectURL bool   `json:"hasDirectUrl"`
}

// debugResponse is the body of GET /api/debug. It reports only whether
// connection settings exist, never their values.
type debugResponse struct {
	Env          string `json:"env" example:"development"`
	HasDBURL     bool   `json:"hasDbUrl"`
	HasDirectURL bool   `json:"hasDirectUrl"`
	Timestamp    string `json:"timestamp" example:"2024-01-01T00:00:00Z"`
}

type healthHandler struct {
	healthService portssvc.HealthSvc
}

// RegisterHealthRoutes registers /health and, when exposeDebug is set, /api/debug.
func RegisterHealthRoutes(r gin.IRoutes, healthService portssvc.HealthSvc, exposeDebug bool) {
	h := &healthHandler{healthService: healthService}
	r.GET("/health", h.health)
	if exposeDebug {
		r.GET("/api/debug", h.debug)
	}
}

// health godoc
// @Summary Storage health probe
// @Description Counts loans to confirm the database is reachable.
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 500 {object} healthResponse
// @Router /health [get]
func (h *healthHandler) health(c *gin.Context) {
	report := h.healthService.Check(c.Request.Context())
	resp := healthResponse{
		Timestamp:    report.CheckedAt.Format(time.RFC3339),
		Env:          report.Environment,
		HasDBURL:     report.HasDBURL,
		HasDirectURL: report.HasDirectURL,
	}
	if !report.Healthy {
		// The probe error is logged by the service; driver text stays out of the response.
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		resp.Error = "Database connection failed"
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	resp.Status = "healthy"
	resp.Database = "connected"
	resp.LoanCount = report.LoanCount
	c.JSON(http.StatusOK, resp)
}

// debug godoc
// @Summary Environment indicators
// @Description Reports the environment name and which connection settings are present. Not available in production.
// @Tags health
// @Produce json
// @Success 200 {object} debugResponse
// @Router /api/debug [get]
func (h *healthHandler) debug(c *gin.Context) {
	report := h.healthService.Environment()
	c.JSON(http.StatusOK, debugResponse{
		Env:          report.Environment,
		HasDBURL:     report.HasDBURL,
		HasDirectURL: report.HasDirectURL,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}
