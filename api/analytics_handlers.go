package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/license-plate-game/internal/engine"
	"github.com/gcbaptista/license-plate-game/model"
)

// GetAnalyticsHandler returns the solve dashboard. With ?solver=name only that
// solver's usage entry is returned.
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	dashboard, err := api.analytics.GetDashboardData()
	if err != nil {
		SendInternalError(c, "retrieve analytics data", err)
		return
	}

	solverName := c.Query("solver")
	if solverName == "" {
		c.JSON(http.StatusOK, dashboard)
		return
	}

	if _, err := api.engine.GetSolver(solverName); err != nil {
		SendSolverNotFoundError(c, solverName)
		return
	}
	usage := model.SolverStats{SolverName: solverName}
	for _, stats := range dashboard.SolverUsage {
		if stats.SolverName == solverName {
			usage = stats
			break
		}
	}
	c.JSON(http.StatusOK, usage)
}

// HealthCheckHandler reports liveness along with solver and job counts.
func (api *API) HealthCheckHandler(c *gin.Context) {
	solvers := api.engine.ListSolvers()
	words := 0
	for _, name := range solvers {
		if s, err := api.engine.GetSolver(name); err == nil {
			words += s.DictionarySize()
		}
	}

	body := gin.H{
		"status":           "healthy",
		"service":          "license-plate-game",
		"solvers":          len(solvers),
		"dictionary_words": words,
		"uptime_seconds":   int64(time.Since(api.startedAt).Seconds()),
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	}
	if eng, ok := api.engine.(*engine.Engine); ok {
		body["pending_jobs"] = eng.GetCurrentWorkload()
	}
	c.JSON(http.StatusOK, body)
}
