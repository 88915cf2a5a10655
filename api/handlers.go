package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gcbaptista/license-plate-game/internal/analytics"
	"github.com/gcbaptista/license-plate-game/internal/logging"
	"github.com/gcbaptista/license-plate-game/services"
)

// maxRequestBodySize bounds JSON bodies; requests here are settings and letter queries.
const maxRequestBodySize = 1 << 20

// SolverWatcher is told which dictionary each solver reads so it can reload on change.
type SolverWatcher interface {
	Add(solverName, dictPath string) error
	Remove(solverName string)
}

// API holds dependencies for API handlers, primarily the solver manager.
type API struct {
	engine    services.SolverManager
	analytics *analytics.Service
	watcher   SolverWatcher
	logger    zerolog.Logger
	startedAt time.Time
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.SolverManager) *API {
	return &API{
		engine:    engine,
		analytics: analytics.NewService(engine),
		logger:    logging.GetLogger("api"),
		startedAt: time.Now(),
	}
}

// SetWatcher registers a dictionary watcher that follows solver creation, updates and deletion.
func (api *API) SetWatcher(w SolverWatcher) {
	api.watcher = w
}

// SetupRoutes defines all the API routes for the solver service.
func SetupRoutes(router *gin.Engine, engine services.SolverManager) *API {
	apiHandler := NewAPI(engine)

	router.Use(
		RequestIDMiddleware(),
		RequestLoggerMiddleware(apiHandler.logger),
		CORSMiddleware(),
		RequestSizeLimitMiddleware(maxRequestBodySize),
	)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Pattern preview, no solver involved
	router.POST("/_pattern", apiHandler.PatternHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
	}

	// Solver management routes
	solverRoutes := router.Group("/solvers")
	{
		solverRoutes.POST("", apiHandler.CreateSolverHandler)                                    // Create a new solver
		solverRoutes.GET("", apiHandler.ListSolversHandler)                                      // List all solvers
		solverRoutes.GET("/:solverName", apiHandler.GetSolverHandler)                            // Get solver details
		solverRoutes.DELETE("/:solverName", apiHandler.DeleteSolverHandler)                      // Delete a solver
		solverRoutes.PATCH("/:solverName/settings", apiHandler.UpdateSolverSettingsHandler)      // Update solver settings
		solverRoutes.POST("/:solverName/rename", apiHandler.RenameSolverHandler)                 // Rename a solver
		solverRoutes.POST("/:solverName/dictionary/_reload", apiHandler.ReloadDictionaryHandler) // Re-read the dictionary file
		solverRoutes.GET("/:solverName/jobs", apiHandler.ListJobsHandler)                        // List jobs for a solver

		// Solve route per solver
		solverRoutes.POST("/:solverName/_solve", apiHandler.SolveHandler)
	}

	return apiHandler
}

func (api *API) watch(solverName, dictPath string) {
	if api.watcher == nil {
		return
	}
	if err := api.watcher.Add(solverName, dictPath); err != nil {
		api.logger.Warn().Err(err).Str("solver", solverName).Str("path", dictPath).Msg("Failed to watch dictionary")
	}
}

func (api *API) unwatch(solverName string) {
	if api.watcher != nil {
		api.watcher.Remove(solverName)
	}
}
