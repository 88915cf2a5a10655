package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/license-plate-game/internal/engine"
	"github.com/gcbaptista/license-plate-game/model"
	"github.com/gcbaptista/license-plate-game/services"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		SendNotSupportedError(c, "Job management")
		return
	}

	job, err := jobManager.GetJob(jobID)
	if err != nil {
		SendJobNotFoundError(c, jobID)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobsQuery filters a solver's job list.
type ListJobsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending running completed failed cancelled"`
}

// ListJobsHandler lists the jobs of a solver, optionally only those with ?status=.
func (api *API) ListJobsHandler(c *gin.Context) {
	solverName := c.Param("solverName")

	var query ListJobsQuery
	if result := ValidateQueryBinding(c, &query); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	jobManager, ok := api.engine.(services.JobManager)
	if !ok {
		SendNotSupportedError(c, "Job management")
		return
	}

	var statusFilter *model.JobStatus
	if query.Status != "" {
		status := model.JobStatus(query.Status)
		statusFilter = &status
	}

	jobs := jobManager.ListJobs(solverName, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":        jobs,
		"solver_name": solverName,
		"total":       len(jobs),
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	engineWithMetrics, ok := api.engine.(*engine.Engine)
	if !ok {
		SendNotSupportedError(c, "Job metrics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics":          engineWithMetrics.GetJobMetrics(),
		"success_rate":     engineWithMetrics.GetJobSuccessRate(),
		"current_workload": engineWithMetrics.GetCurrentWorkload(),
	})
}
