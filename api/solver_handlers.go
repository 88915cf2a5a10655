package api

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/internal/errors"
	"github.com/gcbaptista/license-plate-game/services"
)

// UpdateSolverSettingsRequest is a partial settings update; omitted fields keep their values.
type UpdateSolverSettingsRequest struct {
	DictionaryPath *string `json:"dictionary_path,omitempty"`
	AnswerPath     *string `json:"answer_path,omitempty"`
	NoStart        *bool   `json:"no_start,omitempty"`
	NoEnd          *bool   `json:"no_end,omitempty"`
	SpaceBetween   *bool   `json:"space_between,omitempty"`
}

func (r UpdateSolverSettingsRequest) empty() bool {
	return r.DictionaryPath == nil && r.AnswerPath == nil &&
		r.NoStart == nil && r.NoEnd == nil && r.SpaceBetween == nil
}

func (r UpdateSolverSettingsRequest) apply(settings config.SolverSettings) config.SolverSettings {
	if r.DictionaryPath != nil {
		settings.DictionaryPath = *r.DictionaryPath
	}
	if r.AnswerPath != nil {
		settings.AnswerPath = *r.AnswerPath
	}
	if r.NoStart != nil {
		settings.Constraints.NoStart = *r.NoStart
	}
	if r.NoEnd != nil {
		settings.Constraints.NoEnd = *r.NoEnd
	}
	if r.SpaceBetween != nil {
		settings.Constraints.SpaceBetween = *r.SpaceBetween
	}
	return settings
}

// RenameSolverRequest is the body of a rename request
type RenameSolverRequest struct {
	NewName string `json:"new_name" binding:"required"`
}

// sendSolverError maps engine errors onto API error responses.
func sendSolverError(c *gin.Context, operation, solverName string, err error) {
	var exists *errors.SolverAlreadyExistsError
	var validation *errors.ValidationError

	switch {
	case stderrors.Is(err, errors.ErrSolverNotFound):
		SendSolverNotFoundError(c, solverName)
	case stderrors.As(err, &exists):
		SendSolverExistsError(c, exists.SolverName)
	case stderrors.Is(err, errors.ErrSameName):
		SendSameNameError(c, solverName)
	case stderrors.Is(err, errors.ErrInvalidQuery):
		SendInvalidQueryError(c, err)
	case stderrors.As(err, &validation):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed",
			ErrorDetail{Field: validation.Field, Message: validation.Message, Code: "VALIDATION_ERROR"})
	default:
		SendInternalError(c, operation, err)
	}
}

// CreateSolverHandler handles the request to create a new solver.
// Request Body: config.SolverSettings
func (api *API) CreateSolverHandler(c *gin.Context) {
	var settings config.SolverSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateSolverSettings(&settings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.CreateSolver(settings); err != nil {
		sendSolverError(c, "solver creation", settings.Name, err)
		return
	}

	info, err := api.engine.DescribeSolver(settings.Name)
	if err != nil {
		sendSolverError(c, "solver creation", settings.Name, err)
		return
	}
	api.watch(info.Name, info.DictionaryPath)

	response := gin.H{
		"message": "Solver '" + info.Name + "' created successfully",
		"solver":  info,
	}
	if info.LoadError != "" {
		// Created with an empty dictionary
		response["warning"] = info.LoadError
	}
	c.JSON(http.StatusCreated, response)
}

// ListSolversHandler lists every solver with its summary.
func (api *API) ListSolversHandler(c *gin.Context) {
	names := api.engine.ListSolvers()
	solvers := make([]services.SolverInfo, 0, len(names))
	for _, name := range names {
		info, err := api.engine.DescribeSolver(name)
		if err != nil {
			// Deleted between listing and describing
			continue
		}
		solvers = append(solvers, info)
	}

	c.JSON(http.StatusOK, gin.H{
		"solvers": solvers,
		"total":   len(solvers),
	})
}

// GetSolverHandler returns a solver's settings and dictionary state.
func (api *API) GetSolverHandler(c *gin.Context) {
	solverName := c.Param("solverName")

	info, err := api.engine.DescribeSolver(solverName)
	if err != nil {
		sendSolverError(c, "solver lookup", solverName, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// DeleteSolverHandler handles the request to delete a solver.
func (api *API) DeleteSolverHandler(c *gin.Context) {
	solverName := c.Param("solverName")

	if err := api.engine.DeleteSolver(solverName); err != nil {
		sendSolverError(c, "solver deletion", solverName, err)
		return
	}
	api.unwatch(solverName)

	c.JSON(http.StatusOK, gin.H{"message": "Solver '" + solverName + "' deleted successfully"})
}

// UpdateSolverSettingsHandler applies a partial settings update. Changing the dictionary
// path reloads the dictionary in a background job and answers 202 with the job ID.
func (api *API) UpdateSolverSettingsHandler(c *gin.Context) {
	solverName := c.Param("solverName")

	current, err := api.engine.GetSolverSettings(solverName)
	if err != nil {
		sendSolverError(c, "settings update", solverName, err)
		return
	}

	var req UpdateSolverSettingsRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if req.empty() {
		result := &ValidationResult{Valid: true}
		result.AddError("request_body", "No updatable settings provided")
		SendValidationError(c, result)
		return
	}

	updated := req.apply(current)
	if result := ValidateSolverSettings(&updated); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	dictionaryChanged := updated.DictionaryPath != current.DictionaryPath
	if asyncEngine, ok := api.engine.(services.SolverManagerWithAsyncReload); ok && dictionaryChanged {
		jobID, err := asyncEngine.UpdateSolverSettingsAsync(solverName, updated)
		if err != nil {
			if stderrors.Is(err, errors.ErrSolverNotFound) {
				SendSolverNotFoundError(c, solverName)
				return
			}
			SendJobExecutionError(c, "settings update", err)
			return
		}
		api.unwatch(solverName)
		api.watch(solverName, updated.DictionaryPath)

		c.JSON(http.StatusAccepted, gin.H{
			"status":  "accepted",
			"message": "Settings update started for solver '" + solverName + "'",
			"job_id":  jobID,
		})
		return
	}

	if err := api.engine.UpdateSolverSettings(solverName, updated); err != nil {
		sendSolverError(c, "settings update", solverName, err)
		return
	}
	if dictionaryChanged {
		api.unwatch(solverName)
		api.watch(solverName, updated.DictionaryPath)
	}

	settings, err := api.engine.GetSolverSettings(solverName)
	if err != nil {
		sendSolverError(c, "settings update", solverName, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Settings for solver '" + solverName + "' updated successfully",
		"settings": settings,
	})
}

// RenameSolverHandler renames a solver.
// Request Body: {"new_name": "..."}
func (api *API) RenameSolverHandler(c *gin.Context) {
	oldName := c.Param("solverName")

	var req RenameSolverRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateRenameRequest(oldName, req.NewName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.RenameSolver(oldName, req.NewName); err != nil {
		sendSolverError(c, "solver rename", oldName, err)
		return
	}

	if settings, err := api.engine.GetSolverSettings(req.NewName); err == nil {
		api.unwatch(oldName)
		api.watch(req.NewName, settings.DictionaryPath)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Solver '" + oldName + "' renamed to '" + req.NewName + "'",
		"old_name": oldName,
		"new_name": req.NewName,
	})
}

// ReloadDictionaryHandler re-reads a solver's dictionary file in a background job.
func (api *API) ReloadDictionaryHandler(c *gin.Context) {
	solverName := c.Param("solverName")

	asyncEngine, ok := api.engine.(services.SolverManagerWithAsyncReload)
	if !ok {
		SendNotSupportedError(c, "Dictionary reload")
		return
	}

	jobID, err := asyncEngine.ReloadDictionaryAsync(solverName)
	if err != nil {
		if stderrors.Is(err, errors.ErrSolverNotFound) {
			SendSolverNotFoundError(c, solverName)
			return
		}
		SendJobExecutionError(c, "dictionary reload", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Dictionary reload started for solver '" + solverName + "'",
		"job_id":  jobID,
	})
}
