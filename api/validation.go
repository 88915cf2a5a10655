// Package api provides validation utilities for API request handling.
package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/license-plate-game/config"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateSolverName validates a solver name parameter
func ValidateSolverName(solverName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if solverName == "" {
		result.AddError("solverName", "Solver name is required")
		return result
	}

	if strings.TrimSpace(solverName) != solverName {
		result.AddError("solverName", "Solver name cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateSolverSettings validates solver settings for creation or update.
// Empty paths are left for the engine to default.
func ValidateSolverSettings(settings *config.SolverSettings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if settings == nil {
		result.AddError("settings", "Solver settings are required")
		return result
	}

	if nameCheck := ValidateSolverName(settings.Name); nameCheck.HasErrors() {
		return nameCheck
	}

	candidate := *settings
	candidate.ApplyDefaults()
	for _, problem := range candidate.Validate() {
		result.AddError("settings", problem)
	}

	return result
}

// ValidateRenameRequest validates a rename solver request
func ValidateRenameRequest(oldName, newName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if oldName == "" {
		result.AddError("oldName", "Current solver name is required")
	}

	if newName == "" {
		result.AddError("new_name", "New name is required and cannot be empty")
	}

	if strings.TrimSpace(newName) != newName {
		result.AddError("new_name", "New name cannot have leading or trailing whitespace")
	}

	if strings.ContainsAny(newName, `/\`) {
		result.AddError("new_name", "New name cannot contain path separators")
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}

// ValidateQueryBinding validates query parameter binding
func ValidateQueryBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindQuery(target); err != nil {
		result.AddError("query_parameters", "Invalid query parameters: "+err.Error())
	}

	return result
}
