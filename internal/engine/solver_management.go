package engine

import (
	"fmt"
	"os"
	"strings"

	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/internal/errors"
	"github.com/gcbaptista/license-plate-game/services"
)

// prepareSettings trims the name, fills defaults and validates. Solvers created through
// the engine write their answers inside their own directory unless told otherwise.
func (e *Engine) prepareSettings(settings config.SolverSettings) (config.SolverSettings, error) {
	settings.Name = strings.TrimSpace(settings.Name)
	if strings.TrimSpace(settings.AnswerPath) == "" && settings.Name != "" {
		settings.AnswerPath = e.defaultAnswerPath(settings.Name)
	}
	settings.ApplyDefaults()

	if problems := settings.Validate(); len(problems) > 0 {
		return settings, errors.NewValidationError("settings", strings.Join(problems, "; "))
	}
	return settings, nil
}

// CreateSolver creates a new solver with the given settings and persists them.
func (e *Engine) CreateSolver(settings config.SolverSettings) error {
	settings, err := e.prepareSettings(settings)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.solvers[settings.Name]; exists {
		return errors.NewSolverAlreadyExistsError(settings.Name)
	}

	instance := NewSolverInstance(settings)

	if err := e.persistSettingsUnsafe(settings); err != nil {
		return fmt.Errorf("failed to persist new solver '%s': %w", settings.Name, err)
	}

	e.solvers[settings.Name] = instance
	e.logger.Info().
		Str("solver", settings.Name).
		Int("words", instance.DictionarySize()).
		Msg("Solver created and persisted")
	return nil
}

// GetSolver retrieves a solver by its name.
func (e *Engine) GetSolver(name string) (services.Solver, error) {
	instance, err := e.getInstance(name)
	if err != nil {
		return nil, err
	}
	return instance, nil
}

func (e *Engine) getInstance(name string) (*SolverInstance, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.solvers[name]
	if !exists {
		return nil, errors.NewSolverNotFoundError(name)
	}
	return instance, nil
}

// GetSolverSettings retrieves the settings for a specific solver.
func (e *Engine) GetSolverSettings(name string) (config.SolverSettings, error) {
	instance, err := e.getInstance(name)
	if err != nil {
		return config.SolverSettings{}, err
	}
	return instance.Settings(), nil
}

// DescribeSolver returns a summary of a solver's settings and dictionary.
func (e *Engine) DescribeSolver(name string) (services.SolverInfo, error) {
	instance, err := e.getInstance(name)
	if err != nil {
		return services.SolverInfo{}, err
	}
	return instance.Info(), nil
}

// RenameSolver renames a solver in memory and on disk. A solver using the default
// answer file follows the rename; an explicit answer path is kept.
func (e *Engine) RenameSolver(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if oldName == newName {
		return errors.NewSameNameError(oldName)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.solvers[oldName]
	if !exists {
		return errors.NewSolverNotFoundError(oldName)
	}
	if _, exists := e.solvers[newName]; exists {
		return errors.NewSolverAlreadyExistsError(newName)
	}

	newSettings := instance.Settings()
	newSettings.Name = newName
	if newSettings.AnswerPath == e.defaultAnswerPath(oldName) {
		newSettings.AnswerPath = e.defaultAnswerPath(newName)
	}
	if problems := newSettings.Validate(); len(problems) > 0 {
		return errors.NewValidationError("new_name", strings.Join(problems, "; "))
	}

	if err := e.persistSettingsUnsafe(newSettings); err != nil {
		return fmt.Errorf("failed to persist renamed solver: %w", err)
	}

	instance.Rename(newName)
	instance.SetAnswerFile(newSettings.AnswerPath)
	e.solvers[newName] = instance
	delete(e.solvers, oldName)

	oldDir := e.solverDir(oldName)
	if err := os.RemoveAll(oldDir); err != nil {
		// The rename itself succeeded
		e.logger.Warn().Err(err).Str("path", oldDir).Msg("Failed to remove old solver directory")
	}

	e.logger.Info().Str("from", oldName).Str("to", newName).Msg("Solver renamed")
	return nil
}

// DeleteSolver removes a solver from memory and its directory from disk.
func (e *Engine) DeleteSolver(name string) error {
	// Never let a name resolve outside the data directory
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.NewSolverNotFoundError(name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	dir := e.solverDir(name)
	if _, exists := e.solvers[name]; !exists {
		// Idempotent cleanup of a directory that failed to load
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return errors.NewSolverNotFoundError(name)
		}
	} else {
		delete(e.solvers, name)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete solver data directory %s: %w", dir, err)
	}
	e.logger.Info().Str("solver", name).Msg("Solver deleted from memory and disk")
	return nil
}
