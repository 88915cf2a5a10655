package engine

import (
	"fmt"
	"strings"

	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/internal/errors"
)

// UpdateSolverSettings replaces a solver's settings and persists them. A changed
// dictionary path reloads the dictionary before returning; a load failure leaves the
// solver with an empty dictionary and is logged, not returned.
func (e *Engine) UpdateSolverSettings(name string, newSettings config.SolverSettings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.updateSettingsUnsafe(name, newSettings)
}

func (e *Engine) updateSettingsUnsafe(name string, newSettings config.SolverSettings) error {
	instance, exists := e.solvers[name]
	if !exists {
		return errors.NewSolverNotFoundError(name)
	}

	if newSettings.Name != "" && newSettings.Name != name {
		return errors.NewValidationError("name", fmt.Sprintf("cannot change solver name from '%s' to '%s' during settings update", name, newSettings.Name))
	}
	newSettings.Name = name
	if strings.TrimSpace(newSettings.AnswerPath) == "" {
		newSettings.AnswerPath = e.defaultAnswerPath(name)
	}
	newSettings.ApplyDefaults()
	if problems := newSettings.Validate(); len(problems) > 0 {
		return errors.NewValidationError("settings", strings.Join(problems, "; "))
	}

	current := instance.Settings()
	instance.SetConstraints(newSettings.Constraints)
	instance.SetAnswerFile(newSettings.AnswerPath)
	if newSettings.DictionaryPath != current.DictionaryPath {
		if err := instance.SetDictionary(newSettings.DictionaryPath); err != nil {
			e.logger.Warn().Err(err).Str("solver", name).Msg("New dictionary could not be loaded, solver has no words")
		}
	}

	if err := e.persistSettingsUnsafe(newSettings); err != nil {
		e.logger.Error().Err(err).Str("solver", name).Msg("In-memory settings updated, but disk is stale")
		return fmt.Errorf("failed to save updated settings for solver '%s': %w", name, err)
	}

	e.logger.Info().Str("solver", name).Msg("Settings updated and persisted")
	return nil
}

// RequiresReload reports whether applying newSettings to name would reload its dictionary.
func (e *Engine) RequiresReload(name string, newSettings config.SolverSettings) (bool, error) {
	current, err := e.GetSolverSettings(name)
	if err != nil {
		return false, err
	}
	path := newSettings.DictionaryPath
	if strings.TrimSpace(path) == "" {
		path = config.DefaultDictionaryFile
	}
	return path != current.DictionaryPath, nil
}
