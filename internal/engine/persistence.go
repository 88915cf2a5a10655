package engine

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/internal/persistence"
)

const (
	dataDirPerm       = 0755
	settingsFile      = "settings.gob"
	defaultAnswerFile = "answers.txt"
)

// solverDir returns the directory holding a solver's persisted state.
func (e *Engine) solverDir(name string) string {
	return filepath.Join(e.dataDir, name)
}

// defaultAnswerPath is where a solver created without an answer path writes its results.
func (e *Engine) defaultAnswerPath(name string) string {
	return filepath.Join(e.solverDir(name), defaultAnswerFile)
}

// loadSolversFromDisk loads every solver whose settings are found under the data directory.
func (e *Engine) loadSolversFromDisk() {
	e.logger.Info().Str("data_dir", e.dataDir).Msg("Loading solvers from disk")

	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		e.logger.Warn().Err(err).Str("data_dir", e.dataDir).Msg("Failed to read data directory, no solvers loaded")
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		solverName := item.Name()
		settingsPath := filepath.Join(e.solverDir(solverName), settingsFile)

		var settings config.SolverSettings
		if err := persistence.LoadGob(settingsPath, &settings); err != nil {
			if stderrors.Is(err, os.ErrNotExist) {
				e.logger.Debug().Str("dir", solverName).Msg("No settings file, skipping directory")
			} else {
				e.logger.Warn().Err(err).Str("path", settingsPath).Msg("Failed to load solver settings, skipping")
			}
			continue
		}

		// Settings name must match the directory name
		if settings.Name != solverName {
			e.logger.Warn().
				Str("settings_name", settings.Name).
				Str("dir", solverName).
				Msg("Solver name in settings does not match directory name, skipping")
			continue
		}

		e.solvers[solverName] = NewSolverInstance(settings)
		e.logger.Info().Str("solver", solverName).Msg("Loaded solver")
	}
}

// persistSettingsUnsafe writes settings to the solver's directory. Caller must hold e.mu.
func (e *Engine) persistSettingsUnsafe(settings config.SolverSettings) error {
	dir := e.solverDir(settings.Name)
	if err := os.MkdirAll(dir, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create directory for solver %s: %w", settings.Name, err)
	}
	if err := persistence.SaveGob(filepath.Join(dir, settingsFile), settings); err != nil {
		return fmt.Errorf("failed to save settings for solver %s: %w", settings.Name, err)
	}
	return nil
}
