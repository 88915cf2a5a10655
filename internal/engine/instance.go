package engine

import (
	"time"

	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/internal/solver"
	"github.com/gcbaptista/license-plate-game/services"
)

// SolverInstance is a solver owned by the engine.
// It implements the services.Solver interface.
type SolverInstance struct {
	*solver.Solver
	CreatedAt time.Time
}

// NewSolverInstance creates a solver from settings. A dictionary that cannot be read
// leaves the instance with an empty dictionary; see Info().LoadError.
func NewSolverInstance(settings config.SolverSettings) *SolverInstance {
	return &SolverInstance{
		Solver:    solver.NewWithSettings(settings),
		CreatedAt: time.Now(),
	}
}

// Info summarizes the instance for listings.
func (i *SolverInstance) Info() services.SolverInfo {
	settings := i.Settings()
	info := services.SolverInfo{
		Name:           settings.Name,
		DictionaryPath: settings.DictionaryPath,
		AnswerPath:     settings.AnswerPath,
		DictionarySize: i.DictionarySize(),
		Constraints:    settings.Constraints,
	}
	if err := i.LoadError(); err != nil {
		info.LoadError = err.Error()
	}
	return info
}
