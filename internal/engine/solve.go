package engine

import (
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/gcbaptista/license-plate-game/internal/errors"
	"github.com/gcbaptista/license-plate-game/services"
)

// Solve runs a letter query against the named solver.
//
// An invalid query or unknown solver returns an error and an empty result. When the
// answer file cannot be written the returned result is complete, WriteError is set and
// the *errors.OutputWriteError is returned alongside it.
func (e *Engine) Solve(name, letters string) (services.SolveResult, error) {
	instance, err := e.getInstance(name)
	if err != nil {
		return services.SolveResult{}, err
	}

	outcome, err := instance.SolveDetailed(letters)
	if outcome == nil {
		return services.SolveResult{}, err
	}

	result := services.SolveResult{
		SolveID:     uuid.New().String(),
		SolverName:  name,
		Letters:     outcome.Letters,
		Pattern:     outcome.Pattern,
		Constraints: outcome.Constraints,
		Words:       outcome.Results,
		HasSolution: outcome.Results.HasSolution(),
		Total:       outcome.Matched,
		Took:        outcome.Took.Milliseconds(),
	}

	if err != nil {
		if stderrors.Is(err, errors.ErrOutputWrite) {
			result.WriteError = err.Error()
		}
		return result, err
	}
	return result, nil
}
