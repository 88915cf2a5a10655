package services

import (
	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/model"
)

// SolveResult is the response to a single solve request.
type SolveResult struct {
	SolveID     string                  `json:"solve_id"` // unique UUID for this solve
	SolverName  string                  `json:"solver_name"`
	Letters     string                  `json:"letters"`
	Pattern     string                  `json:"pattern"`
	Constraints config.MatchConstraints `json:"constraints"`
	Words       model.ResultSet         `json:"words"` // Holds the "No Solution" sentinel when nothing matched
	HasSolution bool                    `json:"has_solution"`
	Total       int                     `json:"total"` // Matched words, excluding the sentinel
	Took        int64                   `json:"took"`  // milliseconds
	WriteError  string                  `json:"write_error,omitempty"`
}

// SolverInfo summarizes a solver for listings.
type SolverInfo struct {
	Name           string                  `json:"name"`
	DictionaryPath string                  `json:"dictionary_path"`
	AnswerPath     string                  `json:"answer_path"`
	DictionarySize int                     `json:"dictionary_size"`
	Constraints    config.MatchConstraints `json:"constraints"`
	LoadError      string                  `json:"load_error,omitempty"`
}

// Solver defines the operations on a single named solver
type Solver interface {
	Solve(letters string) (model.ResultSet, error)
	Pattern(letters string) (string, error)
	Settings() config.SolverSettings
	DictionarySize() int
}

// SolverManager manages the lifecycle of solvers
type SolverManager interface {
	CreateSolver(settings config.SolverSettings) error
	GetSolver(name string) (Solver, error)
	GetSolverSettings(name string) (config.SolverSettings, error)
	UpdateSolverSettings(name string, settings config.SolverSettings) error
	RenameSolver(oldName, newName string) error
	DeleteSolver(name string) error
	ListSolvers() []string
	DescribeSolver(name string) (SolverInfo, error)
	Solve(name, letters string) (SolveResult, error)
}

// SolverManagerWithAsyncReload extends SolverManager with background dictionary reloads
type SolverManagerWithAsyncReload interface {
	SolverManager
	ReloadDictionaryAsync(name string) (string, error)                                     // Returns job ID
	UpdateSolverSettingsAsync(name string, settings config.SolverSettings) (string, error) // Returns job ID
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(solverName string, status *model.JobStatus) []*model.Job
}
