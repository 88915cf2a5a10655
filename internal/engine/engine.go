// Package engine manages named, independent solver instances. Each solver owns its
// settings, which are persisted under the engine's data directory and restored on start.
package engine

import (
	"os"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gcbaptista/license-plate-game/internal/jobs"
	"github.com/gcbaptista/license-plate-game/internal/logging"
	"github.com/gcbaptista/license-plate-game/model"
)

// DefaultWorkers is the job worker count used by NewEngine.
const DefaultWorkers = 2

// Engine manages multiple solvers.
// It implements the services.SolverManager interface.
type Engine struct {
	mu         sync.RWMutex
	solvers    map[string]*SolverInstance
	dataDir    string
	jobManager *jobs.Manager
	logger     zerolog.Logger
}

// NewEngine creates a new solver engine rooted at dataDir.
func NewEngine(dataDir string) *Engine {
	return NewEngineWithWorkers(dataDir, DefaultWorkers)
}

// NewEngineWithWorkers creates an engine whose background jobs run on at most workers goroutines.
func NewEngineWithWorkers(dataDir string, workers int) *Engine {
	jobManager := jobs.NewManager(workers)
	jobManager.Start()

	eng := &Engine{
		solvers:    make(map[string]*SolverInstance),
		dataDir:    dataDir,
		jobManager: jobManager,
		logger:     logging.GetLogger("engine"),
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		eng.logger.Warn().Err(err).Str("data_dir", dataDir).Msg("Could not create data directory, new solvers will not be persisted")
	}
	eng.loadSolversFromDisk()
	return eng
}

// Close stops the job manager after running jobs finish.
func (e *Engine) Close() {
	e.jobManager.Stop()
}

// DataDir returns the directory solver settings are persisted under.
func (e *Engine) DataDir() string {
	return e.dataDir
}

// ListSolvers returns the names of all loaded solvers, sorted.
func (e *Engine) ListSolvers() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.solvers))
	for name := range e.solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetJob retrieves a job by ID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs returns the jobs of a solver, optionally filtered by status.
func (e *Engine) ListJobs(solverName string, status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(solverName, status)
}

// GetJobMetrics returns the job manager's metrics.
func (e *Engine) GetJobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

// GetJobSuccessRate returns the fraction of finished jobs that succeeded.
func (e *Engine) GetJobSuccessRate() float64 {
	return e.jobManager.GetJobSuccessRate()
}

// GetCurrentWorkload returns the number of pending and running jobs.
func (e *Engine) GetCurrentWorkload() int64 {
	return e.jobManager.GetCurrentWorkload()
}
