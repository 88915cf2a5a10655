// Package testing provides utilities and helpers for testing the solver engine and API.
package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/internal/engine"
	"github.com/gcbaptista/license-plate-game/model"
	"github.com/gcbaptista/license-plate-game/services"
)

// SampleWords is a small dictionary with known answers for GLW, ABC and QZX.
var SampleWords = []string{"GLOW", "HELLO", "GLOWING", "ABC", "XABCY", "AXBXC", "yellow", "GALLOW"}

// CreateTestEngine creates an engine in a temporary directory, closed when the test ends.
func CreateTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.NewEngine(t.TempDir())
	t.Cleanup(eng.Close)
	return eng
}

// WriteDictionary writes words, one per line, to a new file in a temporary directory.
func WriteDictionary(t *testing.T, words ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dictionary.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0600))
	return path
}

// CreateTestSolver creates a solver named solverName over SampleWords with no constraints.
func CreateTestSolver(t *testing.T, eng *engine.Engine, solverName string) config.SolverSettings {
	t.Helper()
	settings := config.SolverSettings{
		Name:           solverName,
		DictionaryPath: WriteDictionary(t, SampleWords...),
	}

	require.NoError(t, eng.CreateSolver(settings), "Failed to create test solver")

	created, err := eng.GetSolverSettings(solverName)
	require.NoError(t, err)
	return created
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      5 * time.Second,
		PollInterval: 10 * time.Millisecond,
		LogProgress:  true,
	}
}

// WaitForJob polls a job until it completes, fails or times out, and returns it.
func WaitForJob(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not finish within %v timeout", jobID, opts.Timeout)
			return nil
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			switch {
			case job.Status.Finished():
				if opts.LogProgress {
					t.Logf("Job %s finished (%s) in %v", jobID, job.Status, job.Duration())
				}
				return job
			case job.Status == model.JobStatusRunning:
				if opts.LogProgress && job.Progress != nil {
					t.Logf("Job %s progress: %d/%d - %s",
						jobID,
						job.Progress.Current,
						job.Progress.Total,
						job.Progress.Message)
				}
			}
		}
	}
}

// WaitForJobCompletion polls a job and fails the test unless it completes successfully.
func WaitForJobCompletion(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()
	job := WaitForJob(t, jobManager, jobID, opts)
	if job.Status == model.JobStatusFailed {
		t.Fatalf("Job %s failed: %s", jobID, job.Error)
	}
	return job
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedSolver string) {
	t.Helper()
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedSolver, job.SolverName, "Job solver name should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}

// SolveTestCase represents a test case for solve operations
type SolveTestCase struct {
	Name        string
	Letters     string
	Constraints config.MatchConstraints
	Expected    model.ResultSet
}

// RunSolveTests applies each case's constraints to solverName and checks the result set.
func RunSolveTests(t *testing.T, eng *engine.Engine, solverName string, tests []SolveTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			settings, err := eng.GetSolverSettings(solverName)
			require.NoError(t, err)
			settings.Constraints = tt.Constraints
			require.NoError(t, eng.UpdateSolverSettings(solverName, settings))

			result, err := eng.Solve(solverName, tt.Letters)
			require.NoError(t, err, "Solve should not fail")
			assert.Equal(t, tt.Expected, result.Words, "Result set should match")
			assert.Equal(t, tt.Expected.HasSolution(), result.HasSolution)
		})
	}
}
