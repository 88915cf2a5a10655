// Package jobs runs background solver operations, such as dictionary reloads, on a
// bounded worker pool and keeps their status for polling.
package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gcbaptista/license-plate-game/internal/errors"
	"github.com/gcbaptista/license-plate-game/internal/logging"
	"github.com/gcbaptista/license-plate-game/model"
)

const (
	cleanupInterval = time.Hour
	jobRetention    = 24 * time.Hour
)

// JobFunc is the work of a job. ctx is cancelled when the manager stops.
type JobFunc func(ctx context.Context, job *model.Job) error

// Manager tracks jobs and runs at most maxWorkers of them at a time.
type Manager struct {
	mu      sync.RWMutex
	jobs    map[string]*model.Job
	slots   chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once
	stopped bool // guarded by mu; no job is counted in running once set
	running sync.WaitGroup
	metrics *JobMetrics
	logger  zerolog.Logger
}

// NewManager creates a manager running up to maxWorkers jobs concurrently (at least one).
func NewManager(maxWorkers int) *Manager {
	maxWorkers = max(maxWorkers, 1)
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		jobs:    make(map[string]*model.Job),
		slots:   make(chan struct{}, maxWorkers),
		ctx:     ctx,
		cancel:  cancel,
		metrics: NewJobMetrics(),
		logger:  logging.GetLogger("jobs"),
	}
}

// Start launches the hourly sweep of finished jobs older than a day.
func (m *Manager) Start() {
	m.logger.Info().Int("max_workers", cap(m.slots)).Msg("Job manager started")
	go m.sweep()
}

// Stop cancels running jobs, waits for them to return and stops the sweep.
// Calling it again is a no-op.
func (m *Manager) Stop() {
	m.once.Do(func() {
		m.mu.Lock()
		m.stopped = true
		m.mu.Unlock()

		m.cancel()
		m.running.Wait()
		m.logger.Info().Msg("Job manager stopped")
	})
}

// CreateJob registers a pending job and returns its ID.
func (m *Manager) CreateJob(jobType model.JobType, solverName string, metadata map[string]string) string {
	job := &model.Job{
		ID:         uuid.NewString(),
		Type:       jobType,
		Status:     model.JobStatusPending,
		SolverName: solverName,
		CreatedAt:  time.Now(),
		Metadata:   metadata,
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	m.metrics.RecordJobCreated(jobType, solverName)
	m.logger.Debug().
		Str("job_id", job.ID).
		Str("type", string(jobType)).
		Str("solver", solverName).
		Msg("Job created")
	return job.ID
}

// GetJob returns a snapshot of the job with jobID.
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return snapshot(job), nil
}

// ListJobs returns snapshots of the jobs of solverName, oldest first. A non-nil
// status keeps only jobs in that status.
func (m *Manager) ListJobs(solverName string, status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	found := make([]*model.Job, 0)
	for _, job := range m.jobs {
		if job.SolverName != solverName || (status != nil && job.Status != *status) {
			continue
		}
		found = append(found, snapshot(job))
	}
	m.mu.RUnlock()

	sort.Slice(found, func(i, j int) bool {
		return found[i].CreatedAt.Before(found[j].CreatedAt)
	})
	return found
}

func snapshot(job *model.Job) *model.Job {
	c := *job
	if job.Progress != nil {
		p := *job.Progress
		c.Progress = &p
	}
	return &c
}

// ExecuteJob runs fn for a pending job once a worker slot is free. It blocks only
// until the slot is taken; fn then runs in its own goroutine. If the manager stops
// first the job is marked cancelled.
func (m *Manager) ExecuteJob(jobID string, fn JobFunc) error {
	m.mu.RLock()
	job, ok := m.jobs[jobID]
	var pending *model.Job
	var status model.JobStatus
	if ok {
		status = job.Status
		pending = snapshot(job)
	}
	m.mu.RUnlock()

	switch {
	case !ok:
		return errors.NewJobNotFoundError(jobID)
	case status != model.JobStatusPending:
		return fmt.Errorf("job '%s' already %s", jobID, status)
	}

	if !m.enter() {
		return m.cancelPending(jobID)
	}
	if !m.acquire() {
		m.running.Done()
		return m.cancelPending(jobID)
	}

	m.transition(jobID, model.JobStatusRunning, "")
	go func() {
		defer m.running.Done()
		defer func() { <-m.slots }()

		start := time.Now()
		err := fn(m.ctx, pending)
		m.finish(jobID, pending.Type, time.Since(start), err)
	}()
	return nil
}

// enter counts a job in running unless Stop has begun. Add happens under mu, before
// Stop can reach Wait.
func (m *Manager) enter() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return false
	}
	m.running.Add(1)
	return true
}

func (m *Manager) cancelPending(jobID string) error {
	m.transition(jobID, model.JobStatusCancelled, "job manager stopped")
	return fmt.Errorf("job manager stopped before job '%s' could run", jobID)
}

// acquire takes a worker slot, or reports false once the manager has stopped.
func (m *Manager) acquire() bool {
	if m.ctx.Err() != nil {
		return false
	}
	select {
	case m.slots <- struct{}{}:
		return true
	case <-m.ctx.Done():
		return false
	}
}

// finish records metrics before the final status so both agree once the status is visible.
func (m *Manager) finish(jobID string, jobType model.JobType, took time.Duration, err error) {
	log := m.logger.With().Str("job_id", jobID).Str("type", string(jobType)).Dur("took", took).Logger()
	if err != nil {
		m.metrics.RecordJobFailed(jobType)
		m.transition(jobID, model.JobStatusFailed, err.Error())
		log.Warn().Err(err).Msg("Job failed")
		return
	}
	m.metrics.RecordJobCompleted(jobType, took)
	m.transition(jobID, model.JobStatusCompleted, "")
	log.Info().Msg("Job completed")
}

// UpdateJobProgress sets the progress of a job. Unknown IDs are ignored.
func (m *Manager) UpdateJobProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if job, ok := m.jobs[jobID]; ok {
		job.Progress = &model.JobProgress{Current: current, Total: total, Message: message}
	}
}

func (m *Manager) transition(jobID string, to model.JobStatus, errMsg string) {
	m.mu.Lock()
	job, ok := m.jobs[jobID]
	if !ok {
		m.mu.Unlock()
		return
	}
	from := job.Status
	job.Status = to
	if errMsg != "" {
		job.Error = errMsg
	}
	now := time.Now()
	switch {
	case to == model.JobStatusRunning:
		job.StartedAt = &now
	case to.Finished():
		job.CompletedAt = &now
	}
	m.mu.Unlock()

	m.metrics.RecordJobStatusChange(from, to)
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.CleanupOldJobs(jobRetention)
		}
	}
}

// CleanupOldJobs drops jobs that finished more than maxAge ago and returns how many.
func (m *Manager) CleanupOldJobs(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	removed := 0
	for id, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, id)
			removed++
		}
	}
	m.mu.Unlock()

	if removed > 0 {
		m.logger.Info().Int("count", removed).Msg("Removed finished jobs")
	}
	return removed
}

// GetMetrics returns a snapshot of job counters.
func (m *Manager) GetMetrics() JobMetricsData {
	return m.metrics.GetMetrics()
}

// GetJobSuccessRate returns the fraction of finished jobs that completed.
func (m *Manager) GetJobSuccessRate() float64 {
	return m.metrics.GetSuccessRate()
}

// GetCurrentWorkload returns the number of pending and running jobs.
func (m *Manager) GetCurrentWorkload() int64 {
	return m.metrics.GetCurrentWorkload()
}
