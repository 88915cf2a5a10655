package model

import (
	"time"
)

// JobStatus is the lifecycle state of a background solver job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled" // manager stopped before a worker was free
)

// Finished reports whether a job in this status will not change again.
func (s JobStatus) Finished() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusCancelled
}

// JobType names the background operations a solver supports.
type JobType string

const (
	// JobTypeReloadDictionary re-reads a solver's current dictionary file.
	JobTypeReloadDictionary JobType = "reload_dictionary"
	// JobTypeUpdateSettings applies settings that point the solver at a new dictionary.
	JobTypeUpdateSettings JobType = "update_settings"
)

// Job is a background operation on one solver, polled through GET /jobs/:jobId.
type Job struct {
	ID          string            `json:"id"`
	Type        JobType           `json:"type"`
	Status      JobStatus         `json:"status"`
	SolverName  string            `json:"solver_name"`
	Progress    *JobProgress      `json:"progress,omitempty"`
	Error       string            `json:"error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	StartedAt   *time.Time        `json:"started_at,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"` // e.g. dictionary_path
}

// Duration returns how long the job ran, or 0 if it has not both started and finished.
func (j *Job) Duration() time.Duration {
	if j.StartedAt == nil || j.CompletedAt == nil {
		return 0
	}
	return j.CompletedAt.Sub(*j.StartedAt)
}

// JobProgress reports how far a job has got, in words loaded for dictionary jobs.
type JobProgress struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Message string `json:"message,omitempty"`
}

// GetProgressPercentage returns the progress as a percentage (0-100)
func (jp *JobProgress) GetProgressPercentage() float64 {
	if jp.Total == 0 {
		return 0
	}
	return float64(jp.Current) / float64(jp.Total) * 100
}
