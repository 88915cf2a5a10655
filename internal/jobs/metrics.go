package jobs

import (
	"sync"
	"time"

	"github.com/gcbaptista/license-plate-game/model"
)

// recentDurations is how many execution times are kept per job type for TypeMetrics.AverageRecent.
const recentDurations = 100

// TypeMetrics are the counters of one job type.
type TypeMetrics struct {
	Created       int64         `json:"created"`
	Completed     int64         `json:"completed"`
	Failed        int64         `json:"failed"`
	AverageRecent time.Duration `json:"average_recent_ns"` // over the last recentDurations completions
}

// JobMetricsData is a snapshot of the job metrics, safe to copy and serialize.
type JobMetricsData struct {
	JobsCreated          int64                         `json:"jobs_created"`
	JobsCompleted        int64                         `json:"jobs_completed"`
	JobsFailed           int64                         `json:"jobs_failed"`
	TotalExecutionTime   time.Duration                 `json:"total_execution_time_ns"`
	AverageExecutionTime time.Duration                 `json:"average_execution_time_ns"`
	ByType               map[model.JobType]TypeMetrics `json:"by_type"`
	JobsByStatus         map[model.JobStatus]int64     `json:"jobs_by_status"`
	JobsBySolver         map[string]int64              `json:"jobs_by_solver"`
	LastUpdated          time.Time                     `json:"last_updated"`
}

type typeCounters struct {
	created, completed, failed int64
	recent                     []time.Duration
}

func (c *typeCounters) average() time.Duration {
	if len(c.recent) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range c.recent {
		total += d
	}
	return total / time.Duration(len(c.recent))
}

// JobMetrics collects counters for dictionary reload and settings update jobs.
type JobMetrics struct {
	mu          sync.RWMutex
	completed   int64
	failed      int64
	totalTime   time.Duration
	byType      map[model.JobType]*typeCounters
	byStatus    map[model.JobStatus]int64
	bySolver    map[string]int64
	lastUpdated time.Time
}

// NewJobMetrics creates a new metrics collector
func NewJobMetrics() *JobMetrics {
	return &JobMetrics{
		byType:      make(map[model.JobType]*typeCounters),
		byStatus:    make(map[model.JobStatus]int64),
		bySolver:    make(map[string]int64),
		lastUpdated: time.Now(),
	}
}

func (m *JobMetrics) counters(jobType model.JobType) *typeCounters {
	c, ok := m.byType[jobType]
	if !ok {
		c = &typeCounters{}
		m.byType[jobType] = c
	}
	return c
}

// RecordJobCreated counts a new pending job for solverName.
func (m *JobMetrics) RecordJobCreated(jobType model.JobType, solverName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters(jobType).created++
	m.byStatus[model.JobStatusPending]++
	m.bySolver[solverName]++
	m.lastUpdated = time.Now()
}

// RecordJobStatusChange moves one job from oldStatus to newStatus.
func (m *JobMetrics) RecordJobStatusChange(oldStatus, newStatus model.JobStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldStatus != "" && m.byStatus[oldStatus] > 0 {
		m.byStatus[oldStatus]--
	}
	m.byStatus[newStatus]++
	m.lastUpdated = time.Now()
}

// RecordJobCompleted records a successful job and how long it ran.
func (m *JobMetrics) RecordJobCompleted(jobType model.JobType, executionTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.completed++
	m.totalTime += executionTime

	c := m.counters(jobType)
	c.completed++
	c.recent = append(c.recent, executionTime)
	if len(c.recent) > recentDurations {
		c.recent = c.recent[len(c.recent)-recentDurations:]
	}
	m.lastUpdated = time.Now()
}

// RecordJobFailed records a failed job.
func (m *JobMetrics) RecordJobFailed(jobType model.JobType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failed++
	m.counters(jobType).failed++
	m.lastUpdated = time.Now()
}

// GetMetrics returns a snapshot of the current metrics.
func (m *JobMetrics) GetMetrics() JobMetricsData {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data := JobMetricsData{
		JobsCompleted:      m.completed,
		JobsFailed:         m.failed,
		TotalExecutionTime: m.totalTime,
		ByType:             make(map[model.JobType]TypeMetrics, len(m.byType)),
		JobsByStatus:       make(map[model.JobStatus]int64, len(m.byStatus)),
		JobsBySolver:       make(map[string]int64, len(m.bySolver)),
		LastUpdated:        m.lastUpdated,
	}
	if m.completed > 0 {
		data.AverageExecutionTime = m.totalTime / time.Duration(m.completed)
	}
	for jobType, c := range m.byType {
		data.JobsCreated += c.created
		data.ByType[jobType] = TypeMetrics{
			Created:       c.created,
			Completed:     c.completed,
			Failed:        c.failed,
			AverageRecent: c.average(),
		}
	}
	for status, n := range m.byStatus {
		data.JobsByStatus[status] = n
	}
	for solver, n := range m.bySolver {
		data.JobsBySolver[solver] = n
	}
	return data
}

// GetSuccessRate returns the fraction of finished jobs that succeeded, 1.0 before any finished.
func (m *JobMetrics) GetSuccessRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	finished := m.completed + m.failed
	if finished == 0 {
		return 1.0
	}
	return float64(m.completed) / float64(finished)
}

// GetCurrentWorkload returns the number of pending and running jobs.
func (m *JobMetrics) GetCurrentWorkload() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.byStatus[model.JobStatusPending] + m.byStatus[model.JobStatusRunning]
}
