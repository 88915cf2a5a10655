package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/license-plate-game/model"
)

func TestJobMetrics_Snapshot(t *testing.T) {
	m := NewJobMetrics()

	m.RecordJobCreated(model.JobTypeReloadDictionary, "scrabble")
	m.RecordJobCreated(model.JobTypeReloadDictionary, "scrabble")
	m.RecordJobCreated(model.JobTypeUpdateSettings, "enable")

	m.RecordJobStatusChange(model.JobStatusPending, model.JobStatusRunning)
	m.RecordJobCompleted(model.JobTypeReloadDictionary, 10*time.Millisecond)
	m.RecordJobStatusChange(model.JobStatusRunning, model.JobStatusCompleted)

	m.RecordJobStatusChange(model.JobStatusPending, model.JobStatusRunning)
	m.RecordJobCompleted(model.JobTypeReloadDictionary, 30*time.Millisecond)
	m.RecordJobStatusChange(model.JobStatusRunning, model.JobStatusCompleted)

	m.RecordJobStatusChange(model.JobStatusPending, model.JobStatusRunning)
	m.RecordJobFailed(model.JobTypeUpdateSettings)
	m.RecordJobStatusChange(model.JobStatusRunning, model.JobStatusFailed)

	data := m.GetMetrics()

	assert.Equal(t, int64(3), data.JobsCreated)
	assert.Equal(t, int64(2), data.JobsCompleted)
	assert.Equal(t, int64(1), data.JobsFailed)
	assert.Equal(t, 20*time.Millisecond, data.AverageExecutionTime)
	assert.Equal(t, TypeMetrics{Created: 2, Completed: 2, AverageRecent: 20 * time.Millisecond}, data.ByType[model.JobTypeReloadDictionary])
	assert.Equal(t, TypeMetrics{Created: 1, Failed: 1}, data.ByType[model.JobTypeUpdateSettings])
	assert.Equal(t, map[string]int64{"scrabble": 2, "enable": 1}, data.JobsBySolver)
	assert.Equal(t, int64(2), data.JobsByStatus[model.JobStatusCompleted])
	assert.Equal(t, int64(0), data.JobsByStatus[model.JobStatusPending])

	assert.InDelta(t, 2.0/3.0, m.GetSuccessRate(), 0.0001)
	assert.Equal(t, int64(0), m.GetCurrentWorkload())
}

func TestJobMetrics_Empty(t *testing.T) {
	m := NewJobMetrics()

	assert.Equal(t, 1.0, m.GetSuccessRate())
	assert.Equal(t, time.Duration(0), m.GetMetrics().AverageExecutionTime)
}

func TestJobMetrics_RecentDurationsAreBounded(t *testing.T) {
	m := NewJobMetrics()
	for i := 0; i < recentDurations; i++ {
		m.RecordJobCompleted(model.JobTypeReloadDictionary, time.Second)
	}
	for i := 0; i < recentDurations; i++ {
		m.RecordJobCompleted(model.JobTypeReloadDictionary, time.Millisecond)
	}

	stats := m.GetMetrics().ByType[model.JobTypeReloadDictionary]
	assert.Equal(t, time.Millisecond, stats.AverageRecent, "Only the latest completions count")
	assert.Equal(t, int64(2*recentDurations), stats.Completed)
}
