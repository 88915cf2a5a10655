// Package analytics keeps an in-memory record of recent solves and aggregates it
// into the dashboard served by the API.
package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gcbaptista/license-plate-game/internal/logging"
	"github.com/gcbaptista/license-plate-game/model"
	"github.com/gcbaptista/license-plate-game/services"
)

const (
	maxEventsToKeep   = 10000 // Keep last 10k events for performance
	popularQueryLimit = 5
)

// Service implements analytics tracking and reporting
type Service struct {
	mutex         sync.RWMutex
	events        []model.SolveEvent
	solverManager services.SolverManager
	logger        zerolog.Logger
}

// NewService creates a new analytics service
func NewService(solverManager services.SolverManager) *Service {
	return &Service{
		events:        make([]model.SolveEvent, 0),
		solverManager: solverManager,
		logger:        logging.GetLogger("analytics"),
	}
}

// TrackSolveEvent records a new solve event
func (s *Service) TrackSolveEvent(event model.SolveEvent) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}

	s.logger.Trace().Str("solver", event.SolverName).Str("letters", event.Letters).Msg("Tracked solve")
	return nil
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() (model.AnalyticsDashboard, error) {
	s.mutex.RLock()
	events := make([]model.SolveEvent, len(s.events))
	copy(events, s.events)
	s.mutex.RUnlock()

	dashboard := model.AnalyticsDashboard{
		TotalSolves:     len(events),
		AvgResponseTime: s.calculateAvgResponseTime(events),
		AvgResultCount:  s.calculateAvgResultCount(events),
		ActiveSolvers:   len(s.solverManager.ListSolvers()),
		PopularQueries:  s.getPopularQueries(events),
		SolverUsage:     s.getSolverUsage(events),
		ConstraintUsage: s.getConstraintUsage(events),
	}

	for _, event := range events {
		if event.ResultCount == 0 {
			dashboard.NoSolutionSolves++
		}
	}
	if dashboard.TotalSolves > 0 {
		dashboard.NoSolutionRate = float64(dashboard.NoSolutionSolves) / float64(dashboard.TotalSolves) * 100.0
	}

	return dashboard, nil
}

// calculateAvgResponseTime calculates average response time for events in milliseconds
func (s *Service) calculateAvgResponseTime(events []model.SolveEvent) float64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	avg := total / time.Duration(len(events))
	return float64(avg.Microseconds()) / 1000.0
}

func (s *Service) calculateAvgResultCount(events []model.SolveEvent) float64 {
	if len(events) == 0 {
		return 0
	}

	total := 0
	for _, event := range events {
		total += event.ResultCount
	}
	return float64(total) / float64(len(events))
}

// getPopularQueries returns the most frequently solved letter queries
func (s *Service) getPopularQueries(events []model.SolveEvent) []model.PopularQuery {
	queryCounts := make(map[string]int)
	for _, event := range events {
		if event.Letters != "" {
			queryCounts[event.Letters]++
		}
	}

	popular := make([]model.PopularQuery, 0, len(queryCounts))
	for letters, count := range queryCounts {
		popular = append(popular, model.PopularQuery{Letters: letters, SolveCount: count})
	}

	// Sort by count descending, then alphabetically for a stable order
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].SolveCount != popular[j].SolveCount {
			return popular[i].SolveCount > popular[j].SolveCount
		}
		return popular[i].Letters < popular[j].Letters
	})

	if len(popular) > popularQueryLimit {
		popular = popular[:popularQueryLimit]
	}
	return popular
}

// getSolverUsage returns usage statistics for each solver
func (s *Service) getSolverUsage(events []model.SolveEvent) []model.SolverStats {
	solveCounts := make(map[string]int)
	for _, event := range events {
		solveCounts[event.SolverName]++
	}

	names := s.solverManager.ListSolvers()
	sort.Strings(names)

	usage := make([]model.SolverStats, 0, len(names))
	for _, name := range names {
		stats := model.SolverStats{
			SolverName: name,
			SolveCount: solveCounts[name],
		}
		if info, err := s.solverManager.DescribeSolver(name); err == nil {
			stats.DictionarySize = info.DictionarySize
		}
		usage = append(usage, stats)
	}
	return usage
}

func (s *Service) getConstraintUsage(events []model.SolveEvent) model.ConstraintUsage {
	usage := model.ConstraintUsage{}
	for _, event := range events {
		if event.Constraints.NoStart {
			usage.NoStart++
		}
		if event.Constraints.NoEnd {
			usage.NoEnd++
		}
		if event.Constraints.SpaceBetween {
			usage.SpaceBetween++
		}
	}
	return usage
}
