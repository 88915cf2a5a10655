package model

import (
	"time"

	"github.com/gcbaptista/license-plate-game/config"
)

// SolveEvent records a single solve for analytics tracking
type SolveEvent struct {
	SolveID      string                  `json:"solve_id"`
	SolverName   string                  `json:"solver_name"`
	Letters      string                  `json:"letters"`
	Constraints  config.MatchConstraints `json:"constraints"`
	ResponseTime time.Duration           `json:"response_time"`
	ResultCount  int                     `json:"result_count"` // Matched words, 0 when the result was the sentinel
	Timestamp    time.Time               `json:"timestamp"`
}

// PopularQuery represents aggregated data for frequently solved letter queries
type PopularQuery struct {
	Letters    string `json:"letters"`
	SolveCount int    `json:"solve_count"`
}

// SolverStats represents usage statistics for a specific solver
type SolverStats struct {
	SolverName     string `json:"solver_name"`
	DictionarySize int    `json:"dictionary_size"`
	SolveCount     int    `json:"solve_count"`
}

// ConstraintUsage counts how often each constraint was switched on
type ConstraintUsage struct {
	NoStart      int `json:"no_start"`
	NoEnd        int `json:"no_end"`
	SpaceBetween int `json:"space_between"`
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	TotalSolves      int     `json:"total_solves"`
	NoSolutionSolves int     `json:"no_solution_solves"`
	NoSolutionRate   float64 `json:"no_solution_rate"`
	AvgResponseTime  float64 `json:"avg_response_time_ms"`
	AvgResultCount   float64 `json:"avg_result_count"`
	ActiveSolvers    int     `json:"active_solvers"`

	PopularQueries  []PopularQuery  `json:"popular_queries"`
	SolverUsage     []SolverStats   `json:"solver_usage"`
	ConstraintUsage ConstraintUsage `json:"constraint_usage"`
}
