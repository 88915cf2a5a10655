package api

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/internal/errors"
	"github.com/gcbaptista/license-plate-game/internal/pattern"
	"github.com/gcbaptista/license-plate-game/model"
	"github.com/gcbaptista/license-plate-game/services"
)

// SolveRequest is the body of a solve request
type SolveRequest struct {
	Letters string `json:"letters" binding:"required"`
}

// PatternRequest asks for the rule a query would be matched with
type PatternRequest struct {
	Letters     string                  `json:"letters" binding:"required"`
	Constraints config.MatchConstraints `json:"constraints"`
}

// SolveHandler runs a letter query against a solver.
//
// The answer file is rewritten on every solve. When that write fails the response is
// 500 OUTPUT_WRITE_FAILED and still carries the result.
func (api *API) SolveHandler(c *gin.Context) {
	solverName := c.Param("solverName")

	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	start := time.Now()
	result, err := api.engine.Solve(solverName, req.Letters)
	if err != nil && !stderrors.Is(err, errors.ErrOutputWrite) {
		sendSolverError(c, "solve", solverName, err)
		return
	}

	api.trackSolve(result, time.Since(start))

	if err != nil {
		SendOutputWriteError(c, err, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (api *API) trackSolve(result services.SolveResult, took time.Duration) {
	event := model.SolveEvent{
		SolveID:      result.SolveID,
		SolverName:   result.SolverName,
		Letters:      result.Letters,
		Constraints:  result.Constraints,
		ResponseTime: took,
		ResultCount:  result.Total,
		Timestamp:    time.Now(),
	}
	if err := api.analytics.TrackSolveEvent(event); err != nil {
		api.logger.Warn().Err(err).Str("solve_id", result.SolveID).Msg("Failed to track solve event")
	}
}

// PatternHandler returns the textual rule for letters under the given constraints.
func (api *API) PatternHandler(c *gin.Context) {
	var req PatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	query, err := model.NewLetterQuery(req.Letters)
	if err != nil {
		SendInvalidQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"letters":     query.Letters(),
		"constraints": req.Constraints,
		"pattern":     pattern.Text(query.Letters(), req.Constraints),
	})
}
