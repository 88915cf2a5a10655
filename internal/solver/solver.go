// Package solver implements the license plate game solver: it holds a dictionary and
// a set of match constraints, finds every word containing a letter query in order, and
// writes each result set to its answer file.
package solver

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/internal/errors"
	"github.com/gcbaptista/license-plate-game/internal/logging"
	"github.com/gcbaptista/license-plate-game/internal/pattern"
	"github.com/gcbaptista/license-plate-game/internal/persistence"
	"github.com/gcbaptista/license-plate-game/model"
	"github.com/gcbaptista/license-plate-game/store"
)

// Outcome is a result set together with how it was produced.
type Outcome struct {
	Letters     string                  `json:"letters"`
	Pattern     string                  `json:"pattern"`
	Constraints config.MatchConstraints `json:"constraints"`
	Results     model.ResultSet         `json:"results"`
	Matched     int                     `json:"matched"` // Number of real matches; 0 when Results is the sentinel
	Scanned     int                     `json:"scanned"` // Dictionary size at solve time
	Took        time.Duration           `json:"took"`
}

// Solver finds dictionary words for letter queries.
//
// Settings and the dictionary are guarded by mu: Solve holds the read lock for its
// whole run, so setters and reloads wait for in-flight solves and never interleave
// with them. Answer file writes are serialized separately by writeMu.
type Solver struct {
	mu         sync.RWMutex
	writeMu    sync.Mutex
	settings   config.SolverSettings
	dictionary *store.Dictionary
	loadErr    error
	logger     zerolog.Logger
}

// New creates a solver with the default dictionary and answer files and no constraints.
func New() *Solver {
	return NewWithSettings(config.DefaultSettings("default"))
}

// NewWithDictionary creates a solver reading dictPath, with the default answer file
// and no constraints.
func NewWithDictionary(dictPath string) *Solver {
	settings := config.DefaultSettings("default")
	settings.DictionaryPath = dictPath
	return NewWithSettings(settings)
}

// NewWithSettings creates a solver from explicit settings. Empty paths get defaults.
// A dictionary that cannot be read is logged and replaced by an empty one; the
// failure is available from LoadError.
func NewWithSettings(settings config.SolverSettings) *Solver {
	settings.ApplyDefaults()
	s := &Solver{
		settings: settings,
		logger:   logging.GetLogger("solver").With().Str("solver", settings.Name).Logger(),
	}
	s.dictionary, s.loadErr = s.loadDictionary(settings.DictionaryPath)
	return s
}

func (s *Solver) loadDictionary(path string) (*store.Dictionary, error) {
	done := logging.LogOperationStart(s.logger, "load_dictionary")
	defer done()

	dict, err := store.LoadDictionary(path)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Exception while creating dictionary, continuing with an empty one")
		return dict, err
	}
	s.logger.Info().Str("path", path).Int("words", dict.Len()).Msg("Dictionary loaded")
	return dict, nil
}

// Solve returns every dictionary word that contains letters in order under the current
// constraints, in dictionary order, and writes them to the answer file.
//
// Queries shorter than three letters, or with characters other than A-Z, fail with an
// *errors.InvalidQueryError and nothing is written. When no word matches the result is
// the single model.NoSolution entry. If the answer file cannot be written the result is
// still returned, together with an *errors.OutputWriteError.
func (s *Solver) Solve(letters string) (model.ResultSet, error) {
	outcome, err := s.SolveDetailed(letters)
	if outcome == nil {
		return nil, err
	}
	return outcome.Results, err
}

// SolveDetailed is Solve, also reporting the rule text and timing.
func (s *Solver) SolveDetailed(letters string) (*Outcome, error) {
	query, err := model.NewLetterQuery(letters)
	if err != nil {
		s.logger.Info().Str("letters", letters).Err(err).Msg("Rejected query")
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	rule, err := pattern.Build(query.Letters(), s.settings.Constraints)
	if err != nil {
		// Unreachable for a validated query
		return nil, errors.NewInvalidQueryError(letters, err.Error())
	}

	matches := Match(rule, s.dictionary)
	outcome := &Outcome{
		Letters:     query.Letters(),
		Pattern:     rule.String(),
		Constraints: rule.Constraints(),
		Results:     model.NewResultSet(matches),
		Matched:     len(matches),
		Scanned:     s.dictionary.Len(),
		Took:        time.Since(start),
	}

	s.logger.Info().
		Str("letters", outcome.Letters).
		Str("pattern", outcome.Pattern).
		Int("matched", outcome.Matched).
		Int("scanned", outcome.Scanned).
		Dur("took", outcome.Took).
		Msg("Solved")

	if err := s.writeAnswers(s.settings.AnswerPath, outcome.Results); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// Match scans dict in order and returns the words accepted by rule.
func Match(rule *pattern.Rule, dict *store.Dictionary) []string {
	matches := make([]string, 0)
	dict.Each(func(_ int, word string) {
		if rule.Matches(word) {
			matches = append(matches, word)
		}
	})
	return matches
}

// Pattern returns the textual rule letters would be solved with under the current constraints.
func (s *Solver) Pattern(letters string) (string, error) {
	query, err := model.NewLetterQuery(letters)
	if err != nil {
		return "", err
	}
	return pattern.Text(query.Letters(), s.Constraints()), nil
}

// WriteAnswers replaces the contents of the current answer file with answers, one per line.
func (s *Solver) WriteAnswers(answers []string) error {
	return s.writeAnswers(s.AnswerFile(), answers)
}

func (s *Solver) writeAnswers(path string, answers []string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, statErr := os.Stat(path)
	if err := persistence.WriteLines(path, answers); err != nil {
		wrapped := errors.NewOutputWriteError(path, err)
		s.logger.Warn().Err(wrapped).Msg("An error occurred writing answers")
		return wrapped
	}
	if os.IsNotExist(statErr) {
		s.logger.Info().Str("path", path).Msg("Created answer file")
	}
	s.logger.Debug().Str("path", path).Int("lines", len(answers)).Msg("Answers written")
	return nil
}

// SetDictionary points the solver at a new dictionary file and reloads immediately.
// On failure the in-memory dictionary is replaced by an empty one and the error returned.
func (s *Solver) SetDictionary(dictPath string) error {
	dict, err := s.loadDictionary(dictPath)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.DictionaryPath = dictPath
	s.dictionary = dict
	s.loadErr = err
	return err
}

// Reload re-reads the current dictionary file.
func (s *Solver) Reload() error {
	return s.SetDictionary(s.DictionaryFile())
}

// LoadError returns the error from the most recent dictionary load, or nil.
func (s *Solver) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Dictionary returns a copy of the loaded words in dictionary order.
func (s *Solver) Dictionary() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dictionary.Words()
}

// DictionarySize returns the number of loaded words.
func (s *Solver) DictionarySize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dictionary.Len()
}

// Settings returns a copy of the solver's settings.
func (s *Solver) Settings() config.SolverSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Constraints returns the current match constraints.
func (s *Solver) Constraints() config.MatchConstraints {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Constraints
}

// NoStart reports whether the first query letter may not start the word.
func (s *Solver) NoStart() bool { return s.Constraints().NoStart }

// NoEnd reports whether the last query letter may not end the word.
func (s *Solver) NoEnd() bool { return s.Constraints().NoEnd }

// SpaceBetween reports whether consecutive query letters must be separated.
func (s *Solver) SpaceBetween() bool { return s.Constraints().SpaceBetween }

// DictionaryFile returns the current dictionary path.
func (s *Solver) DictionaryFile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.DictionaryPath
}

// AnswerFile returns the current answer path.
func (s *Solver) AnswerFile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.AnswerPath
}

// SetConstraints replaces all three constraints. Result sets already returned are unaffected.
func (s *Solver) SetConstraints(c config.MatchConstraints) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Constraints = c
}

// SetNoStart sets whether the first query letter may start the word.
func (s *Solver) SetNoStart(noStart bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Constraints.NoStart = noStart
}

// SetNoEnd sets whether the last query letter may end the word.
func (s *Solver) SetNoEnd(noEnd bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Constraints.NoEnd = noEnd
}

// SetSpaceBetween sets whether consecutive query letters must be separated.
func (s *Solver) SetSpaceBetween(spaceBetween bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Constraints.SpaceBetween = spaceBetween
}

// SetAnswerFile changes where result sets are written.
func (s *Solver) SetAnswerFile(answerPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.AnswerPath = answerPath
}

// Rename changes the solver's name in its settings.
func (s *Solver) Rename(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Name = name
	s.logger = logging.GetLogger("solver").With().Str("solver", name).Logger()
}
