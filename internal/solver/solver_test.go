package solver

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/internal/errors"
	"github.com/gcbaptista/license-plate-game/internal/pattern"
	"github.com/gcbaptista/license-plate-game/internal/persistence"
	"github.com/gcbaptista/license-plate-game/model"
	"github.com/gcbaptista/license-plate-game/store"
)

// newTestSolver writes words to a temporary dictionary and returns a solver
// whose answers go to the same temporary directory.
func newTestSolver(t *testing.T, words ...string) *Solver {
	t.Helper()
	dir := t.TempDir()
	dictPath := filepath.Join(dir, "dictionary.txt")
	require.NoError(t, os.WriteFile(dictPath, []byte(strings.Join(words, "\n")+"\n"), 0600))

	return NewWithSettings(config.SolverSettings{
		Name:           "test",
		DictionaryPath: dictPath,
		AnswerPath:     filepath.Join(dir, "answers.txt"),
	})
}

func TestSolve_GLW(t *testing.T) {
	s := newTestSolver(t, "GLOW", "HELLO")

	results, err := s.Solve("glw")
	require.NoError(t, err)

	assert.True(t, results.Contains("GLOW"))
	assert.False(t, results.Contains("HELLO"))
	assert.True(t, results.HasSolution())
}

func TestSolve_PreservesDictionaryOrder(t *testing.T) {
	s := newTestSolver(t, "yellow", "GLOW", "HELLO", "glowing", "GLOW", "bugle")

	results, err := s.Solve("GLW")
	require.NoError(t, err)

	assert.Equal(t, model.ResultSet{"GLOW", "glowing", "GLOW"}, results)
}

func TestSolve_ShortQueryWritesNothing(t *testing.T) {
	s := newTestSolver(t, "ABC")

	results, err := s.Solve("ab")
	require.Error(t, err)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, errors.ErrInvalidQuery)

	var queryErr *errors.InvalidQueryError
	require.True(t, stderrors.As(err, &queryErr))
	assert.Equal(t, "ab", queryErr.Letters)

	_, statErr := os.Stat(s.AnswerFile())
	assert.True(t, os.IsNotExist(statErr), "answer file must not be created for an invalid query")
}

func TestSolve_NonLetterQuery(t *testing.T) {
	s := newTestSolver(t, "ABC")

	for _, letters := range []string{"A1C", "A.C", "AB ", "[a]"} {
		_, err := s.Solve(letters)
		assert.ErrorIs(t, err, errors.ErrInvalidQuery, "query %q", letters)
	}
}

func TestSolve_NoSolution(t *testing.T) {
	t.Run("non-matching dictionary", func(t *testing.T) {
		s := newTestSolver(t, "HELLO", "WORLD")

		results, err := s.Solve("qqq")
		require.NoError(t, err)
		assert.Equal(t, model.ResultSet{model.NoSolution}, results)
		assert.False(t, results.HasSolution())
		assert.Empty(t, results.Words())
	})

	t.Run("empty dictionary", func(t *testing.T) {
		s := newTestSolver(t)

		results, err := s.Solve("abc")
		require.NoError(t, err)
		assert.Equal(t, model.ResultSet{model.NoSolution}, results)

		lines, err := persistence.ReadLines(s.AnswerFile())
		require.NoError(t, err)
		assert.Equal(t, []string{model.NoSolution}, lines, "the sentinel is written too")
	})
}

func TestSolve_Constraints(t *testing.T) {
	words := []string{"ABCD", "XABCD", "XABC", "AXBXC", "XAXBXCX"}

	tests := []struct {
		name        string
		constraints config.MatchConstraints
		want        model.ResultSet
	}{
		{"none", config.MatchConstraints{}, model.ResultSet{"ABCD", "XABCD", "XABC", "AXBXC", "XAXBXCX"}},
		{"no start", config.MatchConstraints{NoStart: true}, model.ResultSet{"XABCD", "XABC", "XAXBXCX"}},
		{"no end", config.MatchConstraints{NoEnd: true}, model.ResultSet{"ABCD", "XABCD", "XAXBXCX"}},
		{"space between", config.MatchConstraints{SpaceBetween: true}, model.ResultSet{"AXBXC", "XAXBXCX"}},
		{"all", config.MatchConstraints{NoStart: true, NoEnd: true, SpaceBetween: true}, model.ResultSet{"XAXBXCX"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSolver(t, words...)
			s.SetConstraints(tt.constraints)

			results, err := s.Solve("abc")
			require.NoError(t, err)
			assert.Equal(t, tt.want, results)
		})
	}
}

func TestSolve_RepeatedLetters(t *testing.T) {
	s := newTestSolver(t, "BANANA", "ALPACA", "CAB", "AAB")

	results, err := s.Solve("AAB")
	require.NoError(t, err)
	assert.Equal(t, model.ResultSet{"AAB"}, results, "each repeated letter needs its own occurrence")

	results, err = s.Solve("ANA")
	require.NoError(t, err)
	assert.Equal(t, model.ResultSet{"BANANA"}, results)
}

func TestSolve_AnswerFileRoundTrip(t *testing.T) {
	s := newTestSolver(t, "GLOW", "GLOWING", "HELLO", "GALLOW")

	results, err := s.Solve("glw")
	require.NoError(t, err)

	lines, err := persistence.ReadLines(s.AnswerFile())
	require.NoError(t, err)
	assert.Equal(t, []string(results), lines)

	raw, err := os.ReadFile(s.AnswerFile())
	require.NoError(t, err)
	assert.Equal(t, "GLOW\nGLOWING\nGALLOW\n", string(raw))
}

func TestSolve_OverwritesAnswerFile(t *testing.T) {
	s := newTestSolver(t, "GLOW", "GLOWING", "HELLO")

	_, err := s.Solve("glw")
	require.NoError(t, err)
	_, err = s.Solve("hlo")
	require.NoError(t, err)

	lines, err := persistence.ReadLines(s.AnswerFile())
	require.NoError(t, err)
	assert.Equal(t, []string{"HELLO"}, lines)
}

func TestSolve_OutputWriteFailureKeepsResults(t *testing.T) {
	s := newTestSolver(t, "GLOW")
	s.SetAnswerFile(filepath.Join(t.TempDir(), "missing", "answers.txt"))

	results, err := s.Solve("glw")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrOutputWrite)
	assert.Equal(t, model.ResultSet{"GLOW"}, results)
}

func TestNewWithDictionary_MissingFile(t *testing.T) {
	s := NewWithDictionary(filepath.Join(t.TempDir(), "nope.txt"))

	assert.Equal(t, 0, s.DictionarySize())
	assert.ErrorIs(t, s.LoadError(), errors.ErrDictionaryLoad)
	assert.Equal(t, config.DefaultAnswerFile, s.AnswerFile())
}

func TestNew_Defaults(t *testing.T) {
	s := New()

	assert.Equal(t, config.DefaultDictionaryFile, s.DictionaryFile())
	assert.Equal(t, config.DefaultAnswerFile, s.AnswerFile())
	assert.False(t, s.NoStart())
	assert.False(t, s.NoEnd())
	assert.False(t, s.SpaceBetween())
}

func TestNewWithSettings_HonoursAnswerPath(t *testing.T) {
	dir := t.TempDir()
	answers := filepath.Join(dir, "custom.txt")

	s := NewWithSettings(config.SolverSettings{
		Name:           "custom",
		DictionaryPath: filepath.Join(dir, "none.txt"),
		AnswerPath:     answers,
		Constraints:    config.MatchConstraints{NoEnd: true},
	})

	assert.Equal(t, answers, s.AnswerFile())
	assert.True(t, s.NoEnd())
}

func TestSetDictionary_Reloads(t *testing.T) {
	s := newTestSolver(t, "GLOW")

	other := filepath.Join(t.TempDir(), "other.txt")
	require.NoError(t, os.WriteFile(other, []byte("ALPHA BETA\tGAMMA\n\nDELTA"), 0600))

	require.NoError(t, s.SetDictionary(other))
	assert.Equal(t, other, s.DictionaryFile())
	assert.Equal(t, []string{"ALPHA", "BETA", "GAMMA", "DELTA"}, s.Dictionary())

	err := s.SetDictionary(filepath.Join(t.TempDir(), "gone.txt"))
	assert.ErrorIs(t, err, errors.ErrDictionaryLoad)
	assert.Equal(t, 0, s.DictionarySize())
}

func TestReload_PicksUpChanges(t *testing.T) {
	s := newTestSolver(t, "GLOW")
	require.NoError(t, os.WriteFile(s.DictionaryFile(), []byte("GLOW GLOWWORM"), 0600))

	assert.Equal(t, 1, s.DictionarySize(), "dictionary is only read on load")
	require.NoError(t, s.Reload())
	assert.Equal(t, 2, s.DictionarySize())
}

func TestSetters(t *testing.T) {
	s := newTestSolver(t, "ABC")

	s.SetNoStart(true)
	s.SetNoEnd(true)
	s.SetSpaceBetween(true)
	assert.Equal(t, config.MatchConstraints{NoStart: true, NoEnd: true, SpaceBetween: true}, s.Constraints())

	s.SetNoEnd(false)
	assert.True(t, s.NoStart())
	assert.False(t, s.NoEnd())
	assert.True(t, s.SpaceBetween())

	s.Rename("renamed")
	assert.Equal(t, "renamed", s.Settings().Name)
}

func TestSetConstraints_DoesNotAffectEarlierResults(t *testing.T) {
	s := newTestSolver(t, "ABC", "XABCX")

	before, err := s.Solve("abc")
	require.NoError(t, err)

	s.SetConstraints(config.MatchConstraints{NoStart: true, NoEnd: true})
	after, err := s.Solve("abc")
	require.NoError(t, err)

	assert.Equal(t, model.ResultSet{"ABC", "XABCX"}, before)
	assert.Equal(t, model.ResultSet{"XABCX"}, after)
}

func TestPattern(t *testing.T) {
	s := newTestSolver(t)
	s.SetSpaceBetween(true)

	text, err := s.Pattern("glw")
	require.NoError(t, err)
	assert.Equal(t, "^[a-zA-Z]*[gG][a-zA-Z]+[lL][a-zA-Z]+[wW][a-zA-Z]*$", text)

	_, err = s.Pattern("gl")
	assert.ErrorIs(t, err, errors.ErrInvalidQuery)
}

func TestSolveDetailed(t *testing.T) {
	s := newTestSolver(t, "GLOW", "HELLO")

	outcome, err := s.SolveDetailed("glw")
	require.NoError(t, err)

	assert.Equal(t, "GLW", outcome.Letters)
	assert.Equal(t, "^[a-zA-Z]*[gG][a-zA-Z]*[lL][a-zA-Z]*[wW][a-zA-Z]*$", outcome.Pattern)
	assert.Equal(t, 1, outcome.Matched)
	assert.Equal(t, 2, outcome.Scanned)
	assert.Equal(t, model.ResultSet{"GLOW"}, outcome.Results)
}

func TestWriteAnswers(t *testing.T) {
	s := newTestSolver(t)
	answers := []string{"answer1", "answer2", "answer3"}

	require.NoError(t, s.WriteAnswers(answers))

	lines, err := persistence.ReadLines(s.AnswerFile())
	require.NoError(t, err)
	assert.Equal(t, answers, lines)
}

func TestMatch(t *testing.T) {
	rule, err := pattern.Build("ABC", config.MatchConstraints{})
	require.NoError(t, err)

	dict := store.NewDictionary("inline", []string{"XABCY", "ACB", "abc"})
	assert.Equal(t, []string{"XABCY", "abc"}, Match(rule, dict))
	assert.Empty(t, Match(rule, store.EmptyDictionary("none")))
}

func TestSolve_ConcurrentWithSetters(t *testing.T) {
	s := newTestSolver(t, "GLOW", "XGLOWX", "HELLO")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			results, err := s.Solve("glw")
			assert.NoError(t, err)
			assert.True(t, results.Contains("XGLOWX"))
		}()
		go func(i int) {
			defer wg.Done()
			s.SetNoStart(i%2 == 0)
		}(i)
	}
	wg.Wait()
}
