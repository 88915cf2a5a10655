package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/internal/errors"
	"github.com/gcbaptista/license-plate-game/internal/persistence"
	"github.com/gcbaptista/license-plate-game/model"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng := NewEngine(t.TempDir())
	t.Cleanup(eng.Close)
	return eng
}

func writeDictionary(t *testing.T, words ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(words, " ")), 0600))
	return path
}

func waitForJob(t *testing.T, eng *Engine, jobID string) *model.Job {
	t.Helper()
	var job *model.Job
	require.Eventually(t, func() bool {
		current, err := eng.GetJob(jobID)
		if err != nil {
			return false
		}
		job = current
		return job.Status.Finished()
	}, 5*time.Second, 10*time.Millisecond)
	return job
}

func TestEngine_CreateSolver(t *testing.T) {
	eng := newTestEngine(t)
	dict := writeDictionary(t, "GLOW", "HELLO")

	err := eng.CreateSolver(config.SolverSettings{Name: "main", DictionaryPath: dict})
	require.NoError(t, err)

	settings, err := eng.GetSolverSettings("main")
	require.NoError(t, err)
	assert.Equal(t, dict, settings.DictionaryPath)
	assert.Equal(t, filepath.Join(eng.DataDir(), "main", "answers.txt"), settings.AnswerPath)

	info, err := eng.DescribeSolver("main")
	require.NoError(t, err)
	assert.Equal(t, 2, info.DictionarySize)
	assert.Empty(t, info.LoadError)

	_, err = os.Stat(filepath.Join(eng.DataDir(), "main", settingsFile))
	assert.NoError(t, err, "settings are persisted")

	err = eng.CreateSolver(config.SolverSettings{Name: "main"})
	assert.ErrorIs(t, err, errors.ErrSolverAlreadyExists)
}

func TestEngine_CreateSolver_Invalid(t *testing.T) {
	eng := newTestEngine(t)

	tests := []struct {
		name     string
		settings config.SolverSettings
	}{
		{"empty name", config.SolverSettings{Name: "  "}},
		{"path in name", config.SolverSettings{Name: "a/b"}},
		{"answers over dictionary", config.SolverSettings{Name: "x", DictionaryPath: "w.txt", AnswerPath: "w.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := eng.CreateSolver(tt.settings)
			assert.ErrorIs(t, err, errors.ErrInvalidInput)
		})
	}
	assert.Empty(t, eng.ListSolvers())
}

func TestEngine_CreateSolver_MissingDictionary(t *testing.T) {
	eng := newTestEngine(t)

	err := eng.CreateSolver(config.SolverSettings{Name: "empty", DictionaryPath: filepath.Join(t.TempDir(), "none.txt")})
	require.NoError(t, err, "a missing dictionary is reported, not fatal")

	info, err := eng.DescribeSolver("empty")
	require.NoError(t, err)
	assert.Equal(t, 0, info.DictionarySize)
	assert.NotEmpty(t, info.LoadError)

	result, err := eng.Solve("empty", "abc")
	require.NoError(t, err)
	assert.Equal(t, model.ResultSet{model.NoSolution}, result.Words)
}

func TestEngine_Solve(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.CreateSolver(config.SolverSettings{
		Name:           "main",
		DictionaryPath: writeDictionary(t, "GLOW", "HELLO", "GLOWING"),
	}))

	result, err := eng.Solve("main", "glw")
	require.NoError(t, err)

	assert.NotEmpty(t, result.SolveID)
	assert.Equal(t, "main", result.SolverName)
	assert.Equal(t, "GLW", result.Letters)
	assert.Equal(t, model.ResultSet{"GLOW", "GLOWING"}, result.Words)
	assert.True(t, result.HasSolution)
	assert.Equal(t, 2, result.Total)
	assert.Empty(t, result.WriteError)

	settings, err := eng.GetSolverSettings("main")
	require.NoError(t, err)
	lines, err := persistence.ReadLines(settings.AnswerPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"GLOW", "GLOWING"}, lines)

	_, err = eng.Solve("main", "gl")
	assert.ErrorIs(t, err, errors.ErrInvalidQuery)

	_, err = eng.Solve("missing", "glw")
	assert.ErrorIs(t, err, errors.ErrSolverNotFound)
}

func TestEngine_Solve_OutputWriteFailure(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.CreateSolver(config.SolverSettings{
		Name:           "main",
		DictionaryPath: writeDictionary(t, "GLOW"),
		AnswerPath:     filepath.Join(t.TempDir(), "no", "such", "dir", "answers.txt"),
	}))

	result, err := eng.Solve("main", "glw")
	assert.ErrorIs(t, err, errors.ErrOutputWrite)
	assert.Equal(t, model.ResultSet{"GLOW"}, result.Words)
	assert.NotEmpty(t, result.WriteError)
}

func TestEngine_SolversAreIndependent(t *testing.T) {
	eng := newTestEngine(t)
	dict := writeDictionary(t, "ABC", "XAXBXCX")

	require.NoError(t, eng.CreateSolver(config.SolverSettings{Name: "loose", DictionaryPath: dict}))
	require.NoError(t, eng.CreateSolver(config.SolverSettings{
		Name:           "strict",
		DictionaryPath: dict,
		Constraints:    config.MatchConstraints{NoStart: true, NoEnd: true, SpaceBetween: true},
	}))

	loose, err := eng.Solve("loose", "abc")
	require.NoError(t, err)
	strict, err := eng.Solve("strict", "abc")
	require.NoError(t, err)

	assert.Equal(t, model.ResultSet{"ABC", "XAXBXCX"}, loose.Words)
	assert.Equal(t, model.ResultSet{"XAXBXCX"}, strict.Words)
	assert.Equal(t, []string{"loose", "strict"}, eng.ListSolvers())
}

func TestEngine_UpdateSolverSettings(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.CreateSolver(config.SolverSettings{
		Name:           "main",
		DictionaryPath: writeDictionary(t, "ABC", "XABCX"),
	}))

	settings, err := eng.GetSolverSettings("main")
	require.NoError(t, err)

	settings.Constraints.NoStart = true
	require.NoError(t, eng.UpdateSolverSettings("main", settings))

	result, err := eng.Solve("main", "abc")
	require.NoError(t, err)
	assert.Equal(t, model.ResultSet{"XABCX"}, result.Words)

	// A new dictionary path reloads immediately
	settings.DictionaryPath = writeDictionary(t, "ZABCZ", "QQQ")
	require.NoError(t, eng.UpdateSolverSettings("main", settings))
	result, err = eng.Solve("main", "abc")
	require.NoError(t, err)
	assert.Equal(t, model.ResultSet{"ZABCZ"}, result.Words)

	settings.Name = "other"
	err = eng.UpdateSolverSettings("main", settings)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	err = eng.UpdateSolverSettings("missing", settings)
	assert.ErrorIs(t, err, errors.ErrSolverNotFound)
}

func TestEngine_RequiresReload(t *testing.T) {
	eng := newTestEngine(t)
	dict := writeDictionary(t, "ABC")
	require.NoError(t, eng.CreateSolver(config.SolverSettings{Name: "main", DictionaryPath: dict}))

	reload, err := eng.RequiresReload("main", config.SolverSettings{DictionaryPath: dict})
	require.NoError(t, err)
	assert.False(t, reload)

	reload, err = eng.RequiresReload("main", config.SolverSettings{DictionaryPath: "other.txt"})
	require.NoError(t, err)
	assert.True(t, reload)
}

func TestEngine_RenameSolver(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.CreateSolver(config.SolverSettings{Name: "old", DictionaryPath: writeDictionary(t, "GLOW")}))
	require.NoError(t, eng.CreateSolver(config.SolverSettings{Name: "taken", DictionaryPath: writeDictionary(t, "GLOW")}))

	assert.ErrorIs(t, eng.RenameSolver("old", "old"), errors.ErrSameName)
	assert.ErrorIs(t, eng.RenameSolver("old", "taken"), errors.ErrSolverAlreadyExists)
	assert.ErrorIs(t, eng.RenameSolver("missing", "new"), errors.ErrSolverNotFound)

	require.NoError(t, eng.RenameSolver("old", "new"))
	assert.Equal(t, []string{"new", "taken"}, eng.ListSolvers())

	settings, err := eng.GetSolverSettings("new")
	require.NoError(t, err)
	assert.Equal(t, "new", settings.Name)
	assert.Equal(t, filepath.Join(eng.DataDir(), "new", "answers.txt"), settings.AnswerPath)

	_, err = os.Stat(filepath.Join(eng.DataDir(), "old"))
	assert.True(t, os.IsNotExist(err), "old directory is removed")

	_, err = eng.Solve("new", "glw")
	assert.NoError(t, err)
}

func TestEngine_DeleteSolver(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.CreateSolver(config.SolverSettings{Name: "gone", DictionaryPath: writeDictionary(t, "GLOW")}))

	require.NoError(t, eng.DeleteSolver("gone"))
	assert.Empty(t, eng.ListSolvers())
	_, err := os.Stat(filepath.Join(eng.DataDir(), "gone"))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, eng.DeleteSolver("gone"), errors.ErrSolverNotFound)
	assert.ErrorIs(t, eng.DeleteSolver(".."), errors.ErrSolverNotFound)
	assert.ErrorIs(t, eng.DeleteSolver(""), errors.ErrSolverNotFound)

	_, err = os.Stat(eng.DataDir())
	assert.NoError(t, err, "data directory survives")
}

func TestEngine_LoadsSolversFromDisk(t *testing.T) {
	dataDir := t.TempDir()
	dict := writeDictionary(t, "GLOW", "HELLO")

	first := NewEngine(dataDir)
	require.NoError(t, first.CreateSolver(config.SolverSettings{
		Name:           "persisted",
		DictionaryPath: dict,
		Constraints:    config.MatchConstraints{NoEnd: true},
	}))
	first.Close()

	// A stray directory without settings and a mismatched one are skipped
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "stray"), 0755))
	require.NoError(t, persistence.SaveGob(
		filepath.Join(dataDir, "mismatch", settingsFile),
		config.SolverSettings{Name: "other", DictionaryPath: dict, AnswerPath: "a.txt"},
	))

	second := NewEngine(dataDir)
	defer second.Close()

	assert.Equal(t, []string{"persisted"}, second.ListSolvers())
	settings, err := second.GetSolverSettings("persisted")
	require.NoError(t, err)
	assert.True(t, settings.Constraints.NoEnd)

	info, err := second.DescribeSolver("persisted")
	require.NoError(t, err)
	assert.Equal(t, 2, info.DictionarySize)
}
