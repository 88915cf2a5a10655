// Package config provides configuration structures for the license plate game solver.
// It defines per-solver settings, match constraints and the application configuration.
package config

import (
	"path/filepath"
	"strings"
)

const (
	// DefaultDictionaryFile is the word list a solver reads when none is configured.
	DefaultDictionaryFile = "dictionary.txt"
	// DefaultAnswerFile is where a solver writes its results when none is configured.
	DefaultAnswerFile = "answers.txt"
	// MinQueryLength is the shortest letter query a solver accepts.
	MinQueryLength = 3
)

// MatchConstraints are the three independent switches that tighten a letter query.
// The zero value is the most permissive rule.
type MatchConstraints struct {
	NoStart      bool `json:"no_start" koanf:"no_start" toml:"no_start"`                // First query letter may not be the first letter of the word
	NoEnd        bool `json:"no_end" koanf:"no_end" toml:"no_end"`                      // Last query letter may not be the last letter of the word
	SpaceBetween bool `json:"space_between" koanf:"space_between" toml:"space_between"` // Consecutive query letters may not be adjacent in the word
}

// SolverSettings contains everything a single solver instance owns:
// where its dictionary comes from, where answers go, and how letters are matched.
type SolverSettings struct {
	Name           string           `json:"name"`            // Unique name for the solver
	DictionaryPath string           `json:"dictionary_path"` // Whitespace-separated word list
	AnswerPath     string           `json:"answer_path"`     // File that receives each result set, one word per line
	Constraints    MatchConstraints `json:"constraints"`
}

// DefaultSettings returns settings with the default dictionary and answer files and no constraints.
func DefaultSettings(name string) SolverSettings {
	settings := SolverSettings{Name: name}
	settings.ApplyDefaults()
	return settings
}

// ApplyDefaults fills in empty paths with the defaults.
func (settings *SolverSettings) ApplyDefaults() {
	if strings.TrimSpace(settings.DictionaryPath) == "" {
		settings.DictionaryPath = DefaultDictionaryFile
	}
	if strings.TrimSpace(settings.AnswerPath) == "" {
		settings.AnswerPath = DefaultAnswerFile
	}
}

// Validate checks the settings for basic problems and returns one message per problem.
func (settings *SolverSettings) Validate() []string {
	var problems []string

	if strings.TrimSpace(settings.Name) == "" {
		problems = append(problems, "Solver name cannot be empty or whitespace-only")
	} else if strings.ContainsAny(settings.Name, `/\`) || settings.Name == "." || settings.Name == ".." {
		problems = append(problems, "Solver name '"+settings.Name+"' cannot contain path separators")
	}

	if strings.TrimSpace(settings.DictionaryPath) == "" {
		problems = append(problems, "Dictionary path cannot be empty")
	}
	if strings.TrimSpace(settings.AnswerPath) == "" {
		problems = append(problems, "Answer path cannot be empty")
	}

	// Reading and writing the same file would clobber the word list on the first solve
	if settings.DictionaryPath != "" && settings.AnswerPath != "" &&
		filepath.Clean(settings.DictionaryPath) == filepath.Clean(settings.AnswerPath) {
		problems = append(problems, "Answer path '"+settings.AnswerPath+"' cannot be the dictionary path")
	}

	return problems
}
