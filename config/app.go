package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment variables that override the config file.
// PLATEGAME_SOLVER_NO_START=true sets solver.no_start.
const EnvPrefix = "PLATEGAME_"

// AppConfig is the configuration of the plategame binary: the default solver used by
// the CLI and the HTTP server settings.
type AppConfig struct {
	Solver SolverConfig `koanf:"solver" toml:"solver"`
	Server ServerConfig `koanf:"server" toml:"server"`
}

// SolverConfig mirrors SolverSettings for the default solver.
type SolverConfig struct {
	Dictionary   string `koanf:"dictionary" toml:"dictionary"`
	Answers      string `koanf:"answers" toml:"answers"`
	NoStart      bool   `koanf:"no_start" toml:"no_start"`
	NoEnd        bool   `koanf:"no_end" toml:"no_end"`
	SpaceBetween bool   `koanf:"space_between" toml:"space_between"`
}

// ServerConfig holds the settings of `plategame serve`.
type ServerConfig struct {
	Port    string `koanf:"port" toml:"port"`
	DataDir string `koanf:"data_dir" toml:"data_dir"`
	Workers int    `koanf:"workers" toml:"workers"`
	Watch   bool   `koanf:"watch" toml:"watch"`
}

// DefaultAppConfig returns the built-in configuration.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Solver: SolverConfig{
			Dictionary: DefaultDictionaryFile,
			Answers:    DefaultAnswerFile,
		},
		Server: ServerConfig{
			Port:    "8080",
			DataDir: "./solver_data",
			Workers: 2,
		},
	}
}

func defaultsMap() map[string]interface{} {
	d := DefaultAppConfig()
	return map[string]interface{}{
		"solver.dictionary":    d.Solver.Dictionary,
		"solver.answers":       d.Solver.Answers,
		"solver.no_start":      d.Solver.NoStart,
		"solver.no_end":        d.Solver.NoEnd,
		"solver.space_between": d.Solver.SpaceBetween,
		"server.port":          d.Server.Port,
		"server.data_dir":      d.Server.DataDir,
		"server.workers":       d.Server.Workers,
		"server.watch":         d.Server.Watch,
	}
}

// DefaultConfigPath returns the first existing plategame config file in the XDG
// config directories, or "" when there is none.
func DefaultConfigPath() string {
	for _, name := range []string{"plategame/config.toml", "plategame/config.yaml", "plategame/config.yml"} {
		if path, err := xdg.SearchConfigFile(name); err == nil {
			return path
		}
	}
	return ""
}

// LoadAppConfig loads the configuration in order: built-in defaults, the config file at
// path (TOML or YAML by extension, skipped when path is empty), then PLATEGAME_* variables.
func LoadAppConfig(path string) (AppConfig, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return AppConfig{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".toml", "":
			parser = toml.Parser()
		default:
			return AppConfig{}, fmt.Errorf("unsupported config file type %q (use .toml or .yaml)", filepath.Ext(path))
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return AppConfig{}, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	// 3. Environment, PLATEGAME_SERVER_DATA_DIR -> server.data_dir
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return AppConfig{}, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// envKey maps PLATEGAME_SOLVER_NO_START to solver.no_start. Only the first
// underscore after the prefix separates the section from the key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + rest
}

// SolverSettings converts the default solver section into SolverSettings.
func (c AppConfig) SolverSettings(name string) SolverSettings {
	settings := SolverSettings{
		Name:           name,
		DictionaryPath: c.Solver.Dictionary,
		AnswerPath:     c.Solver.Answers,
		Constraints: MatchConstraints{
			NoStart:      c.Solver.NoStart,
			NoEnd:        c.Solver.NoEnd,
			SpaceBetween: c.Solver.SpaceBetween,
		},
	}
	settings.ApplyDefaults()
	return settings
}

// MarshalTOML renders the configuration as a TOML document.
func (c AppConfig) MarshalTOML() ([]byte, error) {
	return gotoml.Marshal(c)
}
