package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/internal/logging"
	"github.com/gcbaptista/license-plate-game/internal/solver"
)

const (
	usageMessage = "You must provide letters"
	printArg     = "print"
)

// cliOptions are the flags shared by every command.
type cliOptions struct {
	verbosity    int
	configPath   string
	dictionary   string
	answers      string
	noStart      bool
	noEnd        bool
	spaceBetween bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "plategame <letters> [print]",
		Short: "Find dictionary words that contain license plate letters in order",
		Long: `plategame solves the license plate game: given letters such as GLW it finds
every dictionary word containing them in order (GLOW, GALLOW, ...). Results are
written to the answer file, one word per line, and echoed when the second
argument is "print".`,
		// Arguments after [print] are ignored
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, opts, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	flags.StringVar(&opts.configPath, "config", "", "Config file, TOML or YAML (default is $XDG_CONFIG_HOME/plategame/config.toml)")

	solveFlags := rootCmd.Flags()
	solveFlags.StringVar(&opts.dictionary, "dictionary", config.DefaultDictionaryFile, "Whitespace-separated word list")
	solveFlags.StringVar(&opts.answers, "answers", config.DefaultAnswerFile, "File that receives the results")
	solveFlags.BoolVar(&opts.noStart, "no-start", false, "The first letter may not start the word")
	solveFlags.BoolVar(&opts.noEnd, "no-end", false, "The last letter may not end the word")
	solveFlags.BoolVar(&opts.spaceBetween, "space-between", false, "Consecutive letters may not be adjacent")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd())

	return rootCmd
}

// loadConfig reads the config file, then applies any solve flag set on the command line.
func loadConfig(cmd *cobra.Command, opts *cliOptions) (config.AppConfig, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.LoadAppConfig(path)
	if err != nil {
		return config.AppConfig{}, err
	}
	if path != "" {
		log.Info().Str("path", path).Msg("Loaded config file")
	}

	flags := cmd.Flags()
	if flags.Changed("dictionary") {
		cfg.Solver.Dictionary = opts.dictionary
	}
	if flags.Changed("answers") {
		cfg.Solver.Answers = opts.answers
	}
	if flags.Changed("no-start") {
		cfg.Solver.NoStart = opts.noStart
	}
	if flags.Changed("no-end") {
		cfg.Solver.NoEnd = opts.noEnd
	}
	if flags.Changed("space-between") {
		cfg.Solver.SpaceBetween = opts.spaceBetween
	}
	return cfg, nil
}

func runSolve(cmd *cobra.Command, opts *cliOptions, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) < 1 {
		fmt.Fprintln(out, usageMessage)
		return nil
	}
	letters := args[0]
	echo := len(args) >= 2 && args[1] == printArg

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	s := solver.NewWithSettings(cfg.SolverSettings("cli"))
	if loadErr := s.LoadError(); loadErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("Warning: ")+loadErr.Error())
	}

	outcome, err := s.SolveDetailed(letters)
	if outcome == nil {
		return err
	}

	if echo {
		for _, word := range outcome.Results {
			fmt.Fprintln(out, word)
		}
	}
	fmt.Fprintln(out, summaryLine(outcome.Letters, outcome.Matched, s.AnswerFile()))

	if err != nil {
		// Only an answer file failure returns an outcome with an error
		return fmt.Errorf("results were not saved: %w", err)
	}
	return nil
}
