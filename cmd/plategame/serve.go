package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/license-plate-game/api"
	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/internal/engine"
	"github.com/gcbaptista/license-plate-game/internal/watch"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	port    string
	dataDir string
	workers int
	watch   bool
}

func newServeCmd(root *cliOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for named solvers",
		Long: `Run the HTTP API. Solvers are kept under the data directory, one
subdirectory per solver, and are reloaded from there on start.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			applyServeFlags(cmd, opts, &cfg.Server)
			return runServer(cmd.Context(), cfg.Server, root.verbosity)
		},
	}

	cmd.Flags().StringVar(&opts.port, "port", "8080", "Port to run the server on")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "./solver_data", "Directory to store solver data")
	cmd.Flags().IntVar(&opts.workers, "workers", engine.DefaultWorkers, "Background job workers")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload dictionaries when their files change")

	return cmd
}

func applyServeFlags(cmd *cobra.Command, opts *serveOptions, server *config.ServerConfig) {
	flags := cmd.Flags()
	if flags.Changed("port") {
		server.Port = opts.port
	}
	if flags.Changed("data-dir") {
		server.DataDir = opts.dataDir
	}
	if flags.Changed("workers") {
		server.Workers = opts.workers
	}
	if flags.Changed("watch") {
		server.Watch = opts.watch
	}
}

func runServer(ctx context.Context, server config.ServerConfig, verbosity int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("data_dir", server.DataDir).Int("workers", server.Workers).Msg("Starting solver engine")
	eng := engine.NewEngineWithWorkers(server.DataDir, server.Workers)
	defer eng.Close()

	if verbosity < 2 {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	apiHandler := api.SetupRoutes(router, eng)

	if server.Watch {
		watcher, err := startWatcher(ctx, eng)
		if err != nil {
			return err
		}
		defer watcher.Close()
		apiHandler.SetWatcher(watcher)
	}

	srv := &http.Server{
		Addr:              ":" + server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", server.Port).Msg("Starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// startWatcher watches the dictionary of every solver loaded from disk. Solvers created
// later are registered by the API.
func startWatcher(ctx context.Context, eng *engine.Engine) (*watch.Watcher, error) {
	watcher, err := watch.New(eng, watch.DefaultDebounce)
	if err != nil {
		return nil, err
	}

	for _, name := range eng.ListSolvers() {
		settings, err := eng.GetSolverSettings(name)
		if err != nil {
			continue
		}
		if err := watcher.Add(name, settings.DictionaryPath); err != nil {
			log.Warn().Err(err).Str("solver", name).Msg("Failed to watch dictionary")
		}
	}

	go func() {
		if err := watcher.Run(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msg("Dictionary watcher stopped")
		}
	}()
	return watcher, nil
}
