package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/router"
	"github/fluxshare/go-fluxshare/internal/config"
	"github/fluxshare/go-fluxshare/internal/util/command"
	"golang.org/x/sync/errgroup"
)

const (
	migrateFlag     = "migrate"
	shutdownTimeout = 30 * time.Second
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the HTTP server and the background workers.

Requires configuration through ENV and a fully migrated database if DB_ENABLED is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrate, err := cmd.Flags().GetBool(migrateFlag)
			if err != nil {
				return err
			}

			return runServer(cmd.Context(), migrate)
		},
	}

	cmd.Flags().BoolP(migrateFlag, "m", false, "Apply pending database migrations before the server starts.")

	return cmd
}

func runServer(ctx context.Context, migrate bool) error {
	cfg := config.DefaultServiceConfigFromEnv()
	if migrate {
		cfg.Database.MigrateOnStart = true
	}

	command.ConfigureLogger(cfg)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	router.Init(s)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.RunWorkers(gctx)
		<-gctx.Done()
		return nil
	})

	g.Go(func() error {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
			log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		return err
	}

	log.Info().Msg("Server shut down")

	return nil
}
