package command

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/config"
)

const shutdownTimeout = 30 * time.Second

// ConfigureLogger applies the logger settings of config to the global zerolog logger.
func ConfigureLogger(config config.Server) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(config.Logger.Level)

	if config.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
		}))
	}

	if config.Logger.LogCaller {
		log.Logger = log.With().Caller().Logger()
	}
}

// WithServer initializes a server from config, runs f against it and shuts it down afterwards.
// The error of f is returned as is.
func WithServer(ctx context.Context, config config.Server, f func(ctx context.Context, s *api.Server) error) error {
	ConfigureLogger(config)

	s, err := api.InitNewServer(config)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	start := time.Now()
	defer func() {
		log.Debug().Dur("duration", time.Since(start)).Msg("Command finished")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
			log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
		}
	}()

	return f(log.Logger.WithContext(ctx), s)
}

// NewSubcommandGroup returns a command only grouping its subcommands. Running it prints its help.
func NewSubcommandGroup(name string, subCommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <subcommand>", name),
		Short: fmt.Sprintf("%s related subcommands", name),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(subCommands...)

	return cmd
}
