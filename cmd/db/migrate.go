package db

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/fluxshare/go-fluxshare/internal/activity"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/config"
	"github/fluxshare/go-fluxshare/internal/util"
	"github/fluxshare/go-fluxshare/internal/util/command"
)

var errDatabaseDisabled = errors.New("database is disabled, set DB_ENABLED=true")

func newMigrate() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Executes all migrations which are not yet applied.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.DefaultServiceConfigFromEnv()
			cfg.Database.MigrateOnStart = false

			return command.WithServer(cmd.Context(), cfg, func(ctx context.Context, s *api.Server) error {
				if s.DB == nil {
					return errDatabaseDisabled
				}

				n, err := activity.Migrate(s.DB)
				if err != nil {
					return errors.Wrap(err, "failed to apply migrations")
				}

				util.LogFromContext(ctx).Info().Int("applied", n).Msg("Applied migrations")

				return nil
			})
		},
	}
}
