package db

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github/fluxshare/go-fluxshare/internal/activity"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/config"
	"github/fluxshare/go-fluxshare/internal/util/command"
)

func newStatus() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Lists all migrations and whether they are applied.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.DefaultServiceConfigFromEnv()
			cfg.Database.MigrateOnStart = false

			return command.WithServer(cmd.Context(), cfg, func(_ context.Context, s *api.Server) error {
				if s.DB == nil {
					return errDatabaseDisabled
				}

				states, err := activity.MigrationStatus(s.DB)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "MIGRATION\tAPPLIED AT")
				for _, state := range states {
					applied := "pending"
					if !state.AppliedAt.IsZero() {
						applied = state.AppliedAt.UTC().Format(time.RFC3339)
					}
					fmt.Fprintf(w, "%s\t%s\n", state.ID, applied)
				}

				return w.Flush()
			})
		},
	}
}
