package probe

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/config"
	"github/fluxshare/go-fluxshare/internal/util/command"
)

const (
	verboseFlag string = "verbose"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
}

// runProbe initializes a server, runs probe against it and fails if probe reports any error.
func runProbe(cmd *cobra.Command, name string, probe func(ctx context.Context, s *api.Server) []error) error {
	verbose, err := cmd.Flags().GetBool(verboseFlag)
	if err != nil {
		return err
	}

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Database.MigrateOnStart = false

	return command.WithServer(cmd.Context(), cfg, func(ctx context.Context, s *api.Server) error {
		errs := probe(ctx, s)

		if verbose {
			for _, err := range errs {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
		}

		if len(errs) > 0 {
			return fmt.Errorf("%s probe failed with %d error(s)", name, len(errs))
		}

		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "%s probe succeeded\n", name)
		}

		return nil
	})
}
