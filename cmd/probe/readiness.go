package probe

import (
	"context"

	"github.com/spf13/cobra"
	"github/fluxshare/go-fluxshare/internal/api"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes",
		Long: `Checks that the database, if enabled, answers a ping.
Exits with a non-zero code if any check fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProbe(cmd, "readiness", func(ctx context.Context, s *api.Server) []error {
				return s.ProbeReadiness(ctx)
			})
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}
