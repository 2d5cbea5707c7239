package probe

import (
	"context"

	"github.com/spf13/cobra"
	"github/fluxshare/go-fluxshare/internal/api"
)

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs liveness probes",
		Long: `Runs the readiness probes and additionally checks that a ledger node answers.
Exits with a non-zero code if any check fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProbe(cmd, "liveness", func(ctx context.Context, s *api.Server) []error {
				return s.ProbeLiveness(ctx)
			})
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}
