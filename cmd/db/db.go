package db

import (
	"github.com/spf13/cobra"
	"github/fluxshare/go-fluxshare/internal/util/command"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("db",
		newMigrate(),
		newStatus(),
	)
}
