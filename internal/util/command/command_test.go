package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/test"
	"github/fluxshare/go-fluxshare/internal/util/command"
)

func TestWithServer(t *testing.T) {
	cfg := test.NewTestConfig(test.NewLedgerNode(t), test.NewFaucetNode(t))
	cfg.Logger.PrettyPrintConsole = false

	var testError = errors.New("test error")

	resultErr := command.WithServer(t.Context(), cfg, func(ctx context.Context, s *api.Server) error {
		require.True(t, s.Ready())
		assert.Nil(t, s.DB)

		identifier, err := s.Ledger.ChainIdentifier(ctx)
		require.NoError(t, err)
		assert.Equal(t, test.TestChainIdentifier, identifier)

		return testError
	})

	assert.Equal(t, testError, resultErr)
}

func TestNewSubcommandGroup(t *testing.T) {
	child := command.NewSubcommandGroup("child")
	group := command.NewSubcommandGroup("group", child)

	assert.Equal(t, "group <subcommand>", group.Use)
	require.Len(t, group.Commands(), 1)
	assert.Equal(t, "child", group.Commands()[0].Name())
}
