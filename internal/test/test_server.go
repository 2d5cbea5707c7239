package test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/router"
	"github/fluxshare/go-fluxshare/internal/config"
)

// NewTestConfig returns the default config pointing the ledger and faucet clients to the
// given fake nodes. The database is disabled, the activity log is kept in memory.
func NewTestConfig(ledgerNode *LedgerNode, faucetNode *FaucetNode) config.Server {
	cfg := config.DefaultServiceConfigFromEnv()

	cfg.Database.Enabled = false
	cfg.Ledger.RPCURLs = []string{ledgerNode.URL()}
	cfg.Ledger.RequestTimeout = 5 * time.Second
	cfg.Faucet.BaseURL = faucetNode.URL()
	cfg.Faucet.RequestsPerCall = 1
	cfg.Echo.HideInternalServerErrorDetails = false

	return cfg
}

// WithTestServer runs closure against a fully initialized server backed by a fresh fake
// ledger node and faucet.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, NewTestConfig(NewLedgerNode(t), NewFaucetNode(t)), closure)
}

// WithTestServerNodes is WithTestServer giving the closure access to the fake nodes.
func WithTestServerNodes(t *testing.T, closure func(s *api.Server, ledgerNode *LedgerNode, faucetNode *FaucetNode)) {
	t.Helper()

	ledgerNode := NewLedgerNode(t)
	faucetNode := NewFaucetNode(t)

	WithTestServerConfigurable(t, NewTestConfig(ledgerNode, faucetNode), func(s *api.Server) {
		t.Helper()
		closure(s, ledgerNode, faucetNode)
	})
}

// WithTestServerConfigurable runs closure against a server initialized from config. The
// server uses the mock clock and no database.
func WithTestServerConfigurable(t *testing.T, config config.Server, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServerWithDB(config, nil, t)
	require.NoError(t, err, "Failed to initialize test server")

	router.Init(s)

	closure(s)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		t.Logf("Failed to shutdown test server: %v", errs)
	}
}
