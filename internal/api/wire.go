//go:build wireinject

package api

import (
	"database/sql"
	"testing"

	"github.com/google/wire"
	"github/fluxshare/go-fluxshare/internal/config"
	"github/fluxshare/go-fluxshare/internal/faucet"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/splitter"
	"github/fluxshare/go-fluxshare/internal/subscription"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewI18N,
	NewClock,
	NewMetrics,
	NewActivityStore,
	NewRebalancer,
	NewSessionStore,
	NewSubscriptionService,
	splitter.NewService,
	ledgerServiceSet,
	faucetServiceSet,
)

var ledgerServiceSet = wire.NewSet(
	NewLedgerClient,
	wire.Bind(new(LedgerService), new(*ledger.Client)),
	wire.Bind(new(splitter.TransactionBuilder), new(*ledger.Client)),
	wire.Bind(new(subscription.Ledger), new(*ledger.Client)),
)

var faucetServiceSet = wire.NewSet(
	NewFaucetClient,
	wire.Bind(new(FaucetService), new(*faucet.Client)),
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewDB, NoTest)
	return new(Server), nil
}

// InitNewServerWithDB returns a new Server instance with the given DB instance, which may be nil.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithDB(
	_ config.Server,
	_ *sql.DB,
	t ...*testing.T,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
