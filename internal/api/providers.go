package api

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dlmiddlecote/sqlstats"
	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github/fluxshare/go-fluxshare/internal/activity"
	"github/fluxshare/go-fluxshare/internal/config"
	"github/fluxshare/go-fluxshare/internal/faucet"
	"github/fluxshare/go-fluxshare/internal/i18n"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/metrics"
	"github/fluxshare/go-fluxshare/internal/splitter"
	"github/fluxshare/go-fluxshare/internal/splitter/shares"
	"github/fluxshare/go-fluxshare/internal/subscription"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirement for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

// NewDB returns nil when the database is disabled; the activity log falls back to memory then.
func NewDB(cfg config.Server, m *metrics.Service) (*sql.DB, error) {
	if !cfg.Database.Enabled {
		return nil, nil
	}

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := m.Registerer().Register(sqlstats.NewStatsCollector(cfg.Database.Database, db)); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, errors.Wrap(err, "failed to register database stats collector")
		}
	}

	if cfg.Database.MigrateOnStart {
		n, err := activity.Migrate(db)
		if err != nil {
			return nil, err
		}
		log.Info().Int("applied", n).Msg("Applied database migrations")
	}

	return db, nil
}

func NewI18N(cfg config.Server) (*i18n.Service, error) {
	return i18n.New(cfg.I18n)
}

// NoTest is used by wire for the non-test injectors.
func NoTest() []*testing.T {
	return nil
}

// NewClock returns a mock clock frozen at a fixed date for tests and the system clock otherwise.
func NewClock(t ...*testing.T) time2.Clock {
	var clock time2.Clock

	useMock := len(t) > 0 && t[0] != nil

	if !useMock {
		clock = time2.DefaultClock
		log.Debug().Msg("Using system clock")
	} else {
		mockTime := time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)
		clock = time2.NewMockClock(mockTime)
		log.Debug().Time("mockTime", mockTime).Msg("Using mock clock")
	}

	return clock
}

func NewMetrics() (*metrics.Service, error) {
	return metrics.New()
}

func NewLedgerClient(cfg config.Server, m *metrics.Service) (*ledger.Client, error) {
	return ledger.NewClient(context.Background(), cfg.Ledger, m)
}

func NewFaucetClient(cfg config.Server) (*faucet.Client, error) {
	return faucet.NewClient(cfg.Faucet)
}

//nolint:ireturn // the store implementation depends on the configuration
func NewActivityStore(db *sql.DB, clock time2.Clock) activity.Store {
	if db == nil {
		log.Info().Msg("Database disabled, keeping activity log in memory")
		return activity.NewMemoryStore(clock)
	}

	return activity.NewPostgresStore(db)
}

func NewRebalancer(cfg config.Server) (*shares.Rebalancer, error) {
	return shares.NewRebalancer(shares.Config{
		MinimumRecipients: cfg.Splitter.MinimumRecipients,
		TotalTolerance:    cfg.Splitter.TotalTolerance,
		MaxRecipients:     cfg.Splitter.MaxRecipients,
	})
}

func NewSessionStore(cfg config.Server, rebalancer *shares.Rebalancer, clock time2.Clock, m *metrics.Service) *splitter.Store {
	return splitter.NewStore(rebalancer, clock, cfg.Splitter.SessionTTL, m)
}

func NewSubscriptionService(cfg config.Server, l subscription.Ledger, store activity.Store, clock time2.Clock) *subscription.Service {
	return subscription.NewService(l, store, clock, cfg.Subscription.GracePeriod)
}
