package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github/fluxshare/go-fluxshare/internal/activity"
	"github/fluxshare/go-fluxshare/internal/config"
	"github/fluxshare/go-fluxshare/internal/faucet"
	"github/fluxshare/go-fluxshare/internal/i18n"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/metrics"
	"github/fluxshare/go-fluxshare/internal/splitter"
	"github/fluxshare/go-fluxshare/internal/subscription"
	"github/fluxshare/go-fluxshare/internal/util"

	// Import postgres driver for database/sql package
	_ "github.com/lib/pq"
)

// LedgerService is the ledger access the handlers need directly; contract specific flows go
// through the splitter and subscription services.
type LedgerService interface {
	ChainIdentifier(ctx context.Context) (string, error)
	GetBalance(ctx context.Context, owner string) (*ledger.Balance, error)
	Close()
}

// FaucetService requests test tokens.
type FaucetService interface {
	Request(ctx context.Context, address string) (*faucet.Result, error)
}

type Router struct {
	Routes            []*echo.Route
	Root              *echo.Group
	Management        *echo.Group
	APIV1Splitter     *echo.Group
	APIV1Subscription *echo.Group
	APIV1Ledger       *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`
	// -> nil when DB_ENABLED is false, the activity log is kept in memory then
	DB *sql.DB `wire:"-"`

	Config       config.Server
	I18n         *i18n.Service
	Clock        time2.Clock
	Metrics      *metrics.Service
	Ledger       LedgerService
	Faucet       FaucetService
	Activity     activity.Store
	Sessions     *splitter.Store
	Splitter     *splitter.Service
	Subscription *subscription.Service
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	db *sql.DB,
	i18n *i18n.Service,
	clock time2.Clock,
	metrics *metrics.Service,
	ledger LedgerService,
	faucet FaucetService,
	activity activity.Store,
	sessions *splitter.Store,
	splitterService *splitter.Service,
	subscriptionService *subscription.Service,
) *Server {
	return &Server{
		Config:       cfg,
		DB:           db,
		I18n:         i18n,
		Clock:        clock,
		Metrics:      metrics,
		Ledger:       ledger,
		Faucet:       faucet,
		Activity:     activity,
		Sessions:     sessions,
		Splitter:     splitterService,
		Subscription: subscriptionService,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

// ProbeReadiness checks whether the server can serve requests: the database, when enabled,
// has to answer a ping.
func (s *Server) ProbeReadiness(ctx context.Context) []error {
	ctx, cancel := context.WithTimeout(ctx, s.Config.Management.ProbeTimeout)
	defer cancel()

	var errs []error

	if s.DB != nil {
		if err := s.DB.PingContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}

	return errs
}

// ProbeLiveness runs the readiness checks and additionally asks the current ledger node for
// its chain identifier.
func (s *Server) ProbeLiveness(ctx context.Context) []error {
	errs := s.ProbeReadiness(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.Config.Management.ProbeTimeout)
	defer cancel()

	if s.Ledger != nil {
		if _, err := s.Ledger.ChainIdentifier(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ledger: %w", err))
		}
	}

	return errs
}

// RunWorkers starts the background workers of the server. They stop when ctx is done.
func (s *Server) RunWorkers(ctx context.Context) {
	go s.Sessions.RunSweeper(ctx, s.Config.Splitter.SweepInterval)
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Ledger != nil {
		log.Debug().Msg("Closing ledger connections")
		s.Ledger.Close()
	}

	if s.DB != nil {
		log.Debug().Msg("Closing database connection")

		if err := s.DB.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			log.Error().Err(err).Msg("Failed to close database connection")
			errs = append(errs, err)
		}
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
