package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	BaseURL                        string
	EnableCORSMiddleware           bool
	EnableLoggerMiddleware         bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableTrailingSlashMiddleware  bool
	EnableSecureMiddleware         bool
	EnablePrometheusMiddleware     bool
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogRequestBody     bool
	LogRequestHeader   bool
	LogRequestQuery    bool
	LogResponseBody    bool
	LogResponseHeader  bool
	LogCaller          bool
	PrettyPrintConsole bool
}

type Management struct {
	// ProbeTimeout bounds the readiness checks run by /-/ready and "app probe readiness".
	ProbeTimeout time.Duration
}

// Splitter configures recipient share handling of the payment splitter forms.
type Splitter struct {
	MinimumRecipients int
	TotalTolerance    float64
	MaxRecipients     int
	SessionTTL        time.Duration
	SweepInterval     time.Duration
}

// Ledger configures access to the ledger full node and the deployed contract package.
type Ledger struct {
	RPCURLs        []string
	PackageID      string
	CoinType       string
	GasBudget      uint64
	RequestTimeout time.Duration
}

// Subscription configures how subscription status is derived from the registry.
type Subscription struct {
	// GracePeriod is how long after the due date a subscription counts as due rather than overdue.
	GracePeriod time.Duration
}

type Faucet struct {
	BaseURL         string
	RequestsPerCall int
	RequestTimeout  time.Duration
}

type Database struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	Database string
	SSLMode  string
	// Pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// MigrateOnStart applies pending migrations before the server starts accepting requests.
	MigrateOnStart bool
}

// ConnectionString generates a connection string to be passed to sql.Open or equivalents, assuming Postgres syntax
func (c Database) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode)
}

type I18n struct {
	DefaultLanguage string
}

type Server struct {
	Database     Database
	Echo         EchoServer
	Logger       LoggerServer
	Management   Management
	Splitter     Splitter
	Ledger       Ledger
	Subscription Subscription
	Faucet       Faucet
	I18n         I18n
}

const (
	defaultPackageID = "0x059feebf7bbde97146ab5b2eca6c16602674e23593cfc0732c5350cfd0b68de2"
	defaultRPCURL    = "https://api.devnet.iota.cafe"
	defaultFaucetURL = "https://faucet.testnet.iota.cafe"
	defaultCoinType  = "0x2::iota::IOTA"
	defaultGasBudget = 10_000_000
)

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
func DefaultServiceConfigFromEnv() Server {
	// An `.env` file is only read if SERVER_ENV_FILE points to it.
	DotEnvTryOverload()

	env := newEnv()

	return Server{
		Database: Database{
			Enabled:         envBool(env, "DB_ENABLED", false),
			Host:            envString(env, "PGHOST", "postgres"),
			Port:            envInt(env, "PGPORT", 5432),
			Database:        envString(env, "PGDATABASE", "fluxshare"),
			Username:        envString(env, "PGUSER", "dbuser"),
			Password:        envString(env, "PGPASSWORD", ""),
			SSLMode:         envString(env, "PGSSLMODE", "disable"),
			MaxOpenConns:    envInt(env, "DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    envInt(env, "DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration(env, "DB_CONN_MAX_LIFETIME", 5*time.Minute),
			MigrateOnStart:  envBool(env, "DB_MIGRATE_ON_START", false),
		},
		Echo: EchoServer{
			Debug:                          envBool(env, "SERVER_ECHO_DEBUG", false),
			ListenAddress:                  envString(env, "SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: envBool(env, "SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			BaseURL:                        envString(env, "SERVER_ECHO_BASE_URL", "http://localhost:8080"),
			EnableCORSMiddleware:           envBool(env, "SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
			EnableLoggerMiddleware:         envBool(env, "SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnableRecoverMiddleware:        envBool(env, "SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      envBool(env, "SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableTrailingSlashMiddleware:  envBool(env, "SERVER_ECHO_ENABLE_TRAILING_SLASH_MIDDLEWARE", true),
			EnableSecureMiddleware:         envBool(env, "SERVER_ECHO_ENABLE_SECURE_MIDDLEWARE", true),
			EnablePrometheusMiddleware:     envBool(env, "SERVER_ECHO_ENABLE_PROMETHEUS_MIDDLEWARE", true),
		},
		Logger: LoggerServer{
			Level:              envLogLevel(env, "SERVER_LOGGER_LEVEL", zerolog.InfoLevel),
			RequestLevel:       envLogLevel(env, "SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel),
			LogRequestBody:     envBool(env, "SERVER_LOGGER_LOG_REQUEST_BODY", false),
			LogRequestHeader:   envBool(env, "SERVER_LOGGER_LOG_REQUEST_HEADER", false),
			LogRequestQuery:    envBool(env, "SERVER_LOGGER_LOG_REQUEST_QUERY", false),
			LogResponseBody:    envBool(env, "SERVER_LOGGER_LOG_RESPONSE_BODY", false),
			LogResponseHeader:  envBool(env, "SERVER_LOGGER_LOG_RESPONSE_HEADER", false),
			LogCaller:          envBool(env, "SERVER_LOGGER_LOG_CALLER", false),
			PrettyPrintConsole: envBool(env, "SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Management: Management{
			ProbeTimeout: envDuration(env, "SERVER_MANAGEMENT_PROBE_TIMEOUT", 2*time.Second),
		},
		Splitter: Splitter{
			MinimumRecipients: envInt(env, "SERVER_SPLITTER_MINIMUM_RECIPIENTS", 2),
			TotalTolerance:    envFloat(env, "SERVER_SPLITTER_TOTAL_TOLERANCE", 0.1),
			MaxRecipients:     envInt(env, "SERVER_SPLITTER_MAX_RECIPIENTS", 200),
			SessionTTL:        envDuration(env, "SERVER_SPLITTER_SESSION_TTL", 30*time.Minute),
			SweepInterval:     envDuration(env, "SERVER_SPLITTER_SWEEP_INTERVAL", time.Minute),
		},
		Ledger: Ledger{
			RPCURLs:        envStringSlice(env, "LEDGER_RPC_URLS", []string{defaultRPCURL}),
			PackageID:      envString(env, "LEDGER_PACKAGE_ID", defaultPackageID),
			CoinType:       envString(env, "LEDGER_COIN_TYPE", defaultCoinType),
			GasBudget:      envUint64(env, "LEDGER_GAS_BUDGET", defaultGasBudget),
			RequestTimeout: envDuration(env, "LEDGER_REQUEST_TIMEOUT", 10*time.Second),
		},
		Subscription: Subscription{
			GracePeriod: envDuration(env, "SERVER_SUBSCRIPTION_GRACE_PERIOD", 72*time.Hour),
		},
		Faucet: Faucet{
			BaseURL:         envString(env, "FAUCET_BASE_URL", defaultFaucetURL),
			RequestsPerCall: envInt(env, "FAUCET_REQUESTS_PER_CALL", 1),
			RequestTimeout:  envDuration(env, "FAUCET_REQUEST_TIMEOUT", 15*time.Second),
		},
		I18n: I18n{
			DefaultLanguage: envString(env, "SERVER_I18N_DEFAULT_LANGUAGE", "en"),
		},
	}
}
