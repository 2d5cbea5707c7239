package router

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers"
	"github/fluxshare/go-fluxshare/internal/api/middleware"
)

func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true

	s.Echo.HTTPErrorHandler = HTTPErrorHandlerWithConfig(HTTPErrorHandlerConfig{
		HideInternalServerErrorDetails: s.Config.Echo.HideInternalServerErrorDetails,
	})

	// ---
	// General middleware
	if s.Config.Echo.EnableTrailingSlashMiddleware {
		s.Echo.Pre(echoMiddleware.RemoveTrailingSlash())
	} else {
		log.Warn().Msg("Disabling trailing slash middleware due to environment config")
	}

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.Recover())
	} else {
		log.Warn().Msg("Disabling recover middleware due to environment config")
	}

	if s.Config.Echo.EnableSecureMiddleware {
		s.Echo.Use(echoMiddleware.SecureWithConfig(echoMiddleware.SecureConfig{
			Skipper:               echoMiddleware.DefaultSecureConfig.Skipper,
			XSSProtection:         echoMiddleware.DefaultSecureConfig.XSSProtection,
			ContentTypeNosniff:    echoMiddleware.DefaultSecureConfig.ContentTypeNosniff,
			XFrameOptions:         echoMiddleware.DefaultSecureConfig.XFrameOptions,
			HSTSMaxAge:            echoMiddleware.DefaultSecureConfig.HSTSMaxAge,
			HSTSExcludeSubdomains: echoMiddleware.DefaultSecureConfig.HSTSExcludeSubdomains,
			HSTSPreloadEnabled:    echoMiddleware.DefaultSecureConfig.HSTSPreloadEnabled,
			ContentSecurityPolicy: "default-src 'none'",
			ReferrerPolicy:        "no-referrer",
		}))
	} else {
		log.Warn().Msg("Disabling secure middleware due to environment config")
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echoMiddleware.RequestID())
	} else {
		log.Warn().Msg("Disabling request ID middleware due to environment config")
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Level:             s.Config.Logger.RequestLevel,
			LogRequestBody:    s.Config.Logger.LogRequestBody,
			LogRequestHeader:  s.Config.Logger.LogRequestHeader,
			LogRequestQuery:   s.Config.Logger.LogRequestQuery,
			LogResponseBody:   s.Config.Logger.LogResponseBody,
			LogResponseHeader: s.Config.Logger.LogResponseHeader,
			// probes and scrapes would drown every other request
			Skipper: func(c echo.Context) bool {
				path := c.Request().URL.Path
				return path == "/-/ready" || path == "/-/healthy" || path == "/metrics"
			},
		}))
	} else {
		log.Warn().Msg("Disabling logger middleware due to environment config")
	}

	if s.Config.Echo.EnableCORSMiddleware {
		s.Echo.Use(echoMiddleware.CORS())
	} else {
		log.Warn().Msg("Disabling CORS middleware due to environment config")
	}

	if s.Config.Echo.EnablePrometheusMiddleware {
		s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "fluxshare",
			Registerer: s.Metrics.Registerer(),
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		s.Echo.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: s.Metrics.Gatherer(),
		}))
	} else {
		log.Warn().Msg("Disabling prometheus middleware due to environment config")
	}

	s.Router = &api.Router{
		Routes: nil, // will be populated by handlers.AttachAllRoutes(s)

		// Unsecured base group available at /**
		Root: s.Echo.Group(""),

		// Management endpoints, probes
		Management: s.Echo.Group("/-"),

		// API endpoints
		APIV1Splitter:     s.Echo.Group("/api/v1/splitter"),
		APIV1Subscription: s.Echo.Group("/api/v1/subscription"),
		APIV1Ledger:       s.Echo.Group("/api/v1/ledger"),
	}

	// ---
	// Finally attach our handlers
	handlers.AttachAllRoutes(s)
}
