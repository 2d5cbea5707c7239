package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/util"
)

// StatusNotReady is returned by the probes while the server or one of its dependencies is not usable.
const StatusNotReady = 521

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// Readiness check
// This endpoint returns 200 when our Service is ready to serve traffic (i.e. respond to queries).
// Does read-only probes apart from the general server ready state.
// Note that /-/ready is typically public (and not shielded by a mgmt-secret), we thus prevent information leakage here and only return `"Ready."`.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		if !s.Ready() {
			log.Warn().Msg("Readiness probe failed, server is not fully initialized")
			return c.String(StatusNotReady, "Not ready.")
		}

		if errs := s.ProbeReadiness(ctx); len(errs) > 0 {
			log.Warn().Errs("errs", errs).Msg("Readiness probe failed")
			return c.String(StatusNotReady, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
