package common

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/util"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// Liveness check
// This endpoint returns 200 when the service and the ledger node it depends on respond.
// Unlike /-/ready it reports every failed check line by line.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		if !s.Ready() {
			return c.String(StatusNotReady, "Not ready.")
		}

		errs := s.ProbeLiveness(ctx)
		if len(errs) == 0 {
			return c.String(http.StatusOK, "Healthy.")
		}

		log.Warn().Errs("errs", errs).Msg("Liveness probe failed")

		var b strings.Builder
		for _, err := range errs {
			fmt.Fprintf(&b, "%v\n", err)
		}

		return c.String(StatusNotReady, b.String())
	}
}
