package splitter

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/util"
)

func DeleteSessionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Splitter.DELETE("/sessions/:id", deleteSessionHandler(s))
}

func deleteSessionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := util.ParseUUIDParam(c, "id")
		if err != nil {
			return err
		}

		if err := s.Sessions.Delete(id); err != nil {
			return common.DomainError(s, c, err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
