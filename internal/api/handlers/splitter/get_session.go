package splitter

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/util"
)

func GetSessionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Splitter.GET("/sessions/:id", getSessionHandler(s))
}

func getSessionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := util.ParseUUIDParam(c, "id")
		if err != nil {
			return err
		}

		session, err := s.Sessions.Get(id)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, sessionResponse(s, c, session))
	}
}
