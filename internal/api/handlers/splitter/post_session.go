package splitter

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/util"
)

func PostSessionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Splitter.POST("/sessions", postSessionHandler(s))
}

// postSessionHandler starts a splitter draft with two empty recipients at 50/50.
func postSessionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		session := s.Sessions.Create()

		util.LogFromEchoContext(c).Debug().Str("session", session.ID.String()).Msg("Created splitter session")

		return util.ValidateAndReturn(c, http.StatusCreated, sessionResponse(s, c, session))
	}
}
