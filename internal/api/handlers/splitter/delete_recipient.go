package splitter

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/util"
)

func DeleteRecipientRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Splitter.DELETE("/sessions/:id/recipients/:index", deleteRecipientHandler(s))
}

// deleteRecipientHandler removes a recipient and spreads its share equally across the rest.
// Removing below the minimum number of recipients is rejected with 409 and leaves the session as is.
func deleteRecipientHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := util.ParseUUIDParam(c, "id")
		if err != nil {
			return err
		}

		index, err := util.ParseIntParam(c, "index")
		if err != nil {
			return err
		}

		session, err := s.Sessions.Remove(id, index)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, sessionResponse(s, c, session))
	}
}
