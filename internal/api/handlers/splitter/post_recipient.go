package splitter

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

func PostRecipientRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Splitter.POST("/sessions/:id/recipients", postRecipientHandler(s))
}

// postRecipientHandler appends a recipient. Without a share the recipient takes the headroom
// left under 100; the other recipients keep their shares.
func postRecipientHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := util.ParseUUIDParam(c, "id")
		if err != nil {
			return err
		}

		var body types.PostAddRecipientPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		session, err := s.Sessions.Add(id, body.Address, body.Share)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, sessionResponse(s, c, session))
	}
}
