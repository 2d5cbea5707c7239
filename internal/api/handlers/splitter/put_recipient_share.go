package splitter

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

func PutRecipientShareRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Splitter.PUT("/sessions/:id/recipients/:index/share", putRecipientShareHandler(s))
}

func putRecipientShareHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := util.ParseUUIDParam(c, "id")
		if err != nil {
			return err
		}

		index, err := util.ParseIntParam(c, "index")
		if err != nil {
			return err
		}

		var body types.PutRecipientSharePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		session, err := s.Sessions.UpdateShare(id, index, *body.Share)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, sessionResponse(s, c, session))
	}
}
