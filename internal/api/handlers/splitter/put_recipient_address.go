package splitter

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

func PutRecipientAddressRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Splitter.PUT("/sessions/:id/recipients/:index/address", putRecipientAddressHandler(s))
}

// putRecipientAddressHandler stores the address as typed; it is only checked on submit.
func putRecipientAddressHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := util.ParseUUIDParam(c, "id")
		if err != nil {
			return err
		}

		index, err := util.ParseIntParam(c, "index")
		if err != nil {
			return err
		}

		var body types.PutRecipientAddressPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		session, err := s.Sessions.SetAddress(id, index, strings.TrimSpace(*body.Address))
		if err != nil {
			return common.DomainError(s, c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, sessionResponse(s, c, session))
	}
}
