package ledger

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/i18n"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

func PostFaucetRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Ledger.POST("/faucet", postFaucetHandler(s))
}

func postFaucetHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostFaucetPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Faucet.Request(ctx, *body.Address)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		util.LogFromContext(ctx).Info().
			Str("recipient", res.Recipient).
			Str("task", res.Task).
			Int("requests", res.Requests).
			Msg("Requested test tokens")

		msg := s.I18n.Translate("faucet_requested", common.Language(s, c), i18n.Data{"Address": res.Recipient})

		return util.ValidateAndReturn(c, http.StatusOK, &types.FaucetResponse{
			Message: swag.String(msg),
			TaskID:  res.Task,
		})
	}
}
