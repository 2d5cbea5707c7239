package subscription

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

func PostRenewRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Subscription.POST("/:subscriptionId/renew", postRenewHandler(s))
}

func postRenewHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		subscriptionID, err := subscriptionIDParam(c)
		if err != nil {
			return err
		}

		var body types.PostSubscriptionActionPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		tx, err := s.Subscription.Renew(ctx, *body.Sender, *body.RegistryID, subscriptionID)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, common.TransactionResponse(tx))
	}
}
