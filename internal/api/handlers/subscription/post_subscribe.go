package subscription

import (
	"math/big"
	"net/http"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

func PostSubscribeRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Subscription.POST("/subscribe", postSubscribeHandler(s))
}

// postSubscribeHandler builds a subscribe transaction paying the plan price, or the given
// amount if one is set.
func postSubscribeHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostSubscribePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		var amount *big.Int
		if body.Amount != "" {
			var err error
			amount, err = ledger.ParseAmount(body.Amount)
			if err != nil {
				return common.DomainError(s, c, err)
			}
		}

		tx, err := s.Subscription.Subscribe(ctx, *body.Sender, *body.RegistryID, uint64(*body.PlanID), amount)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, common.TransactionResponse(tx))
	}
}
