package subscription

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/subscription"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

func PostPlanRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Subscription.POST("/plans", postPlanHandler(s))
}

func postPlanHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostCreatePlanPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		price, err := ledger.ParseAmount(*body.Price)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		tx, err := s.Subscription.CreatePlan(ctx, *body.Sender, *body.RegistryID, subscription.PlanInput{
			Name:        *body.Name,
			Description: *body.Description,
			Price:       price,
			PeriodDays:  *body.PeriodDays,
		})
		if err != nil {
			return common.DomainError(s, c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, common.TransactionResponse(tx))
	}
}
