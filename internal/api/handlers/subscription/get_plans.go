package subscription

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/subscription"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

func GetPlansRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Subscription.GET("/registry/:registryId/plans", getPlansHandler(s))
}

// getPlansHandler lists the plans of a registry. With ?address= every plan the address is
// subscribed to carries the subscription and its status.
func getPlansHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		registryID := c.Param("registryId")
		if err := util.ValidateParam(c, types.ValidatePathAddress("registryId", registryID)); err != nil {
			return err
		}

		caller := c.QueryParam("address")
		if caller != "" {
			if err := util.ValidateParam(c, types.ValidateQueryAddress("address", caller)); err != nil {
				return err
			}
		}

		views, err := s.Subscription.Plans(ctx, registryID, caller)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		res := &types.GetSubscriptionPlansResponse{
			Plans: make([]*types.SubscriptionPlanItem, 0, len(views)),
		}
		for _, view := range views {
			res.Plans = append(res.Plans, planItem(view))
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}

func planItem(view subscription.PlanView) *types.SubscriptionPlanItem {
	plan := view.Plan

	item := &types.SubscriptionPlanItem{
		PlanID:          swag.Int64(int64(plan.PlanID)),
		Owner:           swag.String(plan.Owner),
		Name:            swag.String(plan.Name),
		Description:     plan.Description,
		Price:           swag.String(plan.Price.String()),
		FormattedPrice:  ledger.FormatAmount(plan.Price),
		PeriodInSeconds: swag.Int64(int64(plan.PeriodSeconds)),
		FormattedPeriod: subscription.FormatPeriod(plan.PeriodSeconds),
		Active:          swag.Bool(plan.Active),
		CreatedAt:       plan.CreatedAt.UnixMilli(),
	}

	if view.Subscribed() {
		item.SubscriptionStatus = string(view.Status)
		item.SubscriptionID = swag.Int64(int64(view.Subscription.SubscriptionID))
		item.NextPaymentDue = view.Subscription.NextPaymentDue.UnixMilli()
	}

	return item
}
