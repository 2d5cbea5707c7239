package subscription

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/api/httperrors"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

func PostCancelRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Subscription.POST("/:subscriptionId/cancel", postCancelHandler(s))
}

func postCancelHandler(s *api.Server) echo.HandlerFunc {
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

		tx, err := s.Subscription.Cancel(ctx, *body.Sender, *body.RegistryID, subscriptionID)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, common.TransactionResponse(tx))
	}
}

func subscriptionIDParam(c echo.Context) (uint64, error) {
	id, err := util.ParseIntParam(c, "subscriptionId")
	if err != nil {
		return 0, err
	}

	if id < 0 {
		return 0, httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid path parameter",
			[]*types.HTTPValidationErrorDetail{{
				Key:   swag.String("subscriptionId"),
				In:    swag.String("path"),
				Error: swag.String("must not be negative"),
			}})
	}

	return uint64(id), nil
}
