package splitter

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

func PutRecipientsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Splitter.PUT("/:splitterId/recipients", putRecipientsHandler(s))
}

// putRecipientsHandler builds an update_recipients transaction for an existing splitter. The
// new set has to pass the same checks as a draft on submit.
func putRecipientsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		splitterID, err := util.ParseIntParam(c, "splitterId")
		if err != nil {
			return err
		}

		var body types.PutUpdateRecipientsPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		if splitterID < 0 {
			return httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid path parameter",
				[]*types.HTTPValidationErrorDetail{{
					Key:   swag.String("splitterId"),
					In:    swag.String("path"),
					Error: swag.String("must not be negative"),
				}})
		}

		res, err := s.Splitter.UpdateRecipients(ctx, *body.Sender, *body.RegistryID, uint64(splitterID), recipientSet(body.Recipients))
		if err != nil {
			return common.DomainError(s, c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.SubmitSplitterResponse{
			Transaction: common.TransactionResponse(res.Transaction),
			Recipients:  res.Recipients,
			Shares:      res.Shares,
		})
	}
}
