package splitter

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

func PostPaymentRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Splitter.POST("/payments", postPaymentHandler(s))
}

// postPaymentHandler builds a process_payment transaction. The payment coin is the first coin
// of the sender covering the amount.
func postPaymentHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostProcessPaymentPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		amount, err := ledger.ParseAmount(*body.Amount)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		tx, err := s.Splitter.ProcessPayment(ctx, *body.Sender, *body.RegistryID, uint64(*body.SplitterID), amount)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, common.TransactionResponse(tx))
	}
}
