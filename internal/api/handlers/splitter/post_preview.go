package splitter

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

func PostPreviewRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Splitter.POST("/preview", postPreviewHandler(s))
}

// postPreviewHandler shows what every recipient would receive from a payment, rounded the way
// the contract rounds.
func postPreviewHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body types.PostPreviewPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		amount, err := ledger.ParseAmount(*body.Amount)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		set := recipientSet(body.Recipients)

		lines, err := s.Splitter.Preview(amount, set)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		res := &types.PreviewResponse{
			Total:          swag.String(amount.String()),
			FormattedTotal: ledger.FormatAmount(amount),
			Lines:          make([]*types.DistributionLine, 0, len(lines)),
		}

		for i, line := range lines {
			res.Lines = append(res.Lines, &types.DistributionLine{
				Address:         swag.String(line.Address),
				Share:           set[i].Share,
				BasisPoints:     line.BasisPoints,
				Amount:          swag.String(line.Amount.String()),
				FormattedAmount: ledger.FormatAmount(line.Amount),
				ZeroAmount:      line.Amount.Sign() == 0,
			})
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
