package ledger

import (
	"net/http"

	oerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

func GetBalanceRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Ledger.GET("/balance", getBalanceHandler(s))
}

func getBalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		address, err := addressQueryParam(c)
		if err != nil {
			return err
		}

		balance, err := s.Ledger.GetBalance(ctx, address)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		total, err := ledger.ParseBaseUnits(balance.TotalBalance)
		if err != nil {
			util.LogFromContext(ctx).Error().Err(err).Str("balance", balance.TotalBalance).Msg("Ledger node returned an invalid balance")
			return common.DomainError(s, c, ledger.ErrInvalidAmount)
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.BalanceResponse{
			Address:          swag.String(address),
			TotalBalance:     swag.String(total.String()),
			FormattedBalance: ledger.FormatAmount(total),
			CoinObjectCount:  balance.CoinObjectCount,
		})
	}
}

// addressQueryParam validates and normalizes the address query parameter.
func addressQueryParam(c echo.Context) (string, error) {
	raw := c.QueryParam("address")
	if err := util.ValidateParam(c, types.ValidateQueryAddress("address", raw)); err != nil {
		return "", err
	}

	address, err := ledger.NormalizeAddress(raw)
	if err != nil {
		return "", util.ValidateParam(c, oerrors.InvalidType("address", "query", "address", raw))
	}

	return address, nil
}
