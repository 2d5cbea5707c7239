package splitter

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

func PostRegistryRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Splitter.POST("/registry", postRegistryHandler(s))
}

func postRegistryHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostSplitterRegistryPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		tx, err := s.Splitter.CreateRegistry(ctx, *body.Sender)
		if err != nil {
			return common.DomainError(s, c, err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, common.TransactionResponse(tx))
	}
}
