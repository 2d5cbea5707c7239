package splitter

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/splitter"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

func PostSubmitRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Splitter.POST("/sessions/:id/submit", postSubmitHandler(s))
}

// postSubmitHandler turns the draft into an unsigned create_splitter transaction. The session
// is discarded on success and kept for corrections otherwise.
func postSubmitHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := util.ParseUUIDParam(c, "id")
		if err != nil {
			return err
		}

		var body types.PostSubmitSplitterPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res, err := s.Splitter.Submit(ctx, id, splitter.SubmitRequest{
			Name:       *body.Name,
			Sender:     *body.Sender,
			RegistryID: *body.RegistryID,
		})
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
