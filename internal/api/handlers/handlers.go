package handlers

import (
	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/api/handlers/ledger"
	"github/fluxshare/go-fluxshare/internal/api/handlers/splitter"
	"github/fluxshare/go-fluxshare/internal/api/handlers/subscription"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		ledger.GetActivityRoute(s),
		ledger.GetBalanceRoute(s),
		ledger.PostFaucetRoute(s),
		splitter.DeleteRecipientRoute(s),
		splitter.DeleteSessionRoute(s),
		splitter.GetSessionRoute(s),
		splitter.PostPaymentRoute(s),
		splitter.PostPreviewRoute(s),
		splitter.PostRecipientRoute(s),
		splitter.PostRegistryRoute(s),
		splitter.PostSessionRoute(s),
		splitter.PostSubmitRoute(s),
		splitter.PutRecipientAddressRoute(s),
		splitter.PutRecipientShareRoute(s),
		splitter.PutRecipientsRoute(s),
		subscription.GetPlansRoute(s),
		subscription.PostCancelRoute(s),
		subscription.PostPlanRoute(s),
		subscription.PostRegistryRoute(s),
		subscription.PostRenewRoute(s),
		subscription.PostSubscribeRoute(s),
	}
}
