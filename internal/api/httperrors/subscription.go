package httperrors

import (
	"net/http"

	"github/fluxshare/go-fluxshare/internal/types"
)

var (
	ErrNotFoundPlan                   = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, "Plan not found.")
	ErrNotFoundSubscription           = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, "Subscription not found.")
	ErrConflictPlanInactive           = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeGeneric, "Plan is no longer active.")
	ErrConflictAlreadySubscribed      = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeGeneric, "Already subscribed to this plan.")
	ErrConflictSubscriptionCancelled  = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeGeneric, "Subscription is cancelled.")
	ErrBadRequestInsufficientPayment  = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Payment is below the plan price.")
	ErrForbiddenNotSubscriber         = NewHTTPError(http.StatusForbidden, types.PublicHTTPErrorTypeGeneric, "Only the subscriber may change this subscription.")
	ErrTooManyRequestsFaucet          = NewHTTPError(http.StatusTooManyRequests, types.PublicHTTPErrorTypeFAUCETFAILED, "Faucet rate limit reached, try again later.")
	ErrBadRequestMismatchedRecipients = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDRECIPIENTSET, "Every recipient needs exactly one share.")
)
