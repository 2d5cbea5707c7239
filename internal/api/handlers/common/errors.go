package common

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/httperrors"
	"github/fluxshare/go-fluxshare/internal/faucet"
	"github/fluxshare/go-fluxshare/internal/i18n"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/splitter"
	"github/fluxshare/go-fluxshare/internal/splitter/shares"
	"github/fluxshare/go-fluxshare/internal/subscription"
	"github/fluxshare/go-fluxshare/internal/types"
	"golang.org/x/text/language"
)

// Language negotiates the response language from the Accept-Language header.
func Language(s *api.Server, c echo.Context) language.Tag {
	return s.I18n.ParseAcceptLanguage(c.Request().Header.Get(i18n.HeaderAcceptLanguage))
}

// DomainError translates errors of the splitter, subscription, ledger and faucet packages
// into HTTP errors. User facing messages are localized. Unknown errors are returned unchanged
// and answered with 500 by the error handler.
func DomainError(s *api.Server, c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	lang := Language(s, c)

	var validationErr *shares.ValidationError
	if errors.As(err, &validationErr) {
		return recipientValidationError(s, lang, validationErr)
	}

	var rpcErr rpc.Error
	switch {
	case errors.Is(err, splitter.ErrSessionNotFound):
		return httperrors.ErrNotFoundSplitterSession
	case errors.Is(err, shares.ErrInvalidIndex):
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDINDEX, *httperrors.ErrBadRequestInvalidIndex.Title,
			s.I18n.Translate("splitter_invalid_index", lang, i18n.Data{"Position": position(c.Param("index"))}))
	case errors.Is(err, shares.ErrBelowMinimumRecipients):
		return httperrors.NewHTTPErrorWithDetail(http.StatusConflict, types.PublicHTTPErrorTypeBELOWMINIMUMRECIPIENTS, http.StatusText(http.StatusConflict),
			s.I18n.Translate("splitter_below_minimum_recipients", lang, i18n.Data{"Minimum": s.Config.Splitter.MinimumRecipients}))
	case errors.Is(err, shares.ErrTooManyRecipients):
		return httperrors.NewHTTPErrorWithDetail(http.StatusConflict, types.PublicHTTPErrorTypeTOOMANYRECIPIENTS, *httperrors.ErrConflictTooManyRecipients.Title,
			s.I18n.Translate("splitter_too_many_recipients", lang, i18n.Data{"Maximum": s.Config.Splitter.MaxRecipients}))
	case errors.Is(err, splitter.ErrMissingName):
		return httperrors.NewHTTPValidationErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusBadRequest),
			[]*types.HTTPValidationErrorDetail{{
				Key:   swag.String("name"),
				In:    swag.String("body"),
				Error: swag.String(s.I18n.Translate("splitter_missing_name", lang)),
			}}, s.I18n.Translate("splitter_missing_name", lang))
	case errors.Is(err, splitter.ErrZeroTotal):
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDRECIPIENTSET, http.StatusText(http.StatusBadRequest),
			s.I18n.Translate("splitter_total_out_of_tolerance", lang, i18n.Data{"Total": "0.00"}))
	case errors.Is(err, ledger.ErrMismatchedRecipients):
		return httperrors.ErrBadRequestMismatchedRecipients
	case errors.Is(err, ledger.ErrInvalidAmount):
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, *httperrors.ErrBadRequestInvalidAmount.Title, err.Error())
	case errors.Is(err, ledger.ErrInvalidAddress):
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDRECIPIENT, "Invalid address.", err.Error())
	case errors.Is(err, ledger.ErrObjectNotFound), errors.Is(err, ledger.ErrNoMoveStructData), errors.Is(err, subscription.ErrMalformedRegistry):
		return httperrors.NewHTTPErrorWithDetail(http.StatusNotFound, types.PublicHTTPErrorTypeREGISTRYNOTFOUND, *httperrors.ErrNotFoundRegistry.Title, err.Error())
	case errors.Is(err, ledger.ErrNoCoveringCoin):
		return httperrors.ErrConflictInsufficientCoin
	case errors.Is(err, ledger.ErrUnavailable), errors.Is(err, ledger.ErrInvalidTxBytes):
		return httperrors.ErrBadGatewayLedger
	case errors.As(err, &rpcErr):
		// the node rejected the call, e.g. an aborted move call during dry run
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadGateway, types.PublicHTTPErrorTypeLEDGERUNAVAILABLE, "Ledger node rejected the request.", rpcErr.Error())
	case errors.Is(err, subscription.ErrEmptyPlanName),
		errors.Is(err, subscription.ErrEmptyPlanDescription),
		errors.Is(err, subscription.ErrNonPositivePrice),
		errors.Is(err, subscription.ErrInvalidPeriod):
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusBadRequest), err.Error())
	case errors.Is(err, subscription.ErrPlanNotFound):
		return httperrors.ErrNotFoundPlan
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		return httperrors.ErrNotFoundSubscription
	case errors.Is(err, subscription.ErrPlanInactive):
		return httperrors.ErrConflictPlanInactive
	case errors.Is(err, subscription.ErrAlreadySubscribed):
		return httperrors.ErrConflictAlreadySubscribed
	case errors.Is(err, subscription.ErrSubscriptionCancelled):
		return httperrors.ErrConflictSubscriptionCancelled
	case errors.Is(err, subscription.ErrInsufficientPayment):
		return httperrors.ErrBadRequestInsufficientPayment
	case errors.Is(err, subscription.ErrNotSubscriber):
		return httperrors.ErrForbiddenNotSubscriber
	case errors.Is(err, faucet.ErrRateLimited):
		return httperrors.ErrTooManyRequestsFaucet
	case errors.Is(err, faucet.ErrRequestFailed):
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadGateway, types.PublicHTTPErrorTypeFAUCETFAILED, *httperrors.ErrBadGatewayFaucet.Title, err.Error())
	}

	return err
}

func recipientValidationError(s *api.Server, lang language.Tag, err *shares.ValidationError) error {
	key := "recipients"
	errorType := types.PublicHTTPErrorTypeINVALIDRECIPIENTSET
	if err.Index >= 0 {
		key = fmt.Sprintf("recipients[%d]", err.Index)
		errorType = types.PublicHTTPErrorTypeINVALIDRECIPIENT
	}

	msg := recipientMessage(s, lang, err)

	return httperrors.NewHTTPValidationErrorWithDetail(http.StatusBadRequest, errorType, http.StatusText(http.StatusBadRequest),
		[]*types.HTTPValidationErrorDetail{{
			Key:   swag.String(key),
			In:    swag.String("body"),
			Error: swag.String(msg),
		}}, msg)
}

func recipientMessage(s *api.Server, lang language.Tag, err *shares.ValidationError) string {
	data := i18n.Data{
		"Position": err.Index + 1,
		"Total":    strconv.FormatFloat(err.Total, 'f', 2, 64),
	}

	switch {
	case errors.Is(err.Err, shares.ErrEmptySet):
		return s.I18n.Translate("splitter_empty_set", lang)
	case errors.Is(err.Err, shares.ErrMissingAddress):
		return s.I18n.Translate("splitter_missing_address", lang, data)
	case errors.Is(err.Err, ledger.ErrInvalidAddress):
		return s.I18n.Translate("splitter_invalid_address", lang, data)
	case errors.Is(err.Err, shares.ErrNonPositiveShare):
		return s.I18n.Translate("splitter_non_positive_share", lang, data)
	case errors.Is(err.Err, shares.ErrTotalOutOfTolerance):
		return s.I18n.Translate("splitter_total_out_of_tolerance", lang, data)
	}

	return err.Error()
}

// position turns a zero based index path parameter into the one based position shown to users.
func position(index string) string {
	i, err := strconv.Atoi(index)
	if err != nil {
		return index
	}

	return strconv.Itoa(i + 1)
}
