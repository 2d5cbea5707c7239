package httperrors

import (
	"net/http"

	"github/fluxshare/go-fluxshare/internal/types"
)

var (
	ErrNotFoundSplitterSession   = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeSESSIONNOTFOUND, "Splitter session not found.")
	ErrBadRequestInvalidIndex    = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDINDEX, "Recipient index does not exist.")
	ErrBadRequestInvalidAmount   = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid amount.")
	ErrBadGatewayLedger          = NewHTTPError(http.StatusBadGateway, types.PublicHTTPErrorTypeLEDGERUNAVAILABLE, "Ledger node unavailable.")
	ErrNotFoundRegistry          = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeREGISTRYNOTFOUND, "Registry not found.")
	ErrConflictInsufficientCoin  = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeINSUFFICIENTBALANCE, "No coin in the wallet covers the requested amount.")
	ErrConflictTooManyRecipients = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeTOOMANYRECIPIENTS, "Too many recipients.")
	ErrBadGatewayFaucet          = NewHTTPError(http.StatusBadGateway, types.PublicHTTPErrorTypeFAUCETFAILED, "Faucet request failed.")
)
