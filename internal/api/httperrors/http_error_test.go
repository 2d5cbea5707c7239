package httperrors_test

import (
	"net/http"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github/fluxshare/go-fluxshare/internal/api/httperrors"
	"github/fluxshare/go-fluxshare/internal/types"
)

func TestHTTPErrorString(t *testing.T) {
	err := httperrors.NewHTTPErrorWithDetail(http.StatusConflict, types.PublicHTTPErrorTypeBELOWMINIMUMRECIPIENTS, "Conflict", "At least 2 recipients are required.")
	assert.Equal(t, "HTTPError 409 (BELOW_MINIMUM_RECIPIENTS): Conflict - At least 2 recipients are required.", err.Error())
}

func TestNewFromEcho(t *testing.T) {
	err := httperrors.NewFromEcho(echo.ErrNotFound)
	assert.Equal(t, int64(http.StatusNotFound), *err.Code)
	assert.Equal(t, "Not Found", *err.Title)
	assert.Equal(t, types.PublicHTTPErrorTypeGeneric, *err.Type)
}

func TestHTTPValidationErrorString(t *testing.T) {
	err := httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Bad Request", []*types.HTTPValidationErrorDetail{
		{Key: swag.String("sender"), In: swag.String("body"), Error: swag.String("required")},
		{Key: swag.String("name"), In: swag.String("body"), Error: swag.String("too short")},
	})
	assert.Equal(t, "HTTPValidationError 400 (generic): Bad Request - Validation: sender (in body): required, name (in body): too short", err.Error())
}
