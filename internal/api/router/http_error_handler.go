package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/fluxshare/go-fluxshare/internal/api/httperrors"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

type HTTPErrorHandlerConfig struct {
	HideInternalServerErrorDetails bool
}

// HTTPErrorHandlerWithConfig renders every error returned by a handler as a JSON error body.
// Errors which are neither an HTTPError, an HTTPValidationError nor an echo.HTTPError are
// answered with 500.
func HTTPErrorHandlerWithConfig(config HTTPErrorHandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var code int64
		var resultErr error

		var httpError *httperrors.HTTPError
		var httpValidationError *httperrors.HTTPValidationError
		var echoHTTPError *echo.HTTPError

		switch {
		case errors.As(err, &httpError):
			code = *httpError.Code
			resultErr = httpError

			if code == http.StatusInternalServerError && config.HideInternalServerErrorDetails {
				if len(httpError.Detail) == 0 {
					resultErr = httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusInternalServerError))
				} else {
					resultErr = httperrors.NewHTTPErrorWithDetail(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusInternalServerError), httpError.Detail)
				}
			}
		case errors.As(err, &httpValidationError):
			code = *httpValidationError.Code
			resultErr = httpValidationError
		case errors.As(err, &echoHTTPError):
			code = int64(echoHTTPError.Code)

			if code == http.StatusInternalServerError && config.HideInternalServerErrorDetails {
				resultErr = httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusInternalServerError))
			} else {
				resultErr = httperrors.NewFromEcho(echoHTTPError)
			}
		default:
			code = http.StatusInternalServerError

			if config.HideInternalServerErrorDetails {
				resultErr = httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusInternalServerError))
			} else {
				resultErr = httperrors.NewHTTPErrorWithDetail(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusInternalServerError), err.Error())
			}
		}

		log := util.LogFromEchoContext(c)
		if code >= http.StatusInternalServerError {
			log.Error().Err(err).Int64("code", code).Msg("Request failed with server error")
		} else {
			log.Debug().Err(err).Int64("code", code).Msg("Request failed")
		}

		if c.Response().Committed {
			return
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(int(code))
		} else {
			err = c.JSON(int(code), resultErr)
		}

		if err != nil {
			log.Warn().AnErr("http_err", err).Msg("Failed to handle HTTP error")
		}
	}
}
