package util

import (
	"context"
	"net/http"
	"strconv"

	oerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/fluxshare/go-fluxshare/internal/api/httperrors"
	"github/fluxshare/go-fluxshare/internal/types"
)

// BindAndValidateBody binds the request body to the given payload and validates it against
// the payload's schema. Schema violations are returned as HTTPValidationError.
func BindAndValidateBody(c echo.Context, v runtime.Validatable) error {
	binder, ok := c.Echo().Binder.(*echo.DefaultBinder)
	if !ok {
		return errors.New("unexpected echo binder")
	}

	if err := binder.BindBody(c, v); err != nil {
		return err
	}

	return validatePayload(c, v)
}

// ParseIntParam parses the named path parameter as an integer, returning a
// validation error naming the parameter if it is not one.
func ParseIntParam(c echo.Context, name string) (int, error) {
	val, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, httperrors.NewHTTPValidationError(
			http.StatusBadRequest,
			types.PublicHTTPErrorTypeGeneric,
			"Invalid path parameter",
			[]*types.HTTPValidationErrorDetail{
				{
					Key:   swag.String(name),
					In:    swag.String("path"),
					Error: swag.String("must be a valid integer"),
				},
			},
		)
	}

	return val, nil
}

// ParseUUIDParam parses the named path parameter as a UUID.
func ParseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	val, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, httperrors.NewHTTPValidationError(
			http.StatusBadRequest,
			types.PublicHTTPErrorTypeGeneric,
			"Invalid path parameter",
			[]*types.HTTPValidationErrorDetail{
				{
					Key:   swag.String(name),
					In:    swag.String("path"),
					Error: swag.String("must be a valid UUID"),
				},
			},
		)
	}

	return val, nil
}

// ValidateParam turns the validation error of a path or query parameter into an
// HTTPValidationError. nil is returned as is.
func ValidateParam(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	var validationError *oerrors.Validation
	if !errors.As(err, &validationError) {
		return err
	}

	LogFromEchoContext(c).Debug().AnErr("validation_error", validationError).Msg("Parameter did not match schema, returning HTTP validation error")

	return httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid parameter",
		[]*types.HTTPValidationErrorDetail{
			{
				Key:   swag.String(validationError.Name),
				In:    swag.String(validationError.In),
				Error: swag.String(validationError.Error()),
			},
		})
}

// ValidateAndReturn validates the response payload before writing it, so the API never
// answers with something that violates its own schema.
func ValidateAndReturn(c echo.Context, code int, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		var compositeError *oerrors.CompositeError
		if errors.As(err, &compositeError) {
			LogFromEchoContext(c).Debug().Errs("validation_errors", compositeError.Errors).Msg("Response did not match schema")
		} else {
			LogFromEchoContext(c).Debug().Err(err).Msg("Failed to validate response payload")
		}

		return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusInternalServerError))
	}

	return c.JSON(code, v)
}

func validatePayload(c echo.Context, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		var compositeError *oerrors.CompositeError
		if errors.As(err, &compositeError) {
			LogFromEchoContext(c).Debug().Errs("validation_errors", compositeError.Errors).Msg("Payload did not match schema, returning HTTP validation error")

			valErrs := formatValidationErrors(c.Request().Context(), compositeError)

			return httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusBadRequest), valErrs)
		}

		var validationError *oerrors.Validation
		if errors.As(err, &validationError) {
			LogFromEchoContext(c).Debug().AnErr("validation_error", validationError).Msg("Payload did not match schema, returning HTTP validation error")

			valErrs := []*types.HTTPValidationErrorDetail{
				{
					Key:   &validationError.Name,
					In:    &validationError.In,
					Error: swag.String(validationError.Error()),
				},
			}

			return httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusBadRequest), valErrs)
		}

		LogFromEchoContext(c).Error().Err(err).Msg("Failed to validate payload, returning generic HTTP error")
		return err
	}

	return nil
}

func formatValidationErrors(ctx context.Context, err *oerrors.CompositeError) []*types.HTTPValidationErrorDetail {
	valErrs := make([]*types.HTTPValidationErrorDetail, 0, len(err.Errors))
	for _, e := range err.Errors {
		var validationError *oerrors.Validation
		if errors.As(e, &validationError) {
			valErrs = append(valErrs, &types.HTTPValidationErrorDetail{
				Key:   swag.String(validationError.Name),
				In:    swag.String(validationError.In),
				Error: swag.String(validationError.Error()),
			})
			continue
		}

		var compositeError *oerrors.CompositeError
		if errors.As(e, &compositeError) {
			valErrs = append(valErrs, formatValidationErrors(ctx, compositeError)...)
			continue
		}

		LogFromContext(ctx).Warn().Err(e).Str("err_type", strconv.Quote(errors.Cause(e).Error())).Msg("Received unknown error type while validating payload, skipping")
	}

	return valErrs
}
