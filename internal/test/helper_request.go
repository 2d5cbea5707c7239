package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/httperrors"
	"github/fluxshare/go-fluxshare/internal/i18n"
	"github/fluxshare/go-fluxshare/internal/types"
)

type GenericPayload map[string]any

func (g GenericPayload) Reader(t *testing.T) *bytes.Reader {
	t.Helper()

	b, err := json.Marshal(g)
	require.NoError(t, err, "failed to serialize payload")

	return bytes.NewReader(b)
}

// PerformRequest sends a JSON request through the echo router of s and records the response.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body GenericPayload, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	if body == nil {
		return PerformRequestWithRawBody(t, s, method, path, nil, headers)
	}

	return PerformRequestWithRawBody(t, s, method, path, body.Reader(t), headers)
}

func PerformRequestWithRawBody(t *testing.T, s *api.Server, method string, path string, body io.Reader, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)

	if headers != nil {
		req.Header = headers
	}
	if body != nil && len(req.Header.Get(echo.HeaderContentType)) == 0 {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	res := httptest.NewRecorder()

	s.Echo.ServeHTTP(res, req)

	return res
}

// ParseResponseBody decodes the JSON body of res into v.
func ParseResponseBody(t *testing.T, res *httptest.ResponseRecorder, v any) {
	t.Helper()

	require.NoError(t, json.NewDecoder(res.Result().Body).Decode(v), "Failed to parse response body")
}

// ParseResponseAndValidate decodes the JSON body of res into v and validates it against its schema.
func ParseResponseAndValidate(t *testing.T, res *httptest.ResponseRecorder, v runtime.Validatable) {
	t.Helper()

	ParseResponseBody(t, res, v)

	require.NoError(t, v.Validate(strfmt.Default), "Failed to validate response")
}

// RequireHTTPError checks that res carries httpErr's status code, type and title.
func RequireHTTPError(t *testing.T, res *httptest.ResponseRecorder, httpErr *httperrors.HTTPError) types.PublicHTTPValidationError {
	t.Helper()

	require.Equal(t, int(*httpErr.Code), res.Result().StatusCode, "HTTP status code does not match")

	var response types.PublicHTTPValidationError
	ParseResponseBody(t, res, &response)

	require.NoError(t, response.Validate(strfmt.Default), "Failed to validate error response")
	assert.Equal(t, *httpErr.Type, *response.Type, "HTTP error type does not match")
	assert.Equal(t, *httpErr.Title, *response.Title, "HTTP error title does not match")

	return response
}

// HeadersWithLanguage returns request headers asking for lang.
func HeadersWithLanguage(lang string) http.Header {
	headers := http.Header{}
	headers.Set(i18n.HeaderAcceptLanguage, lang)

	return headers
}
