package splitter_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/httperrors"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/test"
	"github/fluxshare/go-fluxshare/internal/types"
)

const (
	testSender   = "0xa1"
	testRegistry = "0xf1"
)

func fillAddresses(t *testing.T, s *api.Server, session types.SplitterSessionResponse, addresses ...string) {
	t.Helper()

	for i, address := range addresses {
		res := test.PerformRequest(t, s, "PUT", sessionPath(session, fmt.Sprintf("/recipients/%d/address", i)), test.GenericPayload{
			"address": address,
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
	}
}

func normalized(t *testing.T, address string) string {
	t.Helper()

	n, err := ledger.NormalizeAddress(address)
	require.NoError(t, err)

	return n
}

func TestPostSubmit(t *testing.T) {
	test.WithTestServerNodes(t, func(s *api.Server, ledgerNode *test.LedgerNode, _ *test.FaucetNode) {
		session := createSession(t, s)
		fillAddresses(t, s, session, "0xb1", "0xb2")

		res := test.PerformRequest(t, s, "POST", sessionPath(session, "/submit"), test.GenericPayload{
			"name":       "  Band income  ",
			"sender":     testSender,
			"registryId": testRegistry,
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SubmitSplitterResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.Equal(t, ledger.FunctionCreateSplitter, *response.Transaction.Kind)
		assert.Equal(t, []string{normalized(t, "0xb1"), normalized(t, "0xb2")}, response.Recipients)
		assert.Equal(t, []uint64{5000, 5000}, response.Shares)
		assert.NotEmpty(t, *response.Transaction.TxBytes)
		assert.Len(t, ledgerNode.Calls("unsafe_moveCall"), 1)

		// the session is consumed by a successful submit
		res = test.PerformRequest(t, s, "GET", sessionPath(session, ""), nil, nil)
		test.RequireHTTPError(t, res, httperrors.ErrNotFoundSplitterSession)

		entries, err := s.Activity.ListBySender(context.Background(), normalized(t, testSender), 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, ledger.FunctionCreateSplitter, entries[0].Kind)
		assert.Equal(t, *response.Transaction.Digest, entries[0].TxDigest)
		assert.Equal(t, "Band income", entries[0].Metadata["name"])
	})
}

func TestPostSubmitMissingAddress(t *testing.T) {
	test.WithTestServerNodes(t, func(s *api.Server, ledgerNode *test.LedgerNode, _ *test.FaucetNode) {
		session := createSession(t, s)
		fillAddresses(t, s, session, "0xb1")

		res := test.PerformRequest(t, s, "POST", sessionPath(session, "/submit"), test.GenericPayload{
			"name":       "Band income",
			"sender":     testSender,
			"registryId": testRegistry,
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var response types.PublicHTTPValidationError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeINVALIDRECIPIENT, *response.Type)
		require.Len(t, response.ValidationErrors, 1)
		assert.Equal(t, "recipients[1]", *response.ValidationErrors[0].Key)
		assert.Equal(t, "Recipient 2 needs an address.", *response.ValidationErrors[0].Error)
		assert.Empty(t, ledgerNode.Calls("unsafe_moveCall"))

		// the draft survives a rejected submit
		res = test.PerformRequest(t, s, "GET", sessionPath(session, ""), nil, nil)
		assert.Equal(t, http.StatusOK, res.Result().StatusCode)
	})
}

func TestPostSubmitInvalidTotal(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		session := createSession(t, s)
		fillAddresses(t, s, session, "0xb1", "0xb2")

		res := test.PerformRequest(t, s, "POST", sessionPath(session, "/recipients"), test.GenericPayload{
			"address": "0xb3",
			"share":   10,
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", sessionPath(session, "/submit"), test.GenericPayload{
			"name":       "Band income",
			"sender":     testSender,
			"registryId": testRegistry,
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var response types.PublicHTTPValidationError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeINVALIDRECIPIENTSET, *response.Type)
		require.Len(t, response.ValidationErrors, 1)
		assert.Equal(t, "recipients", *response.ValidationErrors[0].Key)
		assert.Equal(t, "Shares must add up to 100%, currently 110.00%.", response.Detail)
	})
}

func TestPostSubmitBlankName(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		session := createSession(t, s)
		fillAddresses(t, s, session, "0xb1", "0xb2")

		res := test.PerformRequest(t, s, "POST", sessionPath(session, "/submit"), test.GenericPayload{
			"name":       "   ",
			"sender":     testSender,
			"registryId": testRegistry,
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var response types.PublicHTTPValidationError
		test.ParseResponseBody(t, res, &response)
		require.Len(t, response.ValidationErrors, 1)
		assert.Equal(t, "name", *response.ValidationErrors[0].Key)
		assert.Equal(t, 1, s.Sessions.Len())
	})
}

func TestPostSubmitLedgerFailureKeepsSession(t *testing.T) {
	test.WithTestServerNodes(t, func(s *api.Server, ledgerNode *test.LedgerNode, _ *test.FaucetNode) {
		ledgerNode.Handle("unsafe_moveCall", func(_ []json.RawMessage) (any, *test.RPCError) {
			return nil, &test.RPCError{Code: -32000, Message: "MoveAbort in create_splitter"}
		})

		session := createSession(t, s)
		fillAddresses(t, s, session, "0xb1", "0xb2")

		res := test.PerformRequest(t, s, "POST", sessionPath(session, "/submit"), test.GenericPayload{
			"name":       "Band income",
			"sender":     testSender,
			"registryId": testRegistry,
		}, nil)
		require.Equal(t, http.StatusBadGateway, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeLEDGERUNAVAILABLE, *response.Type)
		assert.Contains(t, response.Detail, "MoveAbort")

		res = test.PerformRequest(t, s, "GET", sessionPath(session, ""), nil, nil)
		assert.Equal(t, http.StatusOK, res.Result().StatusCode)
	})
}

func TestPostPreview(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/splitter/preview", test.GenericPayload{
			"amount": "1",
			"recipients": []map[string]any{
				{"address": "0xb1", "share": 33.34},
				{"address": "0xb2", "share": 33.33},
				{"address": "0xb3", "share": 33.33},
			},
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.PreviewResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.Equal(t, "1000000", *response.Total)
		assert.Equal(t, "1.000000 Mi", response.FormattedTotal)
		require.Len(t, response.Lines, 3)
		assert.Equal(t, uint64(3334), response.Lines[0].BasisPoints)
		assert.Equal(t, "333400", *response.Lines[0].Amount)
		assert.Equal(t, "333300", *response.Lines[1].Amount)
		assert.Equal(t, "0.333300 Mi", response.Lines[2].FormattedAmount)
		assert.False(t, response.Lines[2].ZeroAmount)
	})
}

func TestPostPreviewInvalidAmount(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/splitter/preview", test.GenericPayload{
			"amount": "lots",
			"recipients": []map[string]any{
				{"address": "0xb1", "share": 100},
			},
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrBadRequestInvalidAmount)
	})
}

func TestPostRegistry(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/splitter/registry", test.GenericPayload{
			"sender": testSender,
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.TransactionResponse
		test.ParseResponseAndValidate(t, res, &response)
		assert.Equal(t, ledger.FunctionInitialize, *response.Kind)

		entries, err := s.Activity.ListBySender(context.Background(), normalized(t, testSender), 0)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestPostPayment(t *testing.T) {
	test.WithTestServerNodes(t, func(s *api.Server, ledgerNode *test.LedgerNode, _ *test.FaucetNode) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/splitter/payments", test.GenericPayload{
			"sender":     testSender,
			"registryId": testRegistry,
			"splitterId": 3,
			"amount":     "12.5",
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.TransactionResponse
		test.ParseResponseAndValidate(t, res, &response)
		assert.Equal(t, ledger.FunctionProcessPayment, *response.Kind)
		assert.Len(t, ledgerNode.Calls("iotax_getCoins"), 1)

		entries, err := s.Activity.ListBySender(context.Background(), normalized(t, testSender), 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "12500000", entries[0].Metadata["amount"])
	})
}

func TestPostPaymentNoCoveringCoin(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/splitter/payments", test.GenericPayload{
			"sender":     testSender,
			"registryId": testRegistry,
			"splitterId": 3,
			"amount":     "5000",
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrConflictInsufficientCoin)
	})
}

func TestPutRecipients(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "PUT", "/api/v1/splitter/3/recipients", test.GenericPayload{
			"sender":     testSender,
			"registryId": testRegistry,
			"recipients": []map[string]any{
				{"address": "0xb1", "share": 12.344},
				{"address": "0xb2", "share": 87.656},
			},
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SubmitSplitterResponse
		test.ParseResponseAndValidate(t, res, &response)
		assert.Equal(t, ledger.FunctionUpdateRecipients, *response.Transaction.Kind)
		assert.Equal(t, []uint64{1234, 8766}, response.Shares)
	})
}

func TestPutRecipientsNegativeSplitterID(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "PUT", "/api/v1/splitter/-1/recipients", test.GenericPayload{
			"sender":     testSender,
			"registryId": testRegistry,
			"recipients": []map[string]any{
				{"address": "0xb1", "share": 100},
			},
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var response types.PublicHTTPValidationError
		test.ParseResponseBody(t, res, &response)
		require.Len(t, response.ValidationErrors, 1)
		assert.Equal(t, "splitterId", *response.ValidationErrors[0].Key)
	})
}
