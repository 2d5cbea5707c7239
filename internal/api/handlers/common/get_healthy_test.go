package common_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/test"
)

func TestGetHealthy(t *testing.T) {
	test.WithTestServerNodes(t, func(s *api.Server, ledgerNode *test.LedgerNode, _ *test.FaucetNode) {
		res := test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.Equal(t, "Healthy.", res.Body.String())
		assert.Len(t, ledgerNode.Calls("iota_getChainIdentifier"), 1)
	})
}

func TestGetHealthyLedgerBroken(t *testing.T) {
	test.WithTestServerNodes(t, func(s *api.Server, ledgerNode *test.LedgerNode, _ *test.FaucetNode) {
		ledgerNode.Handle("iota_getChainIdentifier", func(_ []json.RawMessage) (any, *test.RPCError) {
			return nil, &test.RPCError{Code: -32603, Message: "node is syncing"}
		})

		res := test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		require.Equal(t, 521, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), "node is syncing")
	})
}

func TestGetHealthyNotReady(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		s.Activity = nil

		res := test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		require.Equal(t, 521, res.Result().StatusCode)
		require.Equal(t, "Not ready.", res.Body.String())
	})
}
