package test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github/fluxshare/go-fluxshare/internal/ledger"
)

const (
	// TestChainIdentifier is returned by the fake node for iota_getChainIdentifier.
	TestChainIdentifier = "fluxtest"
	// TestCoinObjectID is the object id of the single coin the fake node reports by default.
	TestCoinObjectID = "0x00000000000000000000000000000000000000000000000000000000000c0111"
	// TestCoinBalance is the balance of TestCoinObjectID in base units.
	TestCoinBalance = "1000000000"
)

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RPCHandler answers a single JSON-RPC method call of the fake ledger node.
type RPCHandler func(params []json.RawMessage) (any, *RPCError)

type RPCCall struct {
	Method string
	Params []json.RawMessage
}

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type rpcResponse struct {
	Version string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// LedgerNode is a fake JSON-RPC full node served by httptest.
type LedgerNode struct {
	Server *httptest.Server

	mu       sync.Mutex
	handlers map[string]RPCHandler
	calls    []RPCCall
}

// NewLedgerNode starts a fake node answering the chain identifier, balance, coin and
// move call methods with fixed data. Handlers can be replaced with Handle.
func NewLedgerNode(t *testing.T) *LedgerNode {
	t.Helper()

	n := &LedgerNode{
		handlers: map[string]RPCHandler{},
	}

	n.Handle("iota_getChainIdentifier", func(_ []json.RawMessage) (any, *RPCError) {
		return TestChainIdentifier, nil
	})

	n.Handle("iotax_getBalance", func(_ []json.RawMessage) (any, *RPCError) {
		return map[string]any{
			"coinType":        "0x2::iota::IOTA",
			"coinObjectCount": 1,
			"totalBalance":    TestCoinBalance,
		}, nil
	})

	n.Handle("iotax_getCoins", func(_ []json.RawMessage) (any, *RPCError) {
		return map[string]any{
			"data": []map[string]any{
				{
					"coinType":     "0x2::iota::IOTA",
					"coinObjectId": TestCoinObjectID,
					"version":      "1",
					"digest":       "coin",
					"balance":      TestCoinBalance,
				},
			},
			"nextCursor":  nil,
			"hasNextPage": false,
		}, nil
	})

	n.Handle("unsafe_moveCall", func(params []json.RawMessage) (any, *RPCError) {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, &RPCError{Code: -32602, Message: err.Error()}
		}

		return map[string]any{
			"gas":          []any{},
			"inputObjects": []any{},
			"txBytes":      base64.StdEncoding.EncodeToString(raw),
		}, nil
	})

	n.Server = httptest.NewServer(http.HandlerFunc(n.serveHTTP))
	t.Cleanup(n.Server.Close)

	return n
}

func (n *LedgerNode) URL() string {
	return n.Server.URL
}

// Handle replaces the handler of method.
func (n *LedgerNode) Handle(method string, handler RPCHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.handlers[method] = handler
}

// ServeObject makes iota_getObject answer with a Move object holding fields for objectID.
// Every other object is reported as not existing.
func (n *LedgerNode) ServeObject(objectID string, moveType string, fields string) {
	want, _ := ledger.NormalizeAddress(objectID)

	n.Handle("iota_getObject", func(params []json.RawMessage) (any, *RPCError) {
		var id string
		if len(params) > 0 {
			_ = json.Unmarshal(params[0], &id)
		}

		if got, _ := ledger.NormalizeAddress(id); got != want {
			return map[string]any{
				"error": map[string]any{"code": "notExists", "object_id": id},
			}, nil
		}

		return map[string]any{
			"data": map[string]any{
				"objectId": objectID,
				"version":  "1",
				"digest":   "object",
				"type":     moveType,
				"content": map[string]any{
					"dataType": "moveObject",
					"type":     moveType,
					"fields":   json.RawMessage(fields),
				},
			},
		}, nil
	})
}

// Calls returns all calls of method received so far.
func (n *LedgerNode) Calls(method string) []RPCCall {
	n.mu.Lock()
	defer n.mu.Unlock()

	var res []RPCCall
	for _, c := range n.calls {
		if c.Method == method {
			res = append(res, c)
		}
	}

	return res
}

func (n *LedgerNode) serveHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	n.calls = append(n.calls, RPCCall{Method: req.Method, Params: req.Params})
	handler, ok := n.handlers[req.Method]
	n.mu.Unlock()

	res := rpcResponse{Version: "2.0", ID: req.ID}
	if !ok {
		res.Error = &RPCError{Code: -32601, Message: "method not found"}
	} else {
		res.Result, res.Error = handler(req.Params)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}
