package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// FaucetNode is a fake faucet served by httptest. It accepts every request unless a status
// is forced with Fail.
type FaucetNode struct {
	Server *httptest.Server

	mu         sync.Mutex
	status     int
	recipients []string
}

func NewFaucetNode(t *testing.T) *FaucetNode {
	t.Helper()

	n := &FaucetNode{status: http.StatusAccepted}
	n.Server = httptest.NewServer(http.HandlerFunc(n.serveHTTP))
	t.Cleanup(n.Server.Close)

	return n
}

func (n *FaucetNode) URL() string {
	return n.Server.URL
}

// Fail makes every following request answer with status.
func (n *FaucetNode) Fail(status int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.status = status
}

// Recipients returns the recipient of every request received so far.
func (n *FaucetNode) Recipients() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]string(nil), n.recipients...)
}

func (n *FaucetNode) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/v1/gas" {
		http.NotFound(w, r)
		return
	}

	var body struct {
		FixedAmountRequest struct {
			Recipient string `json:"recipient"`
		} `json:"FixedAmountRequest"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	status := n.status
	if status < http.StatusBadRequest {
		n.recipients = append(n.recipients, body.FixedAmountRequest.Recipient)
	}
	count := len(n.recipients)
	n.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if status >= http.StatusBadRequest {
		_ = json.NewEncoder(w).Encode(map[string]any{"task": nil, "error": http.StatusText(status)})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"task": fmt.Sprintf("task-%d", count), "error": nil})
}
