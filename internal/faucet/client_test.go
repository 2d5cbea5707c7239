package faucet_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/fluxshare/go-fluxshare/internal/config"
	"github/fluxshare/go-fluxshare/internal/faucet"
	"github/fluxshare/go-fluxshare/internal/ledger"
)

const recipient = "0x00000000000000000000000000000000000000000000000000000000000000a1"

func newTestClient(t *testing.T, url string, requests int) *faucet.Client {
	t.Helper()

	client, err := faucet.NewClient(config.Faucet{
		BaseURL:         url,
		RequestsPerCall: requests,
		RequestTimeout:  time.Second,
	})
	require.NoError(t, err)

	return client
}

func TestRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/gas", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, recipient, body["FixedAmountRequest"]["recipient"])

		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]any{"task": "task-" + string(rune('0'+n)), "error": nil})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL+"/", 3)

	res, err := client.Request(context.Background(), "0xa1")
	require.NoError(t, err)
	assert.Equal(t, recipient, res.Recipient)
	assert.Equal(t, 3, res.Requests)
	assert.Equal(t, "task-3", res.Task)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRequestInvalidAddress(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1", 1)

	_, err := client.Request(context.Background(), "iota1abc")
	assert.True(t, errors.Is(err, ledger.ErrInvalidAddress))
}

func TestRequestFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, `{}`, faucet.ErrRateLimited},
		{"server error", http.StatusInternalServerError, `boom`, faucet.ErrRequestFailed},
		{"error field", http.StatusAccepted, `{"task": null, "error": "recipient is blocked"}`, faucet.ErrRequestFailed},
		{"garbage", http.StatusOK, `<html>`, faucet.ErrRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL, 2).Request(context.Background(), recipient)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), err.Error())
		})
	}
}

func TestNewClientInvalidConfig(t *testing.T) {
	_, err := faucet.NewClient(config.Faucet{BaseURL: "", RequestsPerCall: 1})
	require.Error(t, err)

	_, err = faucet.NewClient(config.Faucet{BaseURL: "http://faucet", RequestsPerCall: 0})
	require.Error(t, err)
}
