package faucet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github/fluxshare/go-fluxshare/internal/config"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/util"
)

const (
	gasPath = "/v1/gas"
	// maxErrorBody bounds how much of a failed response is kept for the error message.
	maxErrorBody = 512
)

var (
	ErrRequestFailed = errors.New("faucet request failed")
	ErrRateLimited   = errors.New("faucet rate limit reached")
)

type fixedAmountRequest struct {
	FixedAmountRequest struct {
		Recipient string `json:"recipient"`
	} `json:"FixedAmountRequest"`
}

type batchResponse struct {
	Task  string  `json:"task"`
	Error *string `json:"error"`
}

// Result is the outcome of a faucet call.
type Result struct {
	Recipient string
	// Task is the id of the last accepted faucet task.
	Task     string
	Requests int
}

// Client requests test tokens from the network faucet.
type Client struct {
	baseURL  string
	requests int
	http     *http.Client
}

func NewClient(cfg config.Faucet) (*Client, error) {
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(cfg.BaseURL, "BaseURL"),
		vala.GreaterThan(cfg.RequestsPerCall, 0, "RequestsPerCall"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "invalid faucet config")
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		requests: cfg.RequestsPerCall,
		http:     &http.Client{Timeout: cfg.RequestTimeout},
	}, nil
}

// Request asks the faucet for tokens for address, as many times as configured.
// It stops at the first failed request.
func (c *Client) Request(ctx context.Context, address string) (*Result, error) {
	recipient, err := ledger.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	log := util.LogFromContext(ctx).With().Str("recipient", recipient).Logger()

	res := &Result{Recipient: recipient}
	for i := 0; i < c.requests; i++ {
		task, err := c.requestOnce(ctx, recipient)
		if err != nil {
			return nil, errors.Wrapf(err, "request %d of %d", i+1, c.requests)
		}

		res.Task = task
		res.Requests++
	}

	log.Debug().Int("requests", res.Requests).Str("task", res.Task).Msg("Requested tokens from faucet")

	return res, nil
}

func (c *Client) requestOnce(ctx context.Context, recipient string) (string, error) {
	var body fixedAmountRequest
	body.FixedAmountRequest.Recipient = recipient

	payload, err := json.Marshal(body)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal faucet request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+gasPath, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "failed to create faucet request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(ErrRequestFailed, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read faucet response")
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Wrapf(ErrRequestFailed, "status %d: %s", resp.StatusCode, truncate(raw))
	}

	var decoded batchResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", errors.Wrapf(ErrRequestFailed, "invalid response: %s", truncate(raw))
	}

	if decoded.Error != nil && *decoded.Error != "" {
		return "", errors.Wrap(ErrRequestFailed, *decoded.Error)
	}

	return decoded.Task, nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return fmt.Sprintf("%s…", b[:maxErrorBody])
	}

	return string(b)
}
