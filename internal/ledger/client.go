package ledger

import (
	"context"
	"encoding/base64"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/fluxshare/go-fluxshare/internal/config"
)

const (
	methodChainIdentifier = "iota_getChainIdentifier"
	methodGetBalance      = "iotax_getBalance"
	methodGetCoins        = "iotax_getCoins"
	methodGetObject       = "iota_getObject"
	methodMoveCall        = "unsafe_moveCall"

	coinPageLimit = 50
)

var (
	ErrUnavailable      = errors.New("all ledger nodes are unavailable")
	ErrObjectNotFound   = errors.New("object not found")
	ErrNoCoveringCoin   = errors.New("no coin covers the requested amount")
	ErrInvalidTxBytes   = errors.New("node returned invalid transaction bytes")
	ErrNoMoveStructData = errors.New("object has no move struct content")
)

// CallObserver is notified about every JSON-RPC call and every built transaction.
type CallObserver interface {
	ObserveLedgerCall(method string, err error)
	ObserveBuiltTransaction(function string)
}

type noopObserver struct{}

func (noopObserver) ObserveLedgerCall(string, error) {}

func (noopObserver) ObserveBuiltTransaction(string) {}

// Client talks JSON-RPC to one of several ledger full nodes and fails over to the
// next URL when a node cannot be reached. JSON-RPC errors returned by a reachable
// node are not retried elsewhere.
type Client struct {
	urls      []string
	clients   []*rpc.Client
	mu        sync.Mutex
	current   int
	timeout   time.Duration
	packageID string
	coinType  string
	gasBudget uint64
	observer  CallObserver
}

// NewClient creates a client for the configured node URLs. Nodes that cannot be dialed
// are retried lazily on use.
func NewClient(ctx context.Context, cfg config.Ledger, observer CallObserver) (*Client, error) {
	if err := vala.BeginValidation().Validate(
		vala.GreaterThan(len(cfg.RPCURLs), 0, "RPCURLs"),
		vala.StringNotEmpty(cfg.PackageID, "PackageID"),
		vala.StringNotEmpty(cfg.CoinType, "CoinType"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "invalid ledger config")
	}

	packageID, err := NormalizeAddress(cfg.PackageID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid package id")
	}

	if observer == nil {
		observer = noopObserver{}
	}

	c := &Client{
		urls:      cfg.RPCURLs,
		clients:   make([]*rpc.Client, len(cfg.RPCURLs)),
		timeout:   cfg.RequestTimeout,
		packageID: packageID,
		coinType:  cfg.CoinType,
		gasBudget: cfg.GasBudget,
		observer:  observer,
	}

	for i, url := range cfg.RPCURLs {
		client, err := rpc.DialContext(ctx, url)
		if err != nil {
			log.Warn().Str("url", url).Err(err).Msg("Failed to connect to ledger node, will retry on use")
			continue
		}
		c.clients[i] = client
	}

	return c, nil
}

func (c *Client) PackageID() string {
	return c.packageID
}

func (c *Client) CoinType() string {
	return c.coinType
}

func (c *Client) GasBudget() uint64 {
	return c.gasBudget
}

// Close closes all node connections.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, client := range c.clients {
		if client != nil {
			client.Close()
			c.clients[i] = nil
		}
	}
}

// ChainIdentifier returns the identifier of the network the current node serves.
// It doubles as the readiness check for the ledger connection.
func (c *Client) ChainIdentifier(ctx context.Context) (string, error) {
	var id string
	if err := c.call(ctx, &id, methodChainIdentifier); err != nil {
		return "", err
	}

	return id, nil
}

// GetBalance returns the total balance of the configured coin type owned by owner.
func (c *Client) GetBalance(ctx context.Context, owner string) (*Balance, error) {
	owner, err := NormalizeAddress(owner)
	if err != nil {
		return nil, err
	}

	var balance Balance
	if err := c.call(ctx, &balance, methodGetBalance, owner, c.coinType); err != nil {
		return nil, err
	}

	return &balance, nil
}

// GetCoins returns one page of coins of the configured type owned by owner.
func (c *Client) GetCoins(ctx context.Context, owner string, cursor *string, limit int) (*CoinPage, error) {
	owner, err := NormalizeAddress(owner)
	if err != nil {
		return nil, err
	}

	var page CoinPage
	if err := c.call(ctx, &page, methodGetCoins, owner, c.coinType, cursor, limit); err != nil {
		return nil, err
	}

	return &page, nil
}

// FindCoinCovering returns the first coin owned by owner whose balance is at least amount.
func (c *Client) FindCoinCovering(ctx context.Context, owner string, amount *big.Int) (*Coin, error) {
	var cursor *string

	for {
		page, err := c.GetCoins(ctx, owner, cursor, coinPageLimit)
		if err != nil {
			return nil, err
		}

		for i := range page.Data {
			balance, err := ParseBaseUnits(page.Data[i].Balance)
			if err != nil {
				log.Warn().Err(err).Str("coin", page.Data[i].CoinObjectID).Msg("Skipping coin with unparsable balance")
				continue
			}

			if balance.Cmp(amount) >= 0 {
				return &page.Data[i], nil
			}
		}

		if !page.HasNextPage || page.NextCursor == nil {
			return nil, errors.Wrapf(ErrNoCoveringCoin, "owner %s, amount %s", owner, amount)
		}
		cursor = page.NextCursor
	}
}

// GetObject loads an object including its Move struct content.
func (c *Client) GetObject(ctx context.Context, objectID string) (*ObjectData, error) {
	objectID, err := NormalizeAddress(objectID)
	if err != nil {
		return nil, err
	}

	options := map[string]bool{
		"showType":    true,
		"showContent": true,
	}

	var resp ObjectResponse
	if err := c.call(ctx, &resp, methodGetObject, objectID, options); err != nil {
		return nil, err
	}

	if resp.Data == nil || len(resp.Error) > 0 {
		return nil, errors.Wrapf(ErrObjectNotFound, "object %s", objectID)
	}

	if resp.Data.Content == nil || resp.Data.Content.DataType != "moveObject" {
		return nil, errors.Wrapf(ErrNoMoveStructData, "object %s", objectID)
	}

	return resp.Data, nil
}

// MoveCall asks the node to build an unsigned transaction calling a function of the
// configured package.
func (c *Client) MoveCall(ctx context.Context, call MoveCall) (*BuiltTransaction, error) {
	sender, err := NormalizeAddress(call.Sender)
	if err != nil {
		return nil, errors.Wrap(err, "sender")
	}

	typeArguments := call.TypeArguments
	if typeArguments == nil {
		typeArguments = []string{}
	}

	arguments := call.Arguments
	if arguments == nil {
		arguments = []any{}
	}

	var result TransactionBlockBytes
	if err := c.call(ctx, &result, methodMoveCall,
		sender,
		c.packageID,
		call.Module,
		call.Function,
		typeArguments,
		arguments,
		nil,
		strconv.FormatUint(c.gasBudget, 10),
	); err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(result.TxBytes)
	if err != nil || len(raw) == 0 {
		return nil, errors.Wrapf(ErrInvalidTxBytes, "%s::%s", call.Module, call.Function)
	}

	c.observer.ObserveBuiltTransaction(call.Function)

	return &BuiltTransaction{
		Kind:      call.Function,
		Sender:    sender,
		PackageID: c.packageID,
		TxBytes:   result.TxBytes,
		Digest:    crypto.Keccak256Hash(raw).Hex(),
		GasBudget: c.gasBudget,
	}, nil
}

// call runs a JSON-RPC call against the current node, failing over to the others
// on transport errors.
func (c *Client) call(ctx context.Context, result any, method string, args ...any) (err error) {
	defer func() {
		c.observer.ObserveLedgerCall(method, err)
	}()

	c.mu.Lock()
	start := c.current
	c.mu.Unlock()

	var lastErr error
	for i := range c.urls {
		idx := (start + i) % len(c.urls)

		client, err := c.clientAt(ctx, idx)
		if err != nil {
			lastErr = err
			continue
		}

		callCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}

		err = client.CallContext(callCtx, result, method, args...)
		if err == nil {
			c.setCurrent(idx)
			return nil
		}

		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) {
			c.setCurrent(idx)
			return errors.Wrapf(err, "%s failed with code %d", method, rpcErr.ErrorCode())
		}

		if ctx.Err() != nil {
			return errors.Wrap(ctx.Err(), method)
		}

		log.Warn().
			Str("url", c.urls[idx]).
			Str("method", method).
			Err(err).
			Msg("Ledger node call failed, trying next node")
		lastErr = err
	}

	return errors.Wrapf(ErrUnavailable, "%s: %v", method, lastErr)
}

func (c *Client) clientAt(ctx context.Context, idx int) (*rpc.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clients[idx] != nil {
		return c.clients[idx], nil
	}

	client, err := rpc.DialContext(ctx, c.urls[idx])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %s", redactURL(c.urls[idx]))
	}
	c.clients[idx] = client

	return client, nil
}

func (c *Client) setCurrent(idx int) {
	c.mu.Lock()
	c.current = idx
	c.mu.Unlock()
}

// redactURL drops credentials and query parameters from node URLs before they are logged.
func redactURL(url string) string {
	if at := strings.LastIndex(url, "@"); at >= 0 {
		if scheme := strings.Index(url, "://"); scheme >= 0 && scheme < at {
			url = url[:scheme+3] + url[at+1:]
		}
	}

	if q := strings.Index(url, "?"); q >= 0 {
		url = url[:q]
	}

	return url
}
