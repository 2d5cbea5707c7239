package ledger

import (
	"context"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
)

const (
	ModulePaymentSplitter     = "payment_splitter"
	ModuleSubscriptionManager = "subscription_manager"

	FunctionInitialize         = "initialize"
	FunctionCreateSplitter     = "create_splitter"
	FunctionProcessPayment     = "process_payment"
	FunctionUpdateRecipients   = "update_recipients"
	FunctionInitializeRegistry = "initialize_registry"
	FunctionCreatePlan         = "create_plan"
	FunctionSubscribe          = "subscribe"
	FunctionRenewSubscription  = "renew_subscription"
	FunctionCancelSubscription = "cancel_subscription"

	// ClockObjectID is the shared system clock object passed to time dependent entry functions.
	ClockObjectID = "0x6"
)

var ErrMismatchedRecipients = errors.New("recipients and shares differ in length")

// MoveCall describes a call of an entry function of the contract package.
type MoveCall struct {
	Sender        string
	Module        string
	Function      string
	TypeArguments []string
	Arguments     []any
}

// CreateSplitterRegistry builds the transaction that creates a shared splitter registry.
func (c *Client) CreateSplitterRegistry(ctx context.Context, sender string) (*BuiltTransaction, error) {
	return c.MoveCall(ctx, MoveCall{
		Sender:   sender,
		Module:   ModulePaymentSplitter,
		Function: FunctionInitialize,
	})
}

// CreateSplitter builds the transaction registering a new splitter with recipients and
// their shares in basis points.
func (c *Client) CreateSplitter(ctx context.Context, sender string, registryID string, name string, recipients []string, shares []uint64) (*BuiltTransaction, error) {
	if len(recipients) != len(shares) {
		return nil, errors.Wrapf(ErrMismatchedRecipients, "%d recipients, %d shares", len(recipients), len(shares))
	}

	registryID, err := NormalizeAddress(registryID)
	if err != nil {
		return nil, errors.Wrap(err, "registry")
	}

	recipients, err = NormalizeAddresses(recipients)
	if err != nil {
		return nil, errors.Wrap(err, "recipients")
	}

	return c.MoveCall(ctx, MoveCall{
		Sender:   sender,
		Module:   ModulePaymentSplitter,
		Function: FunctionCreateSplitter,
		Arguments: []any{
			registryID,
			name,
			recipients,
			u64Args(shares),
		},
	})
}

// ProcessPayment builds the transaction that pays amount base units into a splitter.
// The payment coin is the first coin of the sender covering the amount.
func (c *Client) ProcessPayment(ctx context.Context, sender string, registryID string, splitterID uint64, amount *big.Int) (*BuiltTransaction, error) {
	registryID, err := NormalizeAddress(registryID)
	if err != nil {
		return nil, errors.Wrap(err, "registry")
	}

	coin, err := c.FindCoinCovering(ctx, sender, amount)
	if err != nil {
		return nil, err
	}

	return c.MoveCall(ctx, MoveCall{
		Sender:   sender,
		Module:   ModulePaymentSplitter,
		Function: FunctionProcessPayment,
		Arguments: []any{
			registryID,
			strconv.FormatUint(splitterID, 10),
			coin.CoinObjectID,
		},
	})
}

// UpdateRecipients builds the transaction replacing the recipients of an existing splitter.
func (c *Client) UpdateRecipients(ctx context.Context, sender string, registryID string, splitterID uint64, recipients []string, shares []uint64) (*BuiltTransaction, error) {
	if len(recipients) != len(shares) {
		return nil, errors.Wrapf(ErrMismatchedRecipients, "%d recipients, %d shares", len(recipients), len(shares))
	}

	registryID, err := NormalizeAddress(registryID)
	if err != nil {
		return nil, errors.Wrap(err, "registry")
	}

	recipients, err = NormalizeAddresses(recipients)
	if err != nil {
		return nil, errors.Wrap(err, "recipients")
	}

	return c.MoveCall(ctx, MoveCall{
		Sender:   sender,
		Module:   ModulePaymentSplitter,
		Function: FunctionUpdateRecipients,
		Arguments: []any{
			registryID,
			strconv.FormatUint(splitterID, 10),
			recipients,
			u64Args(shares),
		},
	})
}

// CreateSubscriptionRegistry builds the transaction that creates a shared subscription registry.
func (c *Client) CreateSubscriptionRegistry(ctx context.Context, sender string) (*BuiltTransaction, error) {
	return c.MoveCall(ctx, MoveCall{
		Sender:   sender,
		Module:   ModuleSubscriptionManager,
		Function: FunctionInitializeRegistry,
	})
}

// CreatePlan builds the transaction adding a plan. The price is given in base units,
// the period in seconds.
func (c *Client) CreatePlan(ctx context.Context, sender string, registryID string, name string, description string, price *big.Int, periodSeconds uint64) (*BuiltTransaction, error) {
	registryID, err := NormalizeAddress(registryID)
	if err != nil {
		return nil, errors.Wrap(err, "registry")
	}

	return c.MoveCall(ctx, MoveCall{
		Sender:   sender,
		Module:   ModuleSubscriptionManager,
		Function: FunctionCreatePlan,
		Arguments: []any{
			registryID,
			name,
			description,
			price.String(),
			strconv.FormatUint(periodSeconds, 10),
		},
	})
}

// Subscribe builds the transaction subscribing the sender to a plan, paying with the first
// coin covering amount.
func (c *Client) Subscribe(ctx context.Context, sender string, registryID string, planID uint64, amount *big.Int) (*BuiltTransaction, error) {
	return c.paidSubscriptionCall(ctx, FunctionSubscribe, sender, registryID, planID, amount)
}

// RenewSubscription builds the transaction extending a subscription by one period.
func (c *Client) RenewSubscription(ctx context.Context, sender string, registryID string, subscriptionID uint64, amount *big.Int) (*BuiltTransaction, error) {
	return c.paidSubscriptionCall(ctx, FunctionRenewSubscription, sender, registryID, subscriptionID, amount)
}

// CancelSubscription builds the transaction cancelling a subscription.
func (c *Client) CancelSubscription(ctx context.Context, sender string, registryID string, subscriptionID uint64) (*BuiltTransaction, error) {
	registryID, err := NormalizeAddress(registryID)
	if err != nil {
		return nil, errors.Wrap(err, "registry")
	}

	return c.MoveCall(ctx, MoveCall{
		Sender:    sender,
		Module:    ModuleSubscriptionManager,
		Function:  FunctionCancelSubscription,
		Arguments: []any{registryID, strconv.FormatUint(subscriptionID, 10)},
	})
}

// paidSubscriptionCall builds calls taking (registry, id, coin, clock), where id is a plan
// or subscription id depending on the function.
func (c *Client) paidSubscriptionCall(ctx context.Context, function string, sender string, registryID string, id uint64, amount *big.Int) (*BuiltTransaction, error) {
	registryID, err := NormalizeAddress(registryID)
	if err != nil {
		return nil, errors.Wrap(err, "registry")
	}

	coin, err := c.FindCoinCovering(ctx, sender, amount)
	if err != nil {
		return nil, err
	}

	return c.MoveCall(ctx, MoveCall{
		Sender:   sender,
		Module:   ModuleSubscriptionManager,
		Function: function,
		Arguments: []any{
			registryID,
			strconv.FormatUint(id, 10),
			coin.CoinObjectID,
			ClockObjectID,
		},
	})
}

// u64Args encodes u64 vector arguments as decimal strings, as the node expects for
// values that may exceed the JSON number range.
func u64Args(values []uint64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatUint(v, 10)
	}
	return out
}
