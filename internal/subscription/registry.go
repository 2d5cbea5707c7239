package subscription

import (
	"encoding/json"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github/fluxshare/go-fluxshare/internal/ledger"
)

var ErrMalformedRegistry = errors.New("malformed subscription registry")

// Plan is a subscription plan as stored in the registry.
type Plan struct {
	PlanID        uint64
	Owner         string
	Name          string
	Description   string
	Price         *big.Int
	PeriodSeconds uint64
	Active        bool
	CreatedAt     time.Time
}

// Subscription is one subscriber's subscription to a plan.
type Subscription struct {
	SubscriptionID uint64
	Subscriber     string
	PlanID         uint64
	StartedAt      time.Time
	NextPaymentDue time.Time
	Active         bool
}

// Registry is the decoded shared registry object.
type Registry struct {
	ID                 string
	Plans              []Plan
	Subscriptions      []Subscription
	NextPlanID         uint64
	NextSubscriptionID uint64
}

// Plan returns the plan with the given id.
func (r *Registry) Plan(planID uint64) (*Plan, bool) {
	for i := range r.Plans {
		if r.Plans[i].PlanID == planID {
			return &r.Plans[i], true
		}
	}

	return nil, false
}

// Subscription returns the subscription with the given id.
func (r *Registry) Subscription(subscriptionID uint64) (*Subscription, bool) {
	for i := range r.Subscriptions {
		if r.Subscriptions[i].SubscriptionID == subscriptionID {
			return &r.Subscriptions[i], true
		}
	}

	return nil, false
}

// ActiveSubscription returns the active subscription of subscriber to planID, if any.
func (r *Registry) ActiveSubscription(subscriber string, planID uint64) (*Subscription, bool) {
	subscriber = normalizeOrKeep(subscriber)

	for i := range r.Subscriptions {
		sub := &r.Subscriptions[i]
		if sub.Active && sub.PlanID == planID && normalizeOrKeep(sub.Subscriber) == subscriber {
			return sub, true
		}
	}

	return nil, false
}

// HasActiveSubscription reports whether subscriber holds an active subscription to planID.
func HasActiveSubscription(registry *Registry, subscriber string, planID uint64) bool {
	_, ok := registry.ActiveSubscription(subscriber, planID)
	return ok
}

// u64 accepts the string encoding the node uses for u64 values as well as plain numbers.
type u64 uint64

func (v *u64) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*v = 0
		return nil
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid u64 %s", b)
	}
	*v = u64(n)

	return nil
}

// moveStruct unwraps {"type": ..., "fields": {...}} as returned for nested structs; plain
// objects are decoded as they are.
type moveStruct[T any] struct {
	Value T
}

func (m *moveStruct[T]) UnmarshalJSON(b []byte) error {
	var wrapped struct {
		Fields json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal(b, &wrapped); err == nil && len(wrapped.Fields) > 0 {
		b = wrapped.Fields
	}

	return json.Unmarshal(b, &m.Value)
}

// uid decodes the {"id": "0x…"} form of object ids.
type uid string

func (u *uid) UnmarshalJSON(b []byte) error {
	var plain string
	if err := json.Unmarshal(b, &plain); err == nil {
		*u = uid(plain)
		return nil
	}

	var wrapped struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return errors.Wrapf(err, "invalid uid %s", b)
	}
	*u = uid(wrapped.ID)

	return nil
}

type planFields struct {
	PlanID          u64    `json:"plan_id"`
	Owner           string `json:"owner"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	PeriodInSeconds u64    `json:"period_in_seconds"`
	Active          bool   `json:"active"`
	CreatedAt       u64    `json:"created_at"`
}

type subscriptionFields struct {
	SubscriptionID u64    `json:"subscription_id"`
	Subscriber     string `json:"subscriber"`
	PlanID         u64    `json:"plan_id"`
	StartTimestamp u64    `json:"start_timestamp"`
	NextPaymentDue u64    `json:"next_payment_due"`
	Active         bool   `json:"active"`
}

type registryFields struct {
	ID                 uid                              `json:"id"`
	Plans              []moveStruct[planFields]         `json:"plans"`
	Subscriptions      []moveStruct[subscriptionFields] `json:"subscriptions"`
	NextPlanID         u64                              `json:"next_plan_id"`
	NextSubscriptionID u64                              `json:"next_subscription_id"`
}

// DecodeRegistry decodes the Move struct content of a registry object. Timestamps are
// milliseconds of the on-chain clock.
func DecodeRegistry(object *ledger.ObjectData) (*Registry, error) {
	if object == nil || object.Content == nil {
		return nil, errors.Wrap(ErrMalformedRegistry, "object has no content")
	}

	var fields registryFields
	if err := json.Unmarshal(object.Content.Fields, &fields); err != nil {
		return nil, errors.Wrapf(ErrMalformedRegistry, "%s: %v", object.ObjectID, err)
	}

	registry := &Registry{
		ID:                 string(fields.ID),
		Plans:              make([]Plan, 0, len(fields.Plans)),
		Subscriptions:      make([]Subscription, 0, len(fields.Subscriptions)),
		NextPlanID:         uint64(fields.NextPlanID),
		NextSubscriptionID: uint64(fields.NextSubscriptionID),
	}

	if registry.ID == "" {
		registry.ID = object.ObjectID
	}

	for _, p := range fields.Plans {
		price, err := ledger.ParseBaseUnits(p.Value.Price)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedRegistry, "plan %d: %v", p.Value.PlanID, err)
		}

		registry.Plans = append(registry.Plans, Plan{
			PlanID:        uint64(p.Value.PlanID),
			Owner:         p.Value.Owner,
			Name:          p.Value.Name,
			Description:   p.Value.Description,
			Price:         price,
			PeriodSeconds: uint64(p.Value.PeriodInSeconds),
			Active:        p.Value.Active,
			CreatedAt:     fromMillis(p.Value.CreatedAt),
		})
	}

	for _, s := range fields.Subscriptions {
		registry.Subscriptions = append(registry.Subscriptions, Subscription{
			SubscriptionID: uint64(s.Value.SubscriptionID),
			Subscriber:     s.Value.Subscriber,
			PlanID:         uint64(s.Value.PlanID),
			StartedAt:      fromMillis(s.Value.StartTimestamp),
			NextPaymentDue: fromMillis(s.Value.NextPaymentDue),
			Active:         s.Value.Active,
		})
	}

	return registry, nil
}

func fromMillis(ms u64) time.Time {
	return time.UnixMilli(int64(ms)).UTC()
}

func normalizeOrKeep(address string) string {
	if n, err := ledger.NormalizeAddress(address); err == nil {
		return n
	}

	return address
}
