package subscription

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github/fluxshare/go-fluxshare/internal/activity"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/util"
)

var (
	ErrPlanNotFound          = errors.New("plan not found")
	ErrPlanInactive          = errors.New("plan is not active")
	ErrAlreadySubscribed     = errors.New("already subscribed to plan")
	ErrInsufficientPayment   = errors.New("payment is below the plan price")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrNotSubscriber         = errors.New("sender is not the subscriber")
	ErrSubscriptionCancelled = errors.New("subscription is cancelled")
)

// Ledger is the part of the ledger client the subscription flows need.
type Ledger interface {
	GetObject(ctx context.Context, objectID string) (*ledger.ObjectData, error)
	CreateSubscriptionRegistry(ctx context.Context, sender string) (*ledger.BuiltTransaction, error)
	CreatePlan(ctx context.Context, sender string, registryID string, name string, description string, price *big.Int, periodSeconds uint64) (*ledger.BuiltTransaction, error)
	Subscribe(ctx context.Context, sender string, registryID string, planID uint64, amount *big.Int) (*ledger.BuiltTransaction, error)
	RenewSubscription(ctx context.Context, sender string, registryID string, subscriptionID uint64, amount *big.Int) (*ledger.BuiltTransaction, error)
	CancelSubscription(ctx context.Context, sender string, registryID string, subscriptionID uint64) (*ledger.BuiltTransaction, error)
}

// PlanView is a plan together with the caller's subscription to it.
type PlanView struct {
	Plan         Plan
	Subscription *Subscription
	Status       Status
}

func (v PlanView) Subscribed() bool {
	return v.Subscription != nil
}

type Service struct {
	ledger   Ledger
	activity activity.Store
	clock    time2.Clock
	grace    time.Duration
}

func NewService(l Ledger, activityStore activity.Store, clock time2.Clock, grace time.Duration) *Service {
	return &Service{
		ledger:   l,
		activity: activityStore,
		clock:    clock,
		grace:    grace,
	}
}

// Registry loads and decodes the registry object.
func (s *Service) Registry(ctx context.Context, registryID string) (*Registry, error) {
	object, err := s.ledger.GetObject(ctx, registryID)
	if err != nil {
		return nil, err
	}

	return DecodeRegistry(object)
}

// Plans lists the plans of a registry. When caller is set, each plan carries the caller's
// active subscription and its status.
func (s *Service) Plans(ctx context.Context, registryID string, caller string) ([]PlanView, error) {
	registry, err := s.Registry(ctx, registryID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	views := make([]PlanView, 0, len(registry.Plans))

	for _, plan := range registry.Plans {
		view := PlanView{Plan: plan}

		if caller != "" {
			if sub, ok := registry.ActiveSubscription(caller, plan.PlanID); ok {
				subCopy := *sub
				view.Subscription = &subCopy
				view.Status = sub.StatusAt(now, s.grace)
			}
		}

		views = append(views, view)
	}

	return views, nil
}

func (s *Service) CreateRegistry(ctx context.Context, sender string) (*ledger.BuiltTransaction, error) {
	tx, err := s.ledger.CreateSubscriptionRegistry(ctx, sender)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build initialize_registry transaction")
	}

	s.record(ctx, tx, nil)

	return tx, nil
}

func (s *Service) CreatePlan(ctx context.Context, sender string, registryID string, input PlanInput) (*ledger.BuiltTransaction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	tx, err := s.ledger.CreatePlan(ctx, sender, registryID, name, strings.TrimSpace(input.Description),
		input.Price, PeriodSeconds(input.PeriodDays))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build create_plan transaction")
	}

	s.record(ctx, tx, map[string]any{
		"registryId": registryID,
		"name":       name,
		"price":      input.Price.String(),
		"periodDays": input.PeriodDays,
	})

	return tx, nil
}

// Subscribe checks the plan against the registry and builds the subscribe transaction.
// Without an amount the plan price is paid.
func (s *Service) Subscribe(ctx context.Context, sender string, registryID string, planID uint64, amount *big.Int) (*ledger.BuiltTransaction, error) {
	registry, err := s.Registry(ctx, registryID)
	if err != nil {
		return nil, err
	}

	plan, ok := registry.Plan(planID)
	if !ok {
		return nil, errors.Wrapf(ErrPlanNotFound, "plan %d", planID)
	}

	if !plan.Active {
		return nil, errors.Wrapf(ErrPlanInactive, "plan %d", planID)
	}

	if HasActiveSubscription(registry, sender, planID) {
		return nil, errors.Wrapf(ErrAlreadySubscribed, "plan %d", planID)
	}

	if amount == nil {
		amount = plan.Price
	}

	if amount.Cmp(plan.Price) < 0 {
		return nil, errors.Wrapf(ErrInsufficientPayment, "paid %s, price %s", amount, plan.Price)
	}

	tx, err := s.ledger.Subscribe(ctx, sender, registryID, planID, amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build subscribe transaction")
	}

	s.record(ctx, tx, map[string]any{
		"registryId": registryID,
		"planId":     planID,
		"amount":     amount.String(),
	})

	return tx, nil
}

// Renew builds the renewal of one period, paying the plan price.
func (s *Service) Renew(ctx context.Context, sender string, registryID string, subscriptionID uint64) (*ledger.BuiltTransaction, error) {
	registry, sub, err := s.ownedSubscription(ctx, sender, registryID, subscriptionID)
	if err != nil {
		return nil, err
	}

	plan, ok := registry.Plan(sub.PlanID)
	if !ok {
		return nil, errors.Wrapf(ErrPlanNotFound, "plan %d", sub.PlanID)
	}

	tx, err := s.ledger.RenewSubscription(ctx, sender, registryID, subscriptionID, plan.Price)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build renew_subscription transaction")
	}

	s.record(ctx, tx, map[string]any{
		"registryId":     registryID,
		"subscriptionId": subscriptionID,
		"amount":         plan.Price.String(),
	})

	return tx, nil
}

func (s *Service) Cancel(ctx context.Context, sender string, registryID string, subscriptionID uint64) (*ledger.BuiltTransaction, error) {
	if _, _, err := s.ownedSubscription(ctx, sender, registryID, subscriptionID); err != nil {
		return nil, err
	}

	tx, err := s.ledger.CancelSubscription(ctx, sender, registryID, subscriptionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build cancel_subscription transaction")
	}

	s.record(ctx, tx, map[string]any{
		"registryId":     registryID,
		"subscriptionId": subscriptionID,
	})

	return tx, nil
}

func (s *Service) ownedSubscription(ctx context.Context, sender string, registryID string, subscriptionID uint64) (*Registry, *Subscription, error) {
	registry, err := s.Registry(ctx, registryID)
	if err != nil {
		return nil, nil, err
	}

	sub, ok := registry.Subscription(subscriptionID)
	if !ok {
		return nil, nil, errors.Wrapf(ErrSubscriptionNotFound, "subscription %d", subscriptionID)
	}

	if normalizeOrKeep(sub.Subscriber) != normalizeOrKeep(sender) {
		return nil, nil, errors.Wrapf(ErrNotSubscriber, "subscription %d", subscriptionID)
	}

	if !sub.Active {
		return nil, nil, errors.Wrapf(ErrSubscriptionCancelled, "subscription %d", subscriptionID)
	}

	return registry, sub, nil
}

func (s *Service) record(ctx context.Context, tx *ledger.BuiltTransaction, metadata map[string]any) {
	if err := s.activity.Record(ctx, activity.FromTransaction(tx, metadata)); err != nil {
		util.LogFromContext(ctx).Error().Err(err).Str("digest", tx.Digest).Str("kind", tx.Kind).Msg("Failed to record subscription activity")
	}
}
