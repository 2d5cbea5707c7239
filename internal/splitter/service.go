package splitter

import (
	"context"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github/fluxshare/go-fluxshare/internal/activity"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/splitter/shares"
	"github/fluxshare/go-fluxshare/internal/util"
)

var ErrMissingName = errors.New("splitter name is empty")

// TransactionBuilder builds the unsigned payment_splitter transactions.
type TransactionBuilder interface {
	CreateSplitterRegistry(ctx context.Context, sender string) (*ledger.BuiltTransaction, error)
	CreateSplitter(ctx context.Context, sender string, registryID string, name string, recipients []string, shares []uint64) (*ledger.BuiltTransaction, error)
	ProcessPayment(ctx context.Context, sender string, registryID string, splitterID uint64, amount *big.Int) (*ledger.BuiltTransaction, error)
	UpdateRecipients(ctx context.Context, sender string, registryID string, splitterID uint64, recipients []string, shares []uint64) (*ledger.BuiltTransaction, error)
}

type SubmitRequest struct {
	Name       string
	Sender     string
	RegistryID string
}

type SubmitResult struct {
	Transaction *ledger.BuiltTransaction
	Recipients  []string
	Shares      []uint64
}

// Service turns draft sessions into create_splitter transactions.
type Service struct {
	store    *Store
	builder  TransactionBuilder
	activity activity.Store
}

func NewService(store *Store, builder TransactionBuilder, activityStore activity.Store) *Service {
	return &Service{
		store:    store,
		builder:  builder,
		activity: activityStore,
	}
}

func (s *Service) Store() *Store {
	return s.store
}

// Prepare validates a recipient set for submission and returns normalized addresses and
// basis point shares in the set's order.
func (s *Service) Prepare(set shares.RecipientSet) ([]string, []uint64, error) {
	if err := s.store.Rebalancer().Validate(set); err != nil {
		return nil, nil, err
	}

	recipients := make([]string, len(set))
	for i, r := range set {
		address, err := ledger.NormalizeAddress(r.Address)
		if err != nil {
			return nil, nil, &shares.ValidationError{Index: i, Total: set.Total(), Err: err}
		}
		recipients[i] = address
	}

	points, err := ToBasisPoints(set)
	if err != nil {
		return nil, nil, err
	}

	return recipients, points, nil
}

// Submit validates a snapshot of the session, builds the transaction and discards the session.
// The session stays readable while the transaction is built and is kept when validation or the
// ledger call fails, so the form can be corrected and resubmitted.
func (s *Service) Submit(ctx context.Context, id uuid.UUID, req SubmitRequest) (*SubmitResult, error) {
	log := util.LogFromContext(ctx)

	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrMissingName
	}

	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	recipients, points, err := s.Prepare(session.Recipients)
	if err != nil {
		return nil, err
	}

	tx, err := s.builder.CreateSplitter(ctx, req.Sender, req.RegistryID, strings.TrimSpace(req.Name), recipients, points)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build create_splitter transaction")
	}

	s.store.discard(id)

	s.record(ctx, tx, map[string]any{
		"name":       strings.TrimSpace(req.Name),
		"registryId": req.RegistryID,
		"recipients": len(recipients),
	})

	log.Debug().
		Str("session", id.String()).
		Str("digest", tx.Digest).
		Int("recipients", len(recipients)).
		Msg("Built create_splitter transaction")

	return &SubmitResult{
		Transaction: tx,
		Recipients:  recipients,
		Shares:      points,
	}, nil
}

// Preview computes what every recipient of set receives from a payment of amount base units.
func (s *Service) Preview(amount *big.Int, set shares.RecipientSet) ([]DistributionLine, error) {
	recipients, points, err := s.Prepare(set)
	if err != nil {
		return nil, err
	}

	return Distribute(amount, recipients, points)
}

// CreateRegistry builds the transaction creating a splitter registry owned by sender.
func (s *Service) CreateRegistry(ctx context.Context, sender string) (*ledger.BuiltTransaction, error) {
	tx, err := s.builder.CreateSplitterRegistry(ctx, sender)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build splitter registry transaction")
	}

	s.record(ctx, tx, nil)

	return tx, nil
}

// ProcessPayment builds the transaction paying amount base units into an existing splitter.
func (s *Service) ProcessPayment(ctx context.Context, sender string, registryID string, splitterID uint64, amount *big.Int) (*ledger.BuiltTransaction, error) {
	tx, err := s.builder.ProcessPayment(ctx, sender, registryID, splitterID, amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build process_payment transaction")
	}

	s.record(ctx, tx, map[string]any{
		"registryId": registryID,
		"splitterId": splitterID,
		"amount":     amount.String(),
	})

	return tx, nil
}

// UpdateRecipients validates set like a submission and builds the transaction replacing the
// recipients of an existing splitter.
func (s *Service) UpdateRecipients(ctx context.Context, sender string, registryID string, splitterID uint64, set shares.RecipientSet) (*SubmitResult, error) {
	recipients, points, err := s.Prepare(set)
	if err != nil {
		return nil, err
	}

	tx, err := s.builder.UpdateRecipients(ctx, sender, registryID, splitterID, recipients, points)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build update_recipients transaction")
	}

	s.record(ctx, tx, map[string]any{
		"registryId": registryID,
		"splitterId": splitterID,
		"recipients": len(recipients),
	})

	return &SubmitResult{
		Transaction: tx,
		Recipients:  recipients,
		Shares:      points,
	}, nil
}

// record keeps an activity entry for a built transaction. The transaction is already built,
// so a failure is only logged.
func (s *Service) record(ctx context.Context, tx *ledger.BuiltTransaction, metadata map[string]any) {
	if err := s.activity.Record(ctx, activity.FromTransaction(tx, metadata)); err != nil {
		util.LogFromContext(ctx).Error().Err(err).Str("digest", tx.Digest).Str("kind", tx.Kind).Msg("Failed to record splitter activity")
	}
}
