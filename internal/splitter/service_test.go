package splitter_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/fluxshare/go-fluxshare/internal/activity"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/splitter"
	"github/fluxshare/go-fluxshare/internal/splitter/shares"
)

const testSender = "0x00000000000000000000000000000000000000000000000000000000000000a1"

type fakeBuilder struct {
	calls      int
	err        error
	recipients []string
	shares     []uint64
	splitterID uint64
	amount     *big.Int
	// called while CreateSplitter builds the transaction
	onCreate func()
}

func (b *fakeBuilder) built(function string, sender string) (*ledger.BuiltTransaction, error) {
	b.calls++
	if b.err != nil {
		return nil, b.err
	}

	return &ledger.BuiltTransaction{
		Kind:      function,
		Sender:    sender,
		PackageID: "0x1",
		TxBytes:   "AAAA",
		Digest:    "0xdigest-" + function,
		GasBudget: 10,
	}, nil
}

func (b *fakeBuilder) CreateSplitterRegistry(_ context.Context, sender string) (*ledger.BuiltTransaction, error) {
	return b.built(ledger.FunctionInitialize, sender)
}

func (b *fakeBuilder) ProcessPayment(_ context.Context, sender string, _ string, splitterID uint64, amount *big.Int) (*ledger.BuiltTransaction, error) {
	b.splitterID = splitterID
	b.amount = amount

	return b.built(ledger.FunctionProcessPayment, sender)
}

func (b *fakeBuilder) UpdateRecipients(_ context.Context, sender string, _ string, splitterID uint64, recipients []string, shares []uint64) (*ledger.BuiltTransaction, error) {
	b.splitterID = splitterID
	b.recipients = recipients
	b.shares = shares

	return b.built(ledger.FunctionUpdateRecipients, sender)
}

func (b *fakeBuilder) CreateSplitter(_ context.Context, sender string, _ string, _ string, recipients []string, shares []uint64) (*ledger.BuiltTransaction, error) {
	b.calls++
	if b.onCreate != nil {
		b.onCreate()
	}
	if b.err != nil {
		return nil, b.err
	}

	b.recipients = recipients
	b.shares = shares

	return &ledger.BuiltTransaction{
		Kind:      ledger.FunctionCreateSplitter,
		Sender:    sender,
		PackageID: "0x1",
		TxBytes:   "AAAA",
		Digest:    "0xdigest",
		GasBudget: 10,
	}, nil
}

func newTestService(t *testing.T, builder splitter.TransactionBuilder) (*splitter.Service, *activity.MemoryStore) {
	t.Helper()

	store, _, _ := newTestStore(t, time.Minute)
	activityStore := activity.NewMemoryStore(time2.NewMockClock(time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)))

	return splitter.NewService(store, builder, activityStore), activityStore
}

func submitRequest() splitter.SubmitRequest {
	return splitter.SubmitRequest{
		Name:       "Team",
		Sender:     testSender,
		RegistryID: "0xf1",
	}
}

func TestSubmit(t *testing.T) {
	builder := &fakeBuilder{}
	service, activityStore := newTestService(t, builder)
	store := service.Store()

	session := store.Create()
	_, err := store.SetAddress(session.ID, 0, "0xa")
	require.NoError(t, err)
	_, err = store.SetAddress(session.ID, 1, "0xb")
	require.NoError(t, err)
	_, err = store.UpdateShare(session.ID, 0, 60)
	require.NoError(t, err)

	res, err := service.Submit(context.Background(), session.ID, submitRequest())
	require.NoError(t, err)

	assert.Equal(t, []uint64{6000, 4000}, res.Shares)
	assert.Equal(t, "0x000000000000000000000000000000000000000000000000000000000000000a", res.Recipients[0])
	assert.Equal(t, res.Recipients, builder.recipients)
	assert.Equal(t, "0xdigest", res.Transaction.Digest)

	// the session is discarded after a successful submission
	_, err = store.Get(session.ID)
	assert.True(t, errors.Is(err, splitter.ErrSessionNotFound))

	entries, err := activityStore.ListBySender(context.Background(), testSender, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.FunctionCreateSplitter, entries[0].Kind)
	assert.Equal(t, "Team", entries[0].Metadata["name"])
}

func TestSubmitBlockedByValidation(t *testing.T) {
	builder := &fakeBuilder{}
	service, _ := newTestService(t, builder)
	store := service.Store()

	session := store.Create()

	// addresses are still empty
	_, err := service.Submit(context.Background(), session.ID, submitRequest())
	require.Error(t, err)

	var verr *shares.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 0, verr.Index)
	assert.True(t, errors.Is(err, shares.ErrMissingAddress))

	// not a ledger address
	_, err = store.SetAddress(session.ID, 0, "alice")
	require.NoError(t, err)
	_, err = store.SetAddress(session.ID, 1, "0xb")
	require.NoError(t, err)

	_, err = service.Submit(context.Background(), session.ID, submitRequest())
	require.True(t, errors.As(err, &verr))
	assert.True(t, errors.Is(err, ledger.ErrInvalidAddress))

	// a zero share
	_, err = store.SetAddress(session.ID, 0, "0xa")
	require.NoError(t, err)
	_, err = store.UpdateShare(session.ID, 1, 0)
	require.NoError(t, err)

	_, err = service.Submit(context.Background(), session.ID, submitRequest())
	assert.True(t, errors.Is(err, shares.ErrNonPositiveShare))

	assert.Equal(t, 0, builder.calls)

	// the session survives every rejected submission
	_, err = store.Get(session.ID)
	require.NoError(t, err)
}

func TestSubmitMissingName(t *testing.T) {
	service, _ := newTestService(t, &fakeBuilder{})
	session := service.Store().Create()

	req := submitRequest()
	req.Name = "  "
	_, err := service.Submit(context.Background(), session.ID, req)
	assert.True(t, errors.Is(err, splitter.ErrMissingName))
}

func TestSubmitKeepsSessionReadableWhileBuilding(t *testing.T) {
	builder := &fakeBuilder{}
	service, _ := newTestService(t, builder)
	store := service.Store()

	session := store.Create()
	_, err := store.SetAddress(session.ID, 0, "0xa")
	require.NoError(t, err)
	_, err = store.SetAddress(session.ID, 1, "0xb")
	require.NoError(t, err)

	var duringBuild *splitter.Session
	var duringBuildErr error
	builder.onCreate = func() {
		duringBuild, duringBuildErr = store.Get(session.ID)
	}

	_, err = service.Submit(context.Background(), session.ID, submitRequest())
	require.NoError(t, err)

	require.NoError(t, duringBuildErr)
	assert.Equal(t, "0xb", duringBuild.Recipients[1].Address)

	_, err = store.Get(session.ID)
	assert.True(t, errors.Is(err, splitter.ErrSessionNotFound))
}

func TestSubmitLedgerFailureKeepsSession(t *testing.T) {
	builder := &fakeBuilder{err: ledger.ErrUnavailable}
	service, activityStore := newTestService(t, builder)
	store := service.Store()

	session := store.Create()
	_, err := store.SetAddress(session.ID, 0, "0xa")
	require.NoError(t, err)
	_, err = store.SetAddress(session.ID, 1, "0xb")
	require.NoError(t, err)

	_, err = service.Submit(context.Background(), session.ID, submitRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ledger.ErrUnavailable))

	_, err = store.Get(session.ID)
	require.NoError(t, err)

	entries, err := activityStore.ListBySender(context.Background(), testSender, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPreview(t *testing.T) {
	service, _ := newTestService(t, &fakeBuilder{})

	lines, err := service.Preview(big.NewInt(10_000_001), shares.RecipientSet{
		{Address: "0xa", Share: 60},
		{Address: "0xb", Share: 40},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "6000001", lines[0].Amount.String())
	assert.Equal(t, "4000000", lines[1].Amount.String())
	assert.Equal(t, uint64(6000), lines[0].BasisPoints)

	_, err = service.Preview(big.NewInt(100), shares.RecipientSet{
		{Address: "0xa", Share: 60},
		{Address: "0xb", Share: 30},
	})
	assert.True(t, errors.Is(err, shares.ErrTotalOutOfTolerance))
}

func TestCreateRegistryRecordsActivity(t *testing.T) {
	builder := &fakeBuilder{}
	service, activityStore := newTestService(t, builder)

	tx, err := service.CreateRegistry(context.Background(), testSender)
	require.NoError(t, err)
	assert.Equal(t, ledger.FunctionInitialize, tx.Kind)

	entries, err := activityStore.ListBySender(context.Background(), testSender, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, tx.Digest, entries[0].TxDigest)
}

func TestProcessPayment(t *testing.T) {
	builder := &fakeBuilder{}
	service, activityStore := newTestService(t, builder)

	tx, err := service.ProcessPayment(context.Background(), testSender, "0xf1", 3, big.NewInt(1_500_000))
	require.NoError(t, err)
	assert.Equal(t, ledger.FunctionProcessPayment, tx.Kind)
	assert.Equal(t, uint64(3), builder.splitterID)
	assert.Equal(t, "1500000", builder.amount.String())

	entries, err := activityStore.ListBySender(context.Background(), testSender, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1500000", entries[0].Metadata["amount"])
}

func TestProcessPaymentLedgerFailure(t *testing.T) {
	builder := &fakeBuilder{err: ledger.ErrNoCoveringCoin}
	service, activityStore := newTestService(t, builder)

	_, err := service.ProcessPayment(context.Background(), testSender, "0xf1", 3, big.NewInt(1))
	require.ErrorIs(t, err, ledger.ErrNoCoveringCoin)

	entries, err := activityStore.ListBySender(context.Background(), testSender, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpdateRecipients(t *testing.T) {
	builder := &fakeBuilder{}
	service, _ := newTestService(t, builder)

	set := shares.RecipientSet{
		{Address: "0xa", Share: 12.344},
		{Address: "0xb", Share: 87.656},
	}

	res, err := service.UpdateRecipients(context.Background(), testSender, "0xf1", 7, set)
	require.NoError(t, err)
	assert.Equal(t, ledger.FunctionUpdateRecipients, res.Transaction.Kind)
	assert.Equal(t, uint64(7), builder.splitterID)
	assert.Equal(t, []uint64{1234, 8766}, builder.shares)
	assert.Equal(t, "0x000000000000000000000000000000000000000000000000000000000000000a", builder.recipients[0])
}

func TestUpdateRecipientsRejectsInvalidSet(t *testing.T) {
	builder := &fakeBuilder{}
	service, _ := newTestService(t, builder)

	_, err := service.UpdateRecipients(context.Background(), testSender, "0xf1", 7, shares.RecipientSet{
		{Address: "0xa", Share: 50},
		{Address: "0xb", Share: 40},
	})

	var validationErr *shares.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ErrorIs(t, err, shares.ErrTotalOutOfTolerance)
	assert.Equal(t, 0, builder.calls)
}
