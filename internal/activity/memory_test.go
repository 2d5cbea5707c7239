package activity_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/fluxshare/go-fluxshare/internal/activity"
	"github/fluxshare/go-fluxshare/internal/ledger"
)

func newEntry(sender string, digest string) *activity.Entry {
	return activity.FromTransaction(&ledger.BuiltTransaction{
		Kind:      ledger.FunctionCreateSplitter,
		Sender:    sender,
		PackageID: "0x1",
		Digest:    digest,
	}, map[string]any{"name": "Team"})
}

func TestMemoryStoreRecordAndList(t *testing.T) {
	ctx := context.Background()
	clock := time2.NewMockClock(time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC))
	store := activity.NewMemoryStore(clock)

	first := newEntry("0xa", "0x01")
	require.NoError(t, store.Record(ctx, first))
	assert.Equal(t, int64(1), first.ID)

	clock.Advance(time.Minute)
	require.NoError(t, store.Record(ctx, newEntry("0xa", "0x02")))
	require.NoError(t, store.Record(ctx, newEntry("0xb", "0x03")))

	entries, err := store.ListBySender(ctx, "0xa", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "0x02", entries[0].TxDigest)
	assert.Equal(t, "0x01", entries[1].TxDigest)
	assert.Equal(t, "Team", entries[0].Metadata["name"])

	entries, err = store.ListBySender(ctx, "0xc", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryStoreSameDigestIsUpdated(t *testing.T) {
	ctx := context.Background()
	clock := time2.NewMockClock(time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC))
	store := activity.NewMemoryStore(clock)

	require.NoError(t, store.Record(ctx, newEntry("0xa", "0x01")))
	require.NoError(t, store.Record(ctx, newEntry("0xa", "0x02")))

	clock.Advance(time.Hour)
	again := newEntry("0xa", "0x01")
	require.NoError(t, store.Record(ctx, again))
	assert.Equal(t, int64(1), again.ID)

	entries, err := store.ListBySender(ctx, "0xa", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "0x01", entries[0].TxDigest)
	assert.Equal(t, clock.Now(), entries[0].CreatedAt)
}

func TestMemoryStoreLimit(t *testing.T) {
	ctx := context.Background()
	clock := time2.NewMockClock(time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC))
	store := activity.NewMemoryStore(clock)

	for i := 0; i < activity.MaxListLimit+5; i++ {
		require.NoError(t, store.Record(ctx, newEntry("0xa", fmt.Sprintf("0x%x", i))))
	}

	entries, err := store.ListBySender(ctx, "0xa", 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	// equal timestamps fall back to insertion order, newest first
	assert.Equal(t, fmt.Sprintf("0x%x", activity.MaxListLimit+4), entries[0].TxDigest)

	entries, err = store.ListBySender(ctx, "0xa", 0)
	require.NoError(t, err)
	assert.Len(t, entries, activity.DefaultListLimit)

	entries, err = store.ListBySender(ctx, "0xa", 1000)
	require.NoError(t, err)
	assert.Len(t, entries, activity.MaxListLimit)
}
