// Package activity records the transactions built for dashboard users, newest first.
package activity

import (
	"context"
	"time"

	"github/fluxshare/go-fluxshare/internal/ledger"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Entry is one built transaction.
type Entry struct {
	ID        int64
	Kind      string
	Sender    string
	PackageID string
	TxDigest  string
	Metadata  map[string]any
	CreatedAt time.Time
}

// Store persists entries. Recording a digest twice keeps one entry with the latest CreatedAt.
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	ListBySender(ctx context.Context, sender string, limit int) ([]Entry, error)
}

// FromTransaction creates the entry for a built transaction.
func FromTransaction(tx *ledger.BuiltTransaction, metadata map[string]any) *Entry {
	if metadata == nil {
		metadata = map[string]any{}
	}

	return &Entry{
		Kind:      tx.Kind,
		Sender:    tx.Sender,
		PackageID: tx.PackageID,
		TxDigest:  tx.Digest,
		Metadata:  metadata,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}

	return limit
}
