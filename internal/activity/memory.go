package activity

import (
	"context"
	"sort"
	"sync"

	"github.com/dropbox/godropbox/time2"
)

// MemoryStore keeps entries in process memory. It is used when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	clock   time2.Clock
	nextID  int64
	entries []Entry
}

func NewMemoryStore(clock time2.Clock) *MemoryStore {
	return &MemoryStore{
		clock:  clock,
		nextID: 1,
	}
}

func (s *MemoryStore) Record(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.CreatedAt = s.clock.Now()

	for i := range s.entries {
		if s.entries[i].TxDigest == entry.TxDigest {
			s.entries[i].CreatedAt = entry.CreatedAt
			entry.ID = s.entries[i].ID
			return nil
		}
	}

	entry.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, *entry)

	return nil
}

func (s *MemoryStore) ListBySender(_ context.Context, sender string, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]Entry, 0)
	for _, e := range s.entries {
		if e.Sender == sender {
			res = append(res, e)
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID > res[j].ID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})

	if limit = clampLimit(limit); len(res) > limit {
		res = res[:limit]
	}

	return res, nil
}
