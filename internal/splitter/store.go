package splitter

import (
	"context"
	"sync"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/fluxshare/go-fluxshare/internal/splitter/shares"
)

const (
	OperationAdd         = "add"
	OperationRemove      = "remove"
	OperationUpdateShare = "update_share"
	OperationSetAddress  = "set_address"
)

var ErrSessionNotFound = errors.New("splitter session not found")

// OperationObserver is notified about every recipient set mutation.
type OperationObserver interface {
	ObserveRebalancerOperation(operation string, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveRebalancerOperation(string, error) {}

// Session is the draft recipient set of one splitter creation form.
type Session struct {
	ID         uuid.UUID
	Recipients shares.RecipientSet
	CreatedAt  time.Time
	TouchedAt  time.Time
}

func (s *Session) snapshot() *Session {
	return &Session{
		ID:         s.ID,
		Recipients: s.Recipients.Clone(),
		CreatedAt:  s.CreatedAt,
		TouchedAt:  s.TouchedAt,
	}
}

// Store keeps draft sessions in memory. All mutations of all sessions are serialized, so
// every rebalancer operation sees the result of the previous one.
type Store struct {
	mu         sync.Mutex
	sessions   map[uuid.UUID]*Session
	rebalancer *shares.Rebalancer
	clock      time2.Clock
	ttl        time.Duration
	observer   OperationObserver
}

func NewStore(rebalancer *shares.Rebalancer, clock time2.Clock, ttl time.Duration, observer OperationObserver) *Store {
	if observer == nil {
		observer = noopObserver{}
	}

	return &Store{
		sessions:   make(map[uuid.UUID]*Session),
		rebalancer: rebalancer,
		clock:      clock,
		ttl:        ttl,
		observer:   observer,
	}
}

func (s *Store) Rebalancer() *shares.Rebalancer {
	return s.rebalancer
}

// TTL is how long a session may stay untouched before it is discarded. Zero disables expiry.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create starts a session with the default two recipients at 50/50.
func (s *Store) Create() *Session {
	now := s.clock.Now()
	session := &Session{
		ID:         uuid.New(),
		Recipients: shares.NewDefaultSet(),
		CreatedAt:  now,
		TouchedAt:  now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session.snapshot()
}

func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	return session.snapshot(), nil
}

func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(id); err != nil {
		return err
	}
	delete(s.sessions, id)

	return nil
}

// Add appends a recipient. Without a share it receives the headroom left to 100.
func (s *Store) Add(id uuid.UUID, address string, share *float64) (*Session, error) {
	return s.mutate(id, OperationAdd, func(set shares.RecipientSet) (shares.RecipientSet, error) {
		if limit := s.rebalancer.Config().MaxRecipients; limit > 0 && len(set) >= limit {
			return nil, errors.Wrapf(shares.ErrTooManyRecipients, "at most %d recipients allowed", limit)
		}

		if share != nil {
			set = s.rebalancer.AddWithShare(set, *share)
		} else {
			set = s.rebalancer.Add(set)
		}
		set[len(set)-1].Address = address

		return set, nil
	})
}

func (s *Store) Remove(id uuid.UUID, index int) (*Session, error) {
	return s.mutate(id, OperationRemove, func(set shares.RecipientSet) (shares.RecipientSet, error) {
		return s.rebalancer.Remove(set, index)
	})
}

func (s *Store) UpdateShare(id uuid.UUID, index int, share float64) (*Session, error) {
	return s.mutate(id, OperationUpdateShare, func(set shares.RecipientSet) (shares.RecipientSet, error) {
		return s.rebalancer.UpdateShare(set, index, share)
	})
}

// SetAddress changes the address of one recipient; shares stay untouched.
func (s *Store) SetAddress(id uuid.UUID, index int, address string) (*Session, error) {
	return s.mutate(id, OperationSetAddress, func(set shares.RecipientSet) (shares.RecipientSet, error) {
		if index < 0 || index >= len(set) {
			return nil, errors.Wrapf(shares.ErrInvalidIndex, "set address index %d of %d", index, len(set))
		}

		set = set.Clone()
		set[index].Address = address

		return set, nil
	})
}

// mutate applies op to the session's set. A failed op leaves the session unchanged.
func (s *Store) mutate(id uuid.UUID, operation string, op func(shares.RecipientSet) (shares.RecipientSet, error)) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	set, err := op(session.Recipients)
	s.observer.ObserveRebalancerOperation(operation, err)
	if err != nil {
		return nil, err
	}

	session.Recipients = set
	session.TouchedAt = s.clock.Now()

	return session.snapshot(), nil
}

// discard removes a submitted session. A session that is already gone is ignored.
func (s *Store) discard(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// must be called with s.mu held
func (s *Store) lookup(id uuid.UUID) (*Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrSessionNotFound, "session %s", id)
	}

	if s.ttl > 0 && s.clock.Now().Sub(session.TouchedAt) > s.ttl {
		delete(s.sessions, id)
		return nil, errors.Wrapf(ErrSessionNotFound, "session %s expired", id)
	}

	return session, nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Sweep removes every session idle for longer than the TTL and returns how many were removed.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for id, session := range s.sessions {
		if now.Sub(session.TouchedAt) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}

// RunSweeper sweeps expired sessions every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.ttl <= 0 {
		log.Debug().Msg("Splitter session sweeper disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("Splitter session sweeper stopped")
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				log.Debug().Int("removed", removed).Msg("Swept expired splitter sessions")
			}
		}
	}
}
