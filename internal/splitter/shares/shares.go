// Package shares keeps the recipient shares of a payment splitter summing to 100.
//
// All operations are pure: they take a RecipientSet and return a new one,
// leaving the input untouched.
package shares

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

const (
	// FullShare is the total every valid recipient set sums to.
	FullShare float64 = 100

	DefaultMinimumRecipients     = 2
	DefaultTotalTolerance        = 0.1
	DefaultMaxRecipients         = 200
	defaultInitialRecipientCount = 2
)

// RecipientShare is one (address, share) pair. Share is in percentage points.
type RecipientShare struct {
	Address string  `json:"address"`
	Share   float64 `json:"share"`
}

// RecipientSet is the ordered list of recipients of a splitter draft.
type RecipientSet []RecipientShare

// NewDefaultSet returns the set every form session starts with: two empty recipients at 50/50.
func NewDefaultSet() RecipientSet {
	set := make(RecipientSet, defaultInitialRecipientCount)
	for i := range set {
		set[i].Share = FullShare / defaultInitialRecipientCount
	}

	return set
}

// Total sums all shares.
func (s RecipientSet) Total() float64 {
	var total float64
	for _, r := range s {
		total += r.Share
	}

	return total
}

// Clone returns a copy that does not alias s.
func (s RecipientSet) Clone() RecipientSet {
	if s == nil {
		return nil
	}

	out := make(RecipientSet, len(s))
	copy(out, s)

	return out
}

// Addresses returns the recipient addresses in order.
func (s RecipientSet) Addresses() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.Address
	}

	return out
}

// Config holds the rebalancer limits.
type Config struct {
	// MinimumRecipients is the floor enforced by Remove. Must be >= 1.
	MinimumRecipients int
	// TotalTolerance is the allowed deviation from 100 for a set to be valid.
	TotalTolerance float64
	// MaxRecipients caps the size of a draft. Zero means no cap.
	MaxRecipients int
}

func DefaultConfig() Config {
	return Config{
		MinimumRecipients: DefaultMinimumRecipients,
		TotalTolerance:    DefaultTotalTolerance,
		MaxRecipients:     DefaultMaxRecipients,
	}
}

// Rebalancer applies add/remove/update operations to recipient sets.
type Rebalancer struct {
	cfg Config
}

func NewRebalancer(cfg Config) (*Rebalancer, error) {
	if cfg.MinimumRecipients < 1 {
		return nil, errors.Errorf("minimum recipients must be at least 1, got %d", cfg.MinimumRecipients)
	}

	if cfg.TotalTolerance < 0 || math.IsNaN(cfg.TotalTolerance) || math.IsInf(cfg.TotalTolerance, 0) {
		return nil, errors.Errorf("total tolerance must be a finite non-negative number, got %v", cfg.TotalTolerance)
	}

	if cfg.MaxRecipients < 0 || (cfg.MaxRecipients > 0 && cfg.MaxRecipients < cfg.MinimumRecipients) {
		return nil, errors.Errorf("max recipients must be 0 or at least %d, got %d", cfg.MinimumRecipients, cfg.MaxRecipients)
	}

	return &Rebalancer{cfg: cfg}, nil
}

func (r *Rebalancer) Config() Config {
	return r.cfg
}

// Add appends an empty recipient which absorbs whatever headroom is left under 100.
// Existing entries are not modified.
func (r *Rebalancer) Add(set RecipientSet) RecipientSet {
	return r.AddWithShare(set, math.Max(FullShare-set.Total(), 0))
}

// AddWithShare appends an empty recipient with an explicit share. NaN, infinite or
// negative shares are ignored like in UpdateShare and the headroom is used instead.
func (r *Rebalancer) AddWithShare(set RecipientSet, share float64) RecipientSet {
	if math.IsNaN(share) || math.IsInf(share, 0) || share < 0 {
		share = math.Max(FullShare-set.Total(), 0)
	}

	out := make(RecipientSet, len(set), len(set)+1)
	copy(out, set)

	return append(out, RecipientShare{Share: share})
}

// Remove drops the entry at index and splits its share equally across the rest.
// Floating point drift is pushed onto the first remaining entry so the total is exactly 100.
func (r *Rebalancer) Remove(set RecipientSet, index int) (RecipientSet, error) {
	if index < 0 || index >= len(set) {
		return set, errors.Wrapf(ErrInvalidIndex, "remove index %d of %d", index, len(set))
	}

	if len(set)-1 < r.cfg.MinimumRecipients {
		return set, errors.Wrapf(ErrBelowMinimumRecipients, "at least %d recipients required", r.cfg.MinimumRecipients)
	}

	removed := set[index].Share

	out := make(RecipientSet, 0, len(set)-1)
	out = append(out, set[:index]...)
	out = append(out, set[index+1:]...)

	perRecipient := removed / float64(len(out))
	for i := range out {
		out[i].Share += perRecipient
	}

	if total := out.Total(); total != FullShare {
		out[0].Share += FullShare - total
	}

	return out, nil
}

// UpdateShare sets the share at index and moves the difference onto the other
// entries in proportion to their current shares.
//
// NaN, infinite or negative shares are ignored and the set is returned as is.
// Other entries never go below zero. Raising a share past what the others can give up,
// e.g. newShare > 100, therefore leaves the total above 100 until another entry is
// lowered; IsValidTotal and Validate report such a set.
func (r *Rebalancer) UpdateShare(set RecipientSet, index int, newShare float64) (RecipientSet, error) {
	if index < 0 || index >= len(set) {
		return set, errors.Wrapf(ErrInvalidIndex, "update index %d of %d", index, len(set))
	}

	if math.IsNaN(newShare) || math.IsInf(newShare, 0) || newShare < 0 {
		return set, nil
	}

	out := set.Clone()
	if out[index].Share == newShare {
		return out, nil
	}

	delta := newShare - out[index].Share
	out[index].Share = newShare

	var sumOfOthers float64
	for i := range out {
		if i != index {
			sumOfOthers += out[i].Share
		}
	}

	if sumOfOthers > 0 {
		for i := range out {
			if i == index {
				continue
			}

			out[i].Share -= delta * (out[i].Share / sumOfOthers)
			if out[i].Share < 0 {
				out[i].Share = 0
			}
		}
	}

	if residual := FullShare - out.Total(); math.Abs(residual) > r.cfg.TotalTolerance {
		absorbResidual(out, index, residual)
	}

	return out, nil
}

// absorbResidual adds residual to the first entry other than skip. A negative
// residual that would push that entry below zero spills over to the next one.
func absorbResidual(set RecipientSet, skip int, residual float64) {
	for i := range set {
		if i == skip {
			continue
		}

		if residual >= 0 {
			set[i].Share += residual
			return
		}

		take := math.Min(-residual, set[i].Share)
		set[i].Share -= take
		residual += take

		if residual == 0 {
			return
		}
	}
}

// IsValidTotal reports whether the set total is within tolerance of 100.
func (r *Rebalancer) IsValidTotal(set RecipientSet) bool {
	return math.Abs(set.Total()-FullShare) <= r.cfg.TotalTolerance
}

// Validate checks a set before it is handed to transaction building:
// every address non-empty, every share positive, total 100 within tolerance.
func (r *Rebalancer) Validate(set RecipientSet) error {
	if len(set) == 0 {
		return &ValidationError{Index: -1, Err: ErrEmptySet}
	}

	for i, recipient := range set {
		if strings.TrimSpace(recipient.Address) == "" {
			return &ValidationError{Index: i, Err: ErrMissingAddress}
		}

		if !(recipient.Share > 0) {
			return &ValidationError{Index: i, Err: ErrNonPositiveShare}
		}
	}

	if !r.IsValidTotal(set) {
		return &ValidationError{Index: -1, Total: set.Total(), Err: ErrTotalOutOfTolerance}
	}

	return nil
}
