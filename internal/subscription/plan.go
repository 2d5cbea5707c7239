// Package subscription validates plans and derives subscription state from the on-chain registry.
package subscription

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	secondsPerDay = 24 * 60 * 60
	daysPerMonth  = 30

	MinPeriodDays = 1
	// MaxPeriodDays keeps the period in seconds within the u64 the contract stores, with a wide margin.
	MaxPeriodDays = 100 * 365
)

var (
	ErrEmptyPlanName        = errors.New("plan name is empty")
	ErrEmptyPlanDescription = errors.New("plan description is empty")
	ErrNonPositivePrice     = errors.New("plan price must be greater than 0")
	ErrInvalidPeriod        = errors.New("plan period is out of range")
)

// PlanInput is a plan about to be created.
type PlanInput struct {
	Name        string
	Description string
	// Price in base units.
	Price      *big.Int
	PeriodDays int64
}

// Validate reports the first invalid field of the plan.
func (p PlanInput) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyPlanName
	}

	if strings.TrimSpace(p.Description) == "" {
		return ErrEmptyPlanDescription
	}

	if p.Price == nil || p.Price.Sign() <= 0 {
		return ErrNonPositivePrice
	}

	if p.PeriodDays < MinPeriodDays || p.PeriodDays > MaxPeriodDays {
		return errors.Wrapf(ErrInvalidPeriod, "%d days, expected %d to %d", p.PeriodDays, MinPeriodDays, MaxPeriodDays)
	}

	return nil
}

// PeriodSeconds converts a period in days into the seconds stored by the contract.
func PeriodSeconds(days int64) uint64 {
	if days <= 0 {
		return 0
	}

	return uint64(days) * secondsPerDay
}

// FormatPeriod renders a period for display: whole days below 30 days, whole months
// of 30 days from there on.
func FormatPeriod(seconds uint64) string {
	days := seconds / secondsPerDay

	if days < daysPerMonth {
		return plural(days, "day")
	}

	return plural(days/daysPerMonth, "month")
}

func plural(n uint64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}

	return fmt.Sprintf("%d %ss", n, unit)
}

type Status string

const (
	StatusActive    Status = "active"
	StatusDue       Status = "due"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// StatusAt derives the state of sub at now. A subscription past its due date is due
// during the grace period and overdue afterwards.
func (s Subscription) StatusAt(now time.Time, grace time.Duration) Status {
	switch {
	case !s.Active:
		return StatusCancelled
	case now.After(s.NextPaymentDue.Add(grace)):
		return StatusOverdue
	case !now.Before(s.NextPaymentDue):
		return StatusDue
	default:
		return StatusActive
	}
}
