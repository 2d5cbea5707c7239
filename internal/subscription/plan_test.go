package subscription_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/fluxshare/go-fluxshare/internal/subscription"
)

func TestPlanInputValidate(t *testing.T) {
	valid := subscription.PlanInput{
		Name:        "Pro",
		Description: "All features",
		Price:       big.NewInt(1),
		PeriodDays:  30,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *subscription.PlanInput)
		want   error
	}{
		{"empty name", func(p *subscription.PlanInput) { p.Name = " " }, subscription.ErrEmptyPlanName},
		{"empty description", func(p *subscription.PlanInput) { p.Description = "" }, subscription.ErrEmptyPlanDescription},
		{"missing price", func(p *subscription.PlanInput) { p.Price = nil }, subscription.ErrNonPositivePrice},
		{"zero price", func(p *subscription.PlanInput) { p.Price = big.NewInt(0) }, subscription.ErrNonPositivePrice},
		{"zero days", func(p *subscription.PlanInput) { p.PeriodDays = 0 }, subscription.ErrInvalidPeriod},
		{"too many days", func(p *subscription.PlanInput) { p.PeriodDays = subscription.MaxPeriodDays + 1 }, subscription.ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.True(t, errors.Is(p.Validate(), tt.want))
		})
	}
}

func TestPeriodSeconds(t *testing.T) {
	assert.Equal(t, uint64(86400), subscription.PeriodSeconds(1))
	assert.Equal(t, uint64(2592000), subscription.PeriodSeconds(30))
	assert.Equal(t, uint64(0), subscription.PeriodSeconds(-3))
}

func TestFormatPeriod(t *testing.T) {
	tests := []struct {
		days int64
		want string
	}{
		{0, "0 days"},
		{1, "1 day"},
		{7, "7 days"},
		{29, "29 days"},
		{30, "1 month"},
		{45, "1 month"},
		{60, "2 months"},
		{365, "12 months"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, subscription.FormatPeriod(subscription.PeriodSeconds(tt.days)), "%d days", tt.days)
	}

	// partial days are dropped
	assert.Equal(t, "1 day", subscription.FormatPeriod(86400+3600))
}

func TestStatusAt(t *testing.T) {
	due := time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)
	grace := 24 * time.Hour
	sub := subscription.Subscription{Active: true, NextPaymentDue: due}

	assert.Equal(t, subscription.StatusActive, sub.StatusAt(due.Add(-time.Second), grace))
	assert.Equal(t, subscription.StatusDue, sub.StatusAt(due, grace))
	assert.Equal(t, subscription.StatusDue, sub.StatusAt(due.Add(grace), grace))
	assert.Equal(t, subscription.StatusOverdue, sub.StatusAt(due.Add(grace+time.Second), grace))

	sub.Active = false
	assert.Equal(t, subscription.StatusCancelled, sub.StatusAt(due.Add(-time.Hour), grace))
}
