package shares_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/fluxshare/go-fluxshare/internal/splitter/shares"
)

func newRebalancer(t *testing.T, minimum int) *shares.Rebalancer {
	t.Helper()

	r, err := shares.NewRebalancer(shares.Config{MinimumRecipients: minimum, TotalTolerance: shares.DefaultTotalTolerance})
	require.NoError(t, err)

	return r
}

// randomValidSet returns n recipients with positive shares summing to 100.
func randomValidSet(rng *rand.Rand, n int) shares.RecipientSet {
	weights := make([]float64, n)
	var sum float64
	for i := range weights {
		weights[i] = rng.Float64() + 0.01
		sum += weights[i]
	}

	set := make(shares.RecipientSet, n)
	for i := range set {
		set[i] = shares.RecipientShare{Address: "0x" + string(rune('a'+i)), Share: weights[i] / sum * shares.FullShare}
	}
	set[0].Share += shares.FullShare - set.Total()

	return set
}

func TestNewRebalancerRejectsInvalidConfig(t *testing.T) {
	_, err := shares.NewRebalancer(shares.Config{MinimumRecipients: 0, TotalTolerance: 0.1})
	require.Error(t, err)

	_, err = shares.NewRebalancer(shares.Config{MinimumRecipients: 1, TotalTolerance: -1})
	require.Error(t, err)

	_, err = shares.NewRebalancer(shares.Config{MinimumRecipients: 1, TotalTolerance: math.NaN()})
	require.Error(t, err)

	r, err := shares.NewRebalancer(shares.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, r.Config().MinimumRecipients)
}

func TestNewDefaultSet(t *testing.T) {
	set := shares.NewDefaultSet()
	require.Len(t, set, 2)
	assert.Equal(t, 50.0, set[0].Share)
	assert.Equal(t, 50.0, set[1].Share)
	assert.Empty(t, set[0].Address)
}

func TestAddAbsorbsHeadroom(t *testing.T) {
	r := newRebalancer(t, 2)

	set := shares.RecipientSet{{Address: "A", Share: 40}, {Address: "B", Share: 35}}
	out := r.Add(set)
	require.Len(t, out, 3)
	assert.Equal(t, 25.0, out[2].Share)
	assert.Equal(t, 40.0, out[0].Share)
	assert.Equal(t, 35.0, out[1].Share)
	assert.Len(t, set, 2, "input must not be modified")
}

func TestAddAtOrOverFullGetsZero(t *testing.T) {
	r := newRebalancer(t, 2)

	out := r.Add(shares.RecipientSet{{Share: 50}, {Share: 50}})
	assert.Equal(t, 0.0, out[2].Share)

	out = r.Add(shares.RecipientSet{{Share: 70}, {Share: 50}})
	assert.Equal(t, 0.0, out[2].Share)
}

func TestAddWithShare(t *testing.T) {
	r := newRebalancer(t, 2)

	out := r.AddWithShare(shares.NewDefaultSet(), 12.5)
	require.Len(t, out, 3)
	assert.Equal(t, 12.5, out[2].Share)
	assert.Equal(t, 112.5, out.Total())
}

func TestAddWithShareIgnoresInvalidShares(t *testing.T) {
	r := newRebalancer(t, 2)
	set := shares.RecipientSet{{Address: "A", Share: 40}, {Address: "B", Share: 35}}

	for _, share := range []float64{-30, -0.001, math.NaN(), math.Inf(1), math.Inf(-1)} {
		out := r.AddWithShare(set, share)
		require.Len(t, out, 3)
		assert.Equal(t, 25.0, out[2].Share, "share %v", share)
		assert.Equal(t, 100.0, out.Total())
	}
}

func TestNewRebalancerMaxRecipients(t *testing.T) {
	_, err := shares.NewRebalancer(shares.Config{MinimumRecipients: 2, TotalTolerance: 0.1, MaxRecipients: -1})
	require.Error(t, err)

	_, err = shares.NewRebalancer(shares.Config{MinimumRecipients: 3, TotalTolerance: 0.1, MaxRecipients: 2})
	require.Error(t, err)

	r, err := shares.NewRebalancer(shares.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, shares.DefaultMaxRecipients, r.Config().MaxRecipients)
}

func TestRemoveInvalidIndex(t *testing.T) {
	r := newRebalancer(t, 1)
	set := shares.RecipientSet{{Share: 50}, {Share: 50}}

	_, err := r.Remove(set, 2)
	require.True(t, errors.Is(err, shares.ErrInvalidIndex))

	_, err = r.Remove(set, -1)
	require.True(t, errors.Is(err, shares.ErrInvalidIndex))
}

func TestRemoveFloorEnforcement(t *testing.T) {
	r := newRebalancer(t, 2)
	set := shares.RecipientSet{{Address: "A", Share: 60}, {Address: "B", Share: 40}}

	out, err := r.Remove(set, 0)
	require.True(t, errors.Is(err, shares.ErrBelowMinimumRecipients))
	assert.Equal(t, set, out)
	assert.Equal(t, shares.RecipientSet{{Address: "A", Share: 60}, {Address: "B", Share: 40}}, set)
}

func TestRemoveDownToConfiguredFloorOfOne(t *testing.T) {
	r := newRebalancer(t, 1)

	out, err := r.Remove(shares.RecipientSet{{Address: "A", Share: 30}, {Address: "B", Share: 70}}, 1)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 100.0, out[0].Share)
}

func TestRemoveSplitsEquallyAndCorrectsDrift(t *testing.T) {
	r := newRebalancer(t, 2)

	set := shares.RecipientSet{{Address: "A", Share: 10}, {Address: "B", Share: 30}, {Address: "C", Share: 30}, {Address: "D", Share: 30}}
	out, err := r.Remove(set, 0)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "B", out[0].Address)
	assert.InDelta(t, 100.0/3, out[0].Share, 1e-9)
	assert.InDelta(t, 100.0/3, out[1].Share, 1e-9)
	assert.InDelta(t, 100.0/3, out[2].Share, 1e-9)
	assert.InDelta(t, 100.0, out.Total(), 1e-9)
}

func TestRemoveInvariantRandomized(t *testing.T) {
	r := newRebalancer(t, 2)
	rng := rand.New(rand.NewSource(42))

	for range 500 {
		n := 3 + rng.Intn(8)
		set := randomValidSet(rng, n)
		index := rng.Intn(n)

		out, err := r.Remove(set, index)
		require.NoError(t, err)
		require.Len(t, out, n-1)
		require.InDelta(t, 100.0, out.Total(), 1e-9)
	}
}

func TestUpdateShareInvalidIndex(t *testing.T) {
	r := newRebalancer(t, 2)

	_, err := r.UpdateShare(shares.NewDefaultSet(), 5, 10)
	require.True(t, errors.Is(err, shares.ErrInvalidIndex))
}

func TestUpdateShareRejectsInvalidNumbersSilently(t *testing.T) {
	r := newRebalancer(t, 2)
	set := shares.RecipientSet{{Address: "A", Share: 50}, {Address: "B", Share: 50}}

	for _, v := range []float64{-5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		out, err := r.UpdateShare(set, 0, v)
		require.NoError(t, err)
		assert.Equal(t, set, out)
	}
}

func TestUpdateShareIdempotent(t *testing.T) {
	r := newRebalancer(t, 2)
	rng := rand.New(rand.NewSource(7))

	for range 100 {
		set := randomValidSet(rng, 2+rng.Intn(6))
		index := rng.Intn(len(set))

		out, err := r.UpdateShare(set, index, set[index].Share)
		require.NoError(t, err)
		require.Equal(t, set, out)
	}
}

func TestUpdateShareProportional(t *testing.T) {
	r := newRebalancer(t, 2)

	set := shares.RecipientSet{{Address: "A", Share: 60}, {Address: "B", Share: 20}, {Address: "C", Share: 20}}
	out, err := r.UpdateShare(set, 0, 40)
	require.NoError(t, err)
	assert.Equal(t, 40.0, out[0].Share)
	assert.InDelta(t, 30.0, out[1].Share, 1e-9)
	assert.InDelta(t, 30.0, out[2].Share, 1e-9)
	assert.Equal(t, 60.0, set[0].Share, "input must not be modified")
}

func TestUpdateShareOthersAtZeroTakeResidual(t *testing.T) {
	r := newRebalancer(t, 2)

	set := shares.RecipientSet{{Address: "A", Share: 100}, {Address: "B", Share: 0}, {Address: "C", Share: 0}}
	out, err := r.UpdateShare(set, 0, 60)
	require.NoError(t, err)
	assert.Equal(t, 60.0, out[0].Share)
	assert.Equal(t, 40.0, out[1].Share)
	assert.Equal(t, 0.0, out[2].Share)
}

func TestUpdateShareNeverProducesNegativeShares(t *testing.T) {
	r := newRebalancer(t, 2)

	set := shares.RecipientSet{{Address: "A", Share: 50}, {Address: "B", Share: 30}, {Address: "C", Share: 20}}
	out, err := r.UpdateShare(set, 0, 120)
	require.NoError(t, err)
	assert.Equal(t, 120.0, out[0].Share)
	for _, recipient := range out {
		assert.GreaterOrEqual(t, recipient.Share, 0.0)
	}
	assert.Equal(t, 120.0, out.Total())
	assert.False(t, r.IsValidTotal(out))
}

func TestUpdateShareInvariantRandomized(t *testing.T) {
	r := newRebalancer(t, 2)
	rng := rand.New(rand.NewSource(99))

	for range 500 {
		set := randomValidSet(rng, 2+rng.Intn(8))
		index := rng.Intn(len(set))
		newShare := rng.Float64() * shares.FullShare

		out, err := r.UpdateShare(set, index, newShare)
		require.NoError(t, err)
		require.Equal(t, newShare, out[index].Share)
		require.InDelta(t, 100.0, out.Total(), 0.1)
		for _, recipient := range out {
			require.GreaterOrEqual(t, recipient.Share, 0.0)
		}
	}
}

func TestAddUpdateRemoveScenario(t *testing.T) {
	r := newRebalancer(t, 2)

	set := shares.RecipientSet{{Address: "A", Share: 50}, {Address: "B", Share: 50}}

	set = r.Add(set)
	set[2].Address = "C"
	require.Equal(t, shares.RecipientSet{{Address: "A", Share: 50}, {Address: "B", Share: 50}, {Address: "C", Share: 0}}, set)

	set, err := r.UpdateShare(set, 2, 30)
	require.NoError(t, err)
	assert.InDelta(t, 35.0, set[0].Share, 1e-9)
	assert.InDelta(t, 35.0, set[1].Share, 1e-9)
	assert.Equal(t, 30.0, set[2].Share)
	assert.InDelta(t, 100.0, set.Total(), 1e-9)

	set, err = r.Remove(set, 0)
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, "B", set[0].Address)
	assert.InDelta(t, 52.5, set[0].Share, 1e-9)
	assert.InDelta(t, 47.5, set[1].Share, 1e-9)
	assert.InDelta(t, 100.0, set.Total(), 1e-9)
}

func TestValidate(t *testing.T) {
	r := newRebalancer(t, 2)

	require.NoError(t, r.Validate(shares.RecipientSet{{Address: "0x1", Share: 60}, {Address: "0x2", Share: 40.05}}))

	var verr *shares.ValidationError

	err := r.Validate(nil)
	require.True(t, errors.As(err, &verr))
	assert.True(t, errors.Is(err, shares.ErrEmptySet))

	err = r.Validate(shares.RecipientSet{{Address: "0x1", Share: 50}, {Address: "  ", Share: 50}})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Index)
	assert.True(t, errors.Is(err, shares.ErrMissingAddress))

	err = r.Validate(shares.RecipientSet{{Address: "0x1", Share: 100}, {Address: "0x2", Share: 0}})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Index)
	assert.True(t, errors.Is(err, shares.ErrNonPositiveShare))

	err = r.Validate(shares.RecipientSet{{Address: "0x1", Share: 50}, {Address: "0x2", Share: 49.8}})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, -1, verr.Index)
	assert.InDelta(t, 99.8, verr.Total, 1e-9)
	assert.True(t, errors.Is(err, shares.ErrTotalOutOfTolerance))
}
