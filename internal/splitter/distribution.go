package splitter

import (
	"math"
	"math/big"
	"sort"

	"github.com/pkg/errors"
	"github/fluxshare/go-fluxshare/internal/splitter/shares"
)

// TotalBasisPoints is the contract-side representation of 100%.
const TotalBasisPoints = 10_000

var ErrZeroTotal = errors.New("recipient shares sum to zero")

// ToBasisPoints converts percent shares into basis points summing to exactly TotalBasisPoints.
// Shares are scaled to the set's total first, then rounded with the largest remainder method;
// ties go to the lower index.
func ToBasisPoints(set shares.RecipientSet) ([]uint64, error) {
	total := 0.0
	for _, r := range set {
		if r.Share > 0 {
			total += r.Share
		}
	}

	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, ErrZeroTotal
	}

	type remainder struct {
		index int
		frac  float64
	}

	points := make([]uint64, len(set))
	remainders := make([]remainder, len(set))
	var assigned uint64

	for i, r := range set {
		exact := 0.0
		if r.Share > 0 {
			exact = r.Share / total * TotalBasisPoints
		}

		floor := math.Floor(exact)
		points[i] = uint64(floor)
		assigned += points[i]
		remainders[i] = remainder{index: i, frac: exact - floor}
	}

	sort.SliceStable(remainders, func(a, b int) bool {
		return remainders[a].frac > remainders[b].frac
	})

	for i := 0; assigned < TotalBasisPoints; i++ {
		points[remainders[i%len(remainders)].index]++
		assigned++
	}

	// float rounding can push the floors past the total by a point
	for i := len(remainders) - 1; assigned > TotalBasisPoints; i-- {
		idx := remainders[(i%len(remainders)+len(remainders))%len(remainders)].index
		if points[idx] > 0 {
			points[idx]--
			assigned--
		}
	}

	return points, nil
}

// DistributionLine is the amount one recipient receives from a payment.
type DistributionLine struct {
	Address     string
	BasisPoints uint64
	Amount      *big.Int
}

// Distribute splits amount base units by basis points the way the contract does: every
// recipient gets floor(amount × bps / 10000) and the remaining dust goes to the first recipient.
func Distribute(amount *big.Int, recipients []string, points []uint64) ([]DistributionLine, error) {
	if len(recipients) != len(points) {
		return nil, errors.Errorf("%d recipients but %d shares", len(recipients), len(points))
	}

	if len(recipients) == 0 {
		return nil, shares.ErrEmptySet
	}

	var sum uint64
	for _, p := range points {
		sum += p
	}

	if sum != TotalBasisPoints {
		return nil, errors.Errorf("shares sum to %d basis points, expected %d", sum, TotalBasisPoints)
	}

	denominator := big.NewInt(TotalBasisPoints)
	distributed := new(big.Int)
	lines := make([]DistributionLine, len(recipients))

	for i := range recipients {
		part := new(big.Int).Mul(amount, new(big.Int).SetUint64(points[i]))
		part.Quo(part, denominator)
		distributed.Add(distributed, part)

		lines[i] = DistributionLine{
			Address:     recipients[i],
			BasisPoints: points[i],
			Amount:      part,
		}
	}

	dust := new(big.Int).Sub(amount, distributed)
	lines[0].Amount.Add(lines[0].Amount, dust)

	return lines, nil
}
