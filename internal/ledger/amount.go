package ledger

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	// Decimals is the number of fraction digits between display units and base units.
	Decimals int32 = 6
	// DisplaySuffix is appended to formatted amounts.
	DisplaySuffix = "Mi"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount converts a display amount such as "1.5" into base units.
// Digits beyond the sixth fraction digit are truncated; the result must be positive.
func ParseAmount(amount string) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q is not a number", amount)
	}

	units := d.Shift(Decimals).Truncate(0)
	if units.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q must be greater than 0", amount)
	}

	return units.BigInt(), nil
}

// ParseBaseUnits parses an integer amount already expressed in base units, e.g. a coin balance.
func ParseBaseUnits(units string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(units), 10)
	if !ok || v.Sign() < 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q is not a base unit amount", units)
	}

	return v, nil
}

// FormatAmount renders base units for display, e.g. 1500000 -> "1.500000 Mi".
func FormatAmount(units *big.Int) string {
	if units == nil {
		units = new(big.Int)
	}

	return decimal.NewFromBigInt(units, -Decimals).StringFixed(Decimals) + " " + DisplaySuffix
}
