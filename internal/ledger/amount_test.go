package ledger_test

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/fluxshare/go-fluxshare/internal/ledger"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1", 1_000_000},
		{"1.5", 1_500_000},
		{"0.000001", 1},
		{"0.0000019", 1},
		{"12.345678", 12_345_678},
		{" 2 ", 2_000_000},
	}

	for _, tt := range tests {
		got, err := ledger.ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, big.NewInt(tt.want), got, tt.in)
	}
}

func TestParseAmountInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "0", "-1", "0.0000001"} {
		_, err := ledger.ParseAmount(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ledger.ErrInvalidAmount), in)
	}
}

func TestParseBaseUnits(t *testing.T) {
	v, err := ledger.ParseBaseUnits("18446744073709551616")
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551616", v.String())

	_, err = ledger.ParseBaseUnits("-5")
	require.Error(t, err)

	_, err = ledger.ParseBaseUnits("1.5")
	require.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.000001 Mi", ledger.FormatAmount(big.NewInt(1)))
	assert.Equal(t, "0.500000 Mi", ledger.FormatAmount(big.NewInt(500_000)))
	assert.Equal(t, "1.500000 Mi", ledger.FormatAmount(big.NewInt(1_500_000)))
	assert.Equal(t, "1234.000001 Mi", ledger.FormatAmount(big.NewInt(1_234_000_001)))
	assert.Equal(t, "0.000000 Mi", ledger.FormatAmount(nil))
}
