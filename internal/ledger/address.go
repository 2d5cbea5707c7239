package ledger

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// AddressLength is the byte length of account addresses and object IDs.
const AddressLength = 32

var ErrInvalidAddress = errors.New("invalid address")

// NormalizeAddress validates a 0x-prefixed hex address and returns it left padded
// to 32 bytes in lowercase, e.g. "0x2" becomes "0x000…002".
func NormalizeAddress(address string) (string, error) {
	trimmed := strings.TrimSpace(address)
	if !strings.HasPrefix(trimmed, "0x") && !strings.HasPrefix(trimmed, "0X") {
		return "", errors.Wrapf(ErrInvalidAddress, "%q must start with 0x", address)
	}

	digits := trimmed[2:]
	if len(digits) == 0 || len(digits) > AddressLength*2 {
		return "", errors.Wrapf(ErrInvalidAddress, "%q must have 1 to %d hex digits", address, AddressLength*2)
	}

	if len(digits)%2 == 1 {
		digits = "0" + digits
	}

	raw, err := hexutil.Decode("0x" + digits)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidAddress, "%q: %v", address, err)
	}

	return hexutil.Encode(common.LeftPadBytes(raw, AddressLength)), nil
}

// NormalizeAddresses normalizes every address, reporting the index of the first invalid one.
func NormalizeAddresses(addresses []string) ([]string, error) {
	out := make([]string, len(addresses))
	for i, a := range addresses {
		n, err := NormalizeAddress(a)
		if err != nil {
			return nil, errors.Wrapf(err, "address %d", i)
		}
		out[i] = n
	}

	return out, nil
}
