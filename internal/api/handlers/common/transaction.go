package common

import (
	"github.com/go-openapi/swag"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/types"
)

// TransactionResponse converts a built transaction into the payload the wallet signs.
func TransactionResponse(tx *ledger.BuiltTransaction) *types.TransactionResponse {
	return &types.TransactionResponse{
		Kind:      swag.String(tx.Kind),
		TxBytes:   swag.String(tx.TxBytes),
		Digest:    swag.String(tx.Digest),
		GasBudget: swag.Uint64(tx.GasBudget),
		PackageID: tx.PackageID,
	}
}
