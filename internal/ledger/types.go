package ledger

import (
	"encoding/json"
)

// Balance is the result of iotax_getBalance.
type Balance struct {
	CoinType        string `json:"coinType"`
	CoinObjectCount int64  `json:"coinObjectCount"`
	TotalBalance    string `json:"totalBalance"`
}

// Coin is a single owned coin object.
type Coin struct {
	CoinType            string `json:"coinType"`
	CoinObjectID        string `json:"coinObjectId"`
	Version             string `json:"version"`
	Digest              string `json:"digest"`
	Balance             string `json:"balance"`
	PreviousTransaction string `json:"previousTransaction"`
}

// CoinPage is one page of iotax_getCoins.
type CoinPage struct {
	Data        []Coin  `json:"data"`
	NextCursor  *string `json:"nextCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

type ObjectResponse struct {
	Data  *ObjectData     `json:"data"`
	Error json.RawMessage `json:"error,omitempty"`
}

type ObjectData struct {
	ObjectID string         `json:"objectId"`
	Version  string         `json:"version"`
	Digest   string         `json:"digest"`
	Type     string         `json:"type"`
	Content  *ObjectContent `json:"content"`
}

// ObjectContent holds the Move struct fields of an object, as requested with showContent.
type ObjectContent struct {
	DataType string          `json:"dataType"`
	Type     string          `json:"type"`
	Fields   json.RawMessage `json:"fields"`
}

// TransactionBlockBytes is the result of unsafe_moveCall.
type TransactionBlockBytes struct {
	Gas          []json.RawMessage `json:"gas"`
	InputObjects []json.RawMessage `json:"inputObjects"`
	TxBytes      string            `json:"txBytes"`
}

// BuiltTransaction is an unsigned transaction ready to be signed by the sender's wallet.
type BuiltTransaction struct {
	Kind      string
	Sender    string
	PackageID string
	TxBytes   string
	// Digest is the keccak256 hash of the raw transaction bytes, used to reference
	// the transaction before it has an on-chain digest.
	Digest    string
	GasBudget uint64
}
