package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// addressPattern matches a ledger account or object reference: 0x followed by 1 to 64 hex characters.
const addressPattern = `^0x[0-9a-fA-F]{1,64}$`

func validateAddress(path, in string, value *string) error {
	if err := validate.Required(path, in, value); err != nil {
		return err
	}

	if err := validate.Pattern(path, in, *value, addressPattern); err != nil {
		return err
	}

	return nil
}

func validateOptionalAddress(path, in string, value string) error {
	if value == "" {
		return nil
	}

	if err := validate.Pattern(path, in, value, addressPattern); err != nil {
		return err
	}

	return nil
}

func composite(res []error) error {
	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// Recipient is a single (address, share) pair of a recipient set.
type Recipient struct {
	// Ledger address of the recipient, may be empty while drafting
	Address string `json:"address"`
	// Share in percentage points
	Share *float64 `json:"share"`
}

func (m *Recipient) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("share", "body", m.Share); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

// TransactionResponse carries an unsigned transaction the wallet has to sign and execute.
type TransactionResponse struct {
	// Transaction kind, e.g. create_splitter
	Kind *string `json:"kind"`
	// Base64 encoded unsigned transaction bytes
	TxBytes *string `json:"txBytes"`
	// Hex encoded Keccak-256 digest of the transaction bytes
	Digest *string `json:"digest"`
	// Gas budget the transaction was built with
	GasBudget *uint64 `json:"gasBudget"`
	// Package the transaction calls into
	PackageID string `json:"packageId,omitempty"`
}

func (m *TransactionResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.RequiredString("kind", "body", derefString(m.Kind)); err != nil {
		res = append(res, err)
	}

	if err := validate.RequiredString("txBytes", "body", derefString(m.TxBytes)); err != nil {
		res = append(res, err)
	}

	if err := validate.RequiredString("digest", "body", derefString(m.Digest)); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("gasBudget", "body", m.GasBudget); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
