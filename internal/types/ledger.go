package types

import (
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

type BalanceResponse struct {
	Address *string `json:"address"`
	// Total balance in base units
	TotalBalance     *string `json:"totalBalance"`
	FormattedBalance string  `json:"formattedBalance"`
	CoinObjectCount  int64   `json:"coinObjectCount"`
}

func (m *BalanceResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("address", "body", m.Address); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("totalBalance", "body", m.TotalBalance); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

type PostFaucetPayload struct {
	Address *string `json:"address"`
}

func (m *PostFaucetPayload) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validateAddress("address", "body", m.Address); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

type FaucetResponse struct {
	Message *string `json:"message"`
	TaskID  string  `json:"taskId,omitempty"`
}

func (m *FaucetResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("message", "body", m.Message); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

type ActivityItem struct {
	ID        *string          `json:"id"`
	Kind      *string          `json:"kind"`
	Sender    *string          `json:"sender"`
	PackageID string           `json:"packageId"`
	TxDigest  *string          `json:"txDigest"`
	CreatedAt *strfmt.DateTime `json:"createdAt"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
}

type GetActivityResponse struct {
	Entries []*ActivityItem `json:"entries"`
}

func (m *GetActivityResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("entries", "body", m.Entries); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

// ValidateQueryAddress validates an address passed as query parameter.
func ValidateQueryAddress(name string, value string) error {
	return validateParamAddress(name, "query", value)
}

// ValidatePathAddress validates an address or object ID passed as path parameter.
func ValidatePathAddress(name string, value string) error {
	return validateParamAddress(name, "path", value)
}

func validateParamAddress(name string, in string, value string) error {
	if err := validate.RequiredString(name, in, value); err != nil {
		return err
	}

	return validateOptionalAddress(name, in, value)
}
