package types

import (
	"net/http"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

const (
	splitterNameMaxLength = 128
	maxRecipients         = 200
)

// SplitterSessionResponse is the current state of a payment splitter draft.
type SplitterSessionResponse struct {
	// Session ID
	ID *strfmt.UUID `json:"id"`
	// Recipients in display order
	Recipients []*Recipient `json:"recipients"`
	// Sum of all shares
	Total *float64 `json:"total"`
	// Whether the total is within tolerance of 100
	ValidTotal *bool `json:"validTotal"`
	// Removal floor for this session
	MinimumRecipients *int64 `json:"minimumRecipients"`
	// Time after which an idle session is discarded
	ExpiresAt *strfmt.DateTime `json:"expiresAt"`
	// Localized, user facing message about the last operation, if any
	Message string `json:"message,omitempty"`
}

func (m *SplitterSessionResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("id", "body", m.ID); err != nil {
		res = append(res, err)
	} else if err := validate.FormatOf("id", "body", "uuid", m.ID.String(), formats); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("recipients", "body", m.Recipients); err != nil {
		res = append(res, err)
	}

	for _, r := range m.Recipients {
		if r == nil {
			continue
		}
		if err := r.Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if err := validate.Required("total", "body", m.Total); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("validTotal", "body", m.ValidTotal); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("minimumRecipients", "body", m.MinimumRecipients); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("expiresAt", "body", m.ExpiresAt); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

// PostAddRecipientPayload adds a recipient to a draft. Without share the new recipient
// takes whatever is left under 100.
type PostAddRecipientPayload struct {
	Address string   `json:"address,omitempty"`
	Share   *float64 `json:"share,omitempty"`
}

func (m *PostAddRecipientPayload) Validate(_ strfmt.Registry) error {
	var res []error

	if m.Share != nil {
		if err := validate.Minimum("share", "body", *m.Share, 0, false); err != nil {
			res = append(res, err)
		}
		if err := validate.Maximum("share", "body", *m.Share, 100, false); err != nil {
			res = append(res, err)
		}
	}

	return composite(res)
}

// PutRecipientSharePayload changes the share of one recipient. Negative values are ignored.
type PutRecipientSharePayload struct {
	Share *float64 `json:"share"`
}

func (m *PutRecipientSharePayload) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("share", "body", m.Share); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

type PutRecipientAddressPayload struct {
	Address *string `json:"address"`
}

func (m *PutRecipientAddressPayload) Validate(_ strfmt.Registry) error {
	var res []error

	if m.Address == nil {
		res = append(res, validate.Required("address", "body", m.Address))
	}

	return composite(res)
}

// PostSubmitSplitterPayload finalizes a draft into a create_splitter transaction.
type PostSubmitSplitterPayload struct {
	// Plan name
	Name *string `json:"name"`
	// Address of the connected wallet that signs the transaction
	Sender *string `json:"sender"`
	// Object ID of the splitter registry
	RegistryID *string `json:"registryId"`
}

func (m *PostSubmitSplitterPayload) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("name", "body", m.Name); err != nil {
		res = append(res, err)
	} else {
		if err := validate.MinLength("name", "body", *m.Name, 1); err != nil {
			res = append(res, err)
		}
		if err := validate.MaxLength("name", "body", *m.Name, splitterNameMaxLength); err != nil {
			res = append(res, err)
		}
	}

	if err := validateAddress("sender", "body", m.Sender); err != nil {
		res = append(res, err)
	}

	if err := validateAddress("registryId", "body", m.RegistryID); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

type SubmitSplitterResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	// Recipient addresses as passed to the contract
	Recipients []string `json:"recipients"`
	// Recipient shares in basis points, summing to 10000
	Shares []uint64 `json:"shares"`
}

func (m *SubmitSplitterResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("transaction", "body", m.Transaction); err != nil {
		res = append(res, err)
	} else if err := m.Transaction.Validate(formats); err != nil {
		res = append(res, err)
	}

	if err := validate.MinItems("recipients", "body", int64(len(m.Recipients)), 1); err != nil {
		res = append(res, err)
	}

	if len(m.Shares) != len(m.Recipients) {
		res = append(res, errors.New(http.StatusUnprocessableEntity, "shares must have one entry per recipient"))
	}

	return composite(res)
}

// PostPreviewPayload previews how an amount would be split across recipients.
type PostPreviewPayload struct {
	// Amount in display units, up to 6 fraction digits
	Amount *string `json:"amount"`
	// Recipients of the split
	Recipients []*Recipient `json:"recipients"`
}

func (m *PostPreviewPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("amount", "body", m.Amount); err != nil {
		res = append(res, err)
	}

	if err := validate.MinItems("recipients", "body", int64(len(m.Recipients)), 1); err != nil {
		res = append(res, err)
	}

	if err := validate.MaxItems("recipients", "body", int64(len(m.Recipients)), maxRecipients); err != nil {
		res = append(res, err)
	}

	for _, r := range m.Recipients {
		if r == nil {
			res = append(res, validate.Required("recipients", "body", r))
			continue
		}
		if err := r.Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	return composite(res)
}

type DistributionLine struct {
	Address         *string `json:"address"`
	Share           float64 `json:"share"`
	BasisPoints     uint64  `json:"basisPoints"`
	Amount          *string `json:"amount"`
	FormattedAmount string  `json:"formattedAmount"`
	// Set when the recipient receives nothing from this amount
	ZeroAmount bool `json:"zeroAmount"`
}

type PreviewResponse struct {
	// Total amount in base units
	Total          *string             `json:"total"`
	FormattedTotal string              `json:"formattedTotal"`
	Lines          []*DistributionLine `json:"lines"`
}

func (m *PreviewResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("total", "body", m.Total); err != nil {
		res = append(res, err)
	}

	for _, l := range m.Lines {
		if err := validate.Required("amount", "body", l.Amount); err != nil {
			res = append(res, err)
		}
	}

	return composite(res)
}

// PostSplitterRegistryPayload requests the transaction creating a splitter registry.
type PostSplitterRegistryPayload struct {
	Sender *string `json:"sender"`
}

func (m *PostSplitterRegistryPayload) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validateAddress("sender", "body", m.Sender); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

// PostProcessPaymentPayload pays an amount into an existing splitter.
type PostProcessPaymentPayload struct {
	Sender     *string `json:"sender"`
	RegistryID *string `json:"registryId"`
	SplitterID *int64  `json:"splitterId"`
	Amount     *string `json:"amount"`
}

func (m *PostProcessPaymentPayload) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validateAddress("sender", "body", m.Sender); err != nil {
		res = append(res, err)
	}

	if err := validateAddress("registryId", "body", m.RegistryID); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("splitterId", "body", m.SplitterID); err != nil {
		res = append(res, err)
	} else if err := validate.MinimumInt("splitterId", "body", *m.SplitterID, 0, false); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("amount", "body", m.Amount); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

// PutUpdateRecipientsPayload replaces the recipients of an existing splitter.
type PutUpdateRecipientsPayload struct {
	Sender     *string      `json:"sender"`
	RegistryID *string      `json:"registryId"`
	Recipients []*Recipient `json:"recipients"`
}

func (m *PutUpdateRecipientsPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validateAddress("sender", "body", m.Sender); err != nil {
		res = append(res, err)
	}

	if err := validateAddress("registryId", "body", m.RegistryID); err != nil {
		res = append(res, err)
	}

	if err := validate.MinItems("recipients", "body", int64(len(m.Recipients)), 1); err != nil {
		res = append(res, err)
	}

	if err := validate.MaxItems("recipients", "body", int64(len(m.Recipients)), maxRecipients); err != nil {
		res = append(res, err)
	}

	for _, r := range m.Recipients {
		if r == nil {
			res = append(res, validate.Required("recipients", "body", r))
			continue
		}
		if err := r.Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	return composite(res)
}
