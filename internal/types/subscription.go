package types

import (
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

const (
	planNameMaxLength        = 128
	planDescriptionMaxLength = 1024
)

type PostSubscriptionRegistryPayload struct {
	Sender *string `json:"sender"`
}

func (m *PostSubscriptionRegistryPayload) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validateAddress("sender", "body", m.Sender); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

// PostCreatePlanPayload creates a subscription plan in a registry.
type PostCreatePlanPayload struct {
	Sender      *string `json:"sender"`
	RegistryID  *string `json:"registryId"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	// Price per period in display units
	Price *string `json:"price"`
	// Billing period in days
	PeriodDays *int64 `json:"periodDays"`
}

func (m *PostCreatePlanPayload) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validateAddress("sender", "body", m.Sender); err != nil {
		res = append(res, err)
	}

	if err := validateAddress("registryId", "body", m.RegistryID); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("name", "body", m.Name); err != nil {
		res = append(res, err)
	} else if err := validate.MaxLength("name", "body", *m.Name, planNameMaxLength); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("description", "body", m.Description); err != nil {
		res = append(res, err)
	} else if err := validate.MaxLength("description", "body", *m.Description, planDescriptionMaxLength); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("price", "body", m.Price); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("periodDays", "body", m.PeriodDays); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

// PostSubscribePayload subscribes the sender to a plan, paying the first period.
type PostSubscribePayload struct {
	Sender     *string `json:"sender"`
	RegistryID *string `json:"registryId"`
	PlanID     *int64  `json:"planId"`
	// Payment in display units; defaults to the plan price
	Amount string `json:"amount,omitempty"`
}

func (m *PostSubscribePayload) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validateAddress("sender", "body", m.Sender); err != nil {
		res = append(res, err)
	}

	if err := validateAddress("registryId", "body", m.RegistryID); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("planId", "body", m.PlanID); err != nil {
		res = append(res, err)
	} else if err := validate.MinimumInt("planId", "body", *m.PlanID, 0, false); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

// PostSubscriptionActionPayload is shared by renew and cancel.
type PostSubscriptionActionPayload struct {
	Sender     *string `json:"sender"`
	RegistryID *string `json:"registryId"`
}

func (m *PostSubscriptionActionPayload) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validateAddress("sender", "body", m.Sender); err != nil {
		res = append(res, err)
	}

	if err := validateAddress("registryId", "body", m.RegistryID); err != nil {
		res = append(res, err)
	}

	return composite(res)
}

type SubscriptionPlanItem struct {
	PlanID          *int64  `json:"planId"`
	Owner           *string `json:"owner"`
	Name            *string `json:"name"`
	Description     string  `json:"description"`
	Price           *string `json:"price"`
	FormattedPrice  string  `json:"formattedPrice"`
	PeriodInSeconds *int64  `json:"periodInSeconds"`
	FormattedPeriod string  `json:"formattedPeriod"`
	Active          *bool   `json:"active"`
	CreatedAt       int64   `json:"createdAt"`
	// Status of the caller's subscription to this plan, empty if not subscribed
	SubscriptionStatus string `json:"subscriptionStatus,omitempty"`
	SubscriptionID     *int64 `json:"subscriptionId,omitempty"`
	NextPaymentDue     int64  `json:"nextPaymentDue,omitempty"`
}

type GetSubscriptionPlansResponse struct {
	Plans []*SubscriptionPlanItem `json:"plans"`
}

func (m *GetSubscriptionPlansResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("plans", "body", m.Plans); err != nil {
		res = append(res, err)
	}

	for _, p := range m.Plans {
		if err := validate.Required("planId", "body", p.PlanID); err != nil {
			res = append(res, err)
		}
		if err := validate.Required("name", "body", p.Name); err != nil {
			res = append(res, err)
		}
	}

	return composite(res)
}
