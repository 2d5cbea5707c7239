package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PublicHTTPErrorType is the machine readable error type returned with every error response.
type PublicHTTPErrorType string

const (
	PublicHTTPErrorTypeGeneric                PublicHTTPErrorType = "generic"
	PublicHTTPErrorTypeINVALIDINDEX           PublicHTTPErrorType = "INVALID_INDEX"
	PublicHTTPErrorTypeBELOWMINIMUMRECIPIENTS PublicHTTPErrorType = "BELOW_MINIMUM_RECIPIENTS"
	PublicHTTPErrorTypeTOOMANYRECIPIENTS      PublicHTTPErrorType = "TOO_MANY_RECIPIENTS"
	PublicHTTPErrorTypeSESSIONNOTFOUND        PublicHTTPErrorType = "SESSION_NOT_FOUND"
	PublicHTTPErrorTypeINVALIDRECIPIENTSET    PublicHTTPErrorType = "INVALID_RECIPIENT_SET"
	PublicHTTPErrorTypeINVALIDRECIPIENT       PublicHTTPErrorType = "INVALID_RECIPIENT"
	PublicHTTPErrorTypeINSUFFICIENTBALANCE    PublicHTTPErrorType = "INSUFFICIENT_BALANCE"
	PublicHTTPErrorTypeREGISTRYNOTFOUND       PublicHTTPErrorType = "REGISTRY_NOT_FOUND"
	PublicHTTPErrorTypeLEDGERUNAVAILABLE      PublicHTTPErrorType = "LEDGER_UNAVAILABLE"
	PublicHTTPErrorTypeFAUCETFAILED           PublicHTTPErrorType = "FAUCET_FAILED"
)

// PublicHTTPError is the body of every error response.
type PublicHTTPError struct {
	// HTTP status code returned for the error
	Code *int64 `json:"status"`
	// More detailed, human-readable, optional explanation of the error
	Detail string `json:"detail,omitempty"`
	// Short, human-readable description of the error
	Title *string `json:"title"`
	// Type of error returned, should be used for client-side error handling
	Type *PublicHTTPErrorType `json:"type"`
}

func (m *PublicHTTPError) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("status", "body", m.Code); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("title", "body", m.Title); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("type", "body", m.Type); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// HTTPValidationErrorDetail describes a single violated field.
type HTTPValidationErrorDetail struct {
	// Error describing field validation failure
	Error *string `json:"error"`
	// Indicates how the invalid field was provided
	In *string `json:"in"`
	// Key of field failing validation
	Key *string `json:"key"`
}

// PublicHTTPValidationError is returned when a payload did not pass validation.
type PublicHTTPValidationError struct {
	PublicHTTPError

	// List of errors received while validating payload against schema
	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}
