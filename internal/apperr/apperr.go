// Package apperr defines the local error taxonomy of the order flow.
//
// Every error here is a user-correctable input problem or a simulated
// gateway outcome. Errors carry a classification kind via Kind().
package apperr

import (
	"context"
	"errors"
)

type kindError struct {
	kind string
	msg  string
}

func (e kindError) Error() string { return e.msg }
func (e kindError) Kind() string  { return e.kind }

var (
	ErrEmptySelection      = kindError{kind: "empty_selection", msg: "nothing selected"}
	ErrMissingPaymentField = kindError{kind: "missing_payment_field", msg: "missing payment field"}
	ErrUnknownMethod       = kindError{kind: "unknown_payment_method", msg: "unknown payment method"}
	ErrPaymentInProgress   = kindError{kind: "payment_in_progress", msg: "payment already in progress"}
	ErrInvalidDate         = kindError{kind: "invalid_date", msg: "invalid date"}
	ErrInvalidPayload      = kindError{kind: "invalid_payload", msg: "invalid order payload"}
	ErrDeclined            = kindError{kind: "payment_declined", msg: "payment declined"}
	ErrNetwork             = kindError{kind: "network_error", msg: "payment network error"}
	ErrVendorUnavailable   = kindError{kind: "vendor_unavailable", msg: "vendor unavailable"}
	ErrBelowMinimumOrder   = kindError{kind: "below_minimum_order", msg: "order is below the vendor minimum"}
	ErrItemUnavailable     = kindError{kind: "item_unavailable", msg: "item unavailable"}
	ErrSlotUnavailable     = kindError{kind: "slot_unavailable", msg: "delivery slot unavailable"}
	ErrInvalidSchedule     = kindError{kind: "invalid_schedule", msg: "invalid delivery schedule"}
)

// FieldError reports a missing or invalid payment field.
// It matches ErrMissingPaymentField under errors.Is.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }
func (e *FieldError) Kind() string  { return ErrMissingPaymentField.kind }

func (e *FieldError) Is(target error) bool {
	return target == ErrMissingPaymentField
}

// MissingField returns a FieldError for field.
func MissingField(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// kinder is satisfied by errors that carry a classification kind.
type kinder interface {
	Kind() string
}

// Kind classifies err. It returns "" for nil and "internal" for
// errors without a kind.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "internal"
	}
}

// Field returns the offending field of a FieldError, or "".
func Field(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
