package errors

import (
	"errors"
	"fmt"
)

// Kind sentinels. Every typed failure below matches exactly one of them via errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrAuthorization        = errors.New("not authorized")
	ErrNotAvailable         = errors.New("offer not available")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrConflict             = errors.New("conflict")
)

// Reason identifies which offer invariant a ValidationError violates.
type Reason string

const (
	ReasonInvalidTitleLength   Reason = "invalid_title_length"
	ReasonDescriptionTooLong   Reason = "description_too_long"
	ReasonPriceExceedsOriginal Reason = "price_exceeds_original"
	ReasonInvalidQuantity      Reason = "invalid_quantity"
	ReasonInvalidPickupWindow  Reason = "invalid_pickup_window"
	ReasonCurrencyMismatch     Reason = "currency_mismatch"
	ReasonInvalidMoney         Reason = "invalid_money"
	ReasonInvalidStatus        Reason = "invalid_status"
)

// Reason sentinels, usable as errors.Is targets.
var (
	ErrInvalidTitleLength   = &ValidationError{Reason: ReasonInvalidTitleLength}
	ErrDescriptionTooLong   = &ValidationError{Reason: ReasonDescriptionTooLong}
	ErrPriceExceedsOriginal = &ValidationError{Reason: ReasonPriceExceedsOriginal}
	ErrInvalidQuantity      = &ValidationError{Reason: ReasonInvalidQuantity}
	ErrInvalidPickupWindow  = &ValidationError{Reason: ReasonInvalidPickupWindow}
	ErrCurrencyMismatch     = &ValidationError{Reason: ReasonCurrencyMismatch}
	ErrInvalidMoney         = &ValidationError{Reason: ReasonInvalidMoney}
	ErrInvalidStatus        = &ValidationError{Reason: ReasonInvalidStatus}
)

// ValidationError reports a violated offer invariant. It is always caller-fixable.
type ValidationError struct {
	Reason Reason
	Detail string
}

// Validation builds a ValidationError with a formatted detail message.
func Validation(reason Reason, format string, args ...any) *ValidationError {
	return &ValidationError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Reason, e.Detail)
}

// Is matches ErrValidation and any ValidationError with the same reason.
func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	t, ok := target.(*ValidationError)
	return ok && t.Reason == e.Reason
}

// AuthorizationError is returned when the caller does not own the target offer.
type AuthorizationError struct {
	Detail string
}

func (e *AuthorizationError) Error() string {
	if e.Detail == "" {
		return ErrAuthorization.Error()
	}
	return fmt.Sprintf("%s: %s", ErrAuthorization, e.Detail)
}

func (e *AuthorizationError) Is(target error) bool { return target == ErrAuthorization }

// NotAvailableError is returned when the offer status forbids the operation.
type NotAvailableError struct {
	Status string
}

func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("%s (status=%s)", ErrNotAvailable, e.Status)
}

func (e *NotAvailableError) Is(target error) bool { return target == ErrNotAvailable }

// InsufficientQuantityError is returned when a reservation exceeds the remaining stock.
type InsufficientQuantityError struct {
	Requested int
	Available int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("%s: requested=%d available=%d", ErrInsufficientQuantity, e.Requested, e.Available)
}

func (e *InsufficientQuantityError) Is(target error) bool { return target == ErrInsufficientQuantity }

// InvalidTransitionError is returned when a requested status change is not an allowed edge.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// ConflictError reports a structural conflict such as deleting an offer with reservations.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string {
	if e.Detail == "" {
		return ErrConflict.Error()
	}
	return fmt.Sprintf("%s: %s", ErrConflict, e.Detail)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// Kind returns a stable label for the failure class of err.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrAuthorization):
		return "authorization"
	case errors.Is(err, ErrNotAvailable):
		return "not_available"
	case errors.Is(err, ErrInsufficientQuantity):
		return "insufficient_quantity"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}

// IsBusiness reports whether err is one of the domain failures above rather than an infrastructure fault.
func IsBusiness(err error) bool {
	k := Kind(err)
	return k != "ok" && k != "internal"
}
