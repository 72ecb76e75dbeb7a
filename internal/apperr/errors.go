// Package apperr defines the typed error taxonomy shared by every
// moneybox service. Callers use errors.Is/errors.As against the
// sentinel Kind values rather than matching on message strings.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error the way the core's collaborators need to
// react to it (surface to caller, roll back a tx, treat as fatal...).
type Kind string

const (
	KindNotFound              Kind = "NOT_FOUND"
	KindValidation            Kind = "VALIDATION"
	KindNameConflict          Kind = "NAME_CONFLICT"
	KindPriorityConflict      Kind = "PRIORITY_CONFLICT"
	KindOverflowNotModifiable Kind = "OVERFLOW_NOT_MODIFIABLE"
	KindOverflowNotDeletable  Kind = "OVERFLOW_NOT_DELETABLE"
	KindHasBalance            Kind = "HAS_BALANCE"
	KindNonPositiveAmount     Kind = "NON_POSITIVE_AMOUNT"
	KindBalanceNegative       Kind = "BALANCE_NEGATIVE"
	KindTransferEqualMoneybox Kind = "TRANSFER_EQUAL_MONEYBOX"
	KindInconsistentDatabase  Kind = "INCONSISTENT_DATABASE"
	KindAutomatedSavings      Kind = "AUTOMATED_SAVINGS_ERROR"
	KindStore                Kind = "STORE_ERROR"
	KindNameNotFound          Kind = "NAME_NOT_FOUND"
	KindAdminNotDeletable     Kind = "ADMIN_NOT_DELETABLE"
)

// Error is the concrete error type every service returns for business
// and infrastructure failures. It wraps an optional underlying cause
// and carries structured details for logging.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, apperr.New(kind, "")) match any *Error with
// the same Kind, regardless of message or wrapped cause.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

// New constructs an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an *Error of the given kind wrapping cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// WithDetails attaches structured diagnostic fields and returns e.
func (e *Error) WithDetails(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, and
// ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Convenience constructors mirroring the taxonomy in spec §7.

func NotFound(entity string, id any) *Error {
	return New(KindNotFound, fmt.Sprintf("%s not found", entity)).WithDetails("id", id)
}

func Validation(message string) *Error { return New(KindValidation, message) }

func NameConflict(name string) *Error {
	return New(KindNameConflict, "name already in use among active rows").WithDetails("name", name)
}

func PriorityConflict(priority int) *Error {
	return New(KindPriorityConflict, "priority already in use among active rows").WithDetails("priority", priority)
}

func OverflowNotModifiable() *Error {
	return New(KindOverflowNotModifiable, "the overflow moneybox cannot be modified this way")
}

func OverflowNotDeletable() *Error {
	return New(KindOverflowNotDeletable, "the overflow moneybox cannot be deleted")
}

func HasBalance() *Error {
	return New(KindHasBalance, "moneybox balance must be zero before it can be deleted")
}

func NonPositiveAmount() *Error {
	return New(KindNonPositiveAmount, "amount must be greater than zero")
}

func BalanceNegative() *Error {
	return New(KindBalanceNegative, "operation would drive the balance negative")
}

func TransferEqualMoneybox() *Error {
	return New(KindTransferEqualMoneybox, "source and destination moneybox must differ")
}

func InconsistentDatabase(message string) *Error {
	return New(KindInconsistentDatabase, message)
}

func AutomatedSavings(phase string, cause error) *Error {
	return Wrap(KindAutomatedSavings, "automated savings cycle failed", cause).WithDetails("phase", phase)
}

func Store(cause error) *Error {
	return Wrap(KindStore, "store operation failed", cause)
}

func NameNotFound(boxID any) *Error {
	return New(KindNameNotFound, "no name history entry at or before the requested time").WithDetails("moneybox_id", boxID)
}

func AdminNotDeletable() *Error {
	return New(KindAdminNotDeletable, "an ADMIN user cannot be deleted")
}
