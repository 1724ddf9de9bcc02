package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrTransitionIsInvalid = errors.New("transition is invalid")
	ErrAccessDenied        = errors.New("access denied")
	ErrStorageFailure      = errors.New("storage failure")
)

// ObjectNotFoundError reports a lookup that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that failed a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing input.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// TransitionIsInvalidError reports a status change the order's current status does not allow.
type TransitionIsInvalidError struct {
	From  string
	To    string
	Cause error
}

func NewTransitionIsInvalidError(from, to string) *TransitionIsInvalidError {
	return &TransitionIsInvalidError{From: from, To: to}
}

func NewTransitionIsInvalidErrorWithCause(from, to string, cause error) *TransitionIsInvalidError {
	return &TransitionIsInvalidError{From: from, To: to, Cause: cause}
}

func (e *TransitionIsInvalidError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s", ErrTransitionIsInvalid, e.From, e.To)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the cause, so callers can match
// either the generic kind or a specific refinement such as order.ErrAlreadyDelivered.
func (e *TransitionIsInvalidError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrTransitionIsInvalid, e.Cause}
	}
	return []error{ErrTransitionIsInvalid}
}

// AccessDeniedError reports an operator acting on something they do not own.
type AccessDeniedError struct {
	Principal string
	Resource  string
}

func NewAccessDeniedError(principal, resource string) *AccessDeniedError {
	return &AccessDeniedError{Principal: principal, Resource: resource}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: %s may not act on %s", ErrAccessDenied, e.Principal, e.Resource)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

// StorageFailureError reports an object-store operation that failed.
type StorageFailureError struct {
	Operation string
	Key       string
	Cause     error
}

func NewStorageFailureError(operation, key string, cause error) *StorageFailureError {
	return &StorageFailureError{Operation: operation, Key: key, Cause: cause}
}

func (e *StorageFailureError) Error() string {
	return fmt.Sprintf("%s: %s %s (cause: %v)", ErrStorageFailure, e.Operation, e.Key, e.Cause)
}

func (e *StorageFailureError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrStorageFailure, e.Cause}
	}
	return []error{ErrStorageFailure}
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprint(v), "\n", " ")
}
