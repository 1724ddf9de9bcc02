// Package errs provides the typed errors shared by the order engine.
//
// Every kind follows the same shape:
//   - a sentinel (ErrObjectNotFound, ErrTransitionIsInvalid, ...) usable with errors.Is
//   - a struct carrying the details, usable with errors.As
//   - constructors with and without a cause
//
// The kinds map onto the failure classes callers must tell apart:
//   - ObjectNotFoundError: unknown order, code, product or student
//   - TransitionIsInvalidError: the order's current status does not allow the change
//   - AccessDeniedError: the operator does not own the targeted product
//   - StorageFailureError: the evidence object store rejected a write
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: input validation
package errs
