// Package apperr defines the error taxonomy shared by services and handlers.
// Every business failure is a typed error so callers can tell retryable
// store failures apart from validation and business-rule rejections.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError covers malformed or incomplete input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError covers a missing referenced entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// OrderCompletedError rejects receivings against an already completed order.
type OrderCompletedError struct {
	OrderID string
}

func (e *OrderCompletedError) Error() string {
	return fmt.Sprintf("restock order %s is already completed and accepts no further receivings", e.OrderID)
}

// OverReceiptError rejects a receiving line that would push the received
// quantity past the ordered quantity.
type OverReceiptError struct {
	ProductID       string
	AlreadyReceived int
	Requested       int
	Ordered         int
}

func (e *OverReceiptError) Error() string {
	return fmt.Sprintf("received quantity exceeds ordered quantity for product %s (%d already received, %d requested, %d ordered)",
		e.ProductID, e.AlreadyReceived, e.Requested, e.Ordered)
}

// InsufficientStockError rejects a stock mutation that would go negative.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (%d available, %d requested)",
		e.ProductID, e.Available, e.Requested)
}

// OrderHasReceivingsError guards restock order edits and deletions once a
// receiving exists: stock and audit records reference the current item set.
type OrderHasReceivingsError struct {
	OrderID string
}

func (e *OrderHasReceivingsError) Error() string {
	return fmt.Sprintf("restock order %s has recorded receivings and can no longer be edited or deleted", e.OrderID)
}

// TransactionError wraps a store-level commit failure. Nothing partial was
// committed, so the whole operation is safe to retry.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: transaction failed: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

func Transaction(op string, err error) *TransactionError {
	return &TransactionError{Op: op, Err: err}
}

// IsDomain reports whether err is one of the typed business errors, as
// opposed to an infrastructure failure that should be wrapped and retried.
// A TransactionError is never a domain error, even when its cause is one:
// the wrap means the failure happened at the store.
func IsDomain(err error) bool {
	var (
		te *TransactionError
		ve *ValidationError
		nf *NotFoundError
		oc *OrderCompletedError
		or *OverReceiptError
		is *InsufficientStockError
		hr *OrderHasReceivingsError
	)
	if errors.As(err, &te) {
		return false
	}
	return errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &oc) ||
		errors.As(err, &or) || errors.As(err, &is) || errors.As(err, &hr)
}

// HTTPStatus maps an error to the status code handlers should respond with.
// TransactionError wins first so a wrapped business error cannot turn a
// store failure into a 4xx.
func HTTPStatus(err error) int {
	var (
		te *TransactionError
		ve *ValidationError
		nf *NotFoundError
		oc *OrderCompletedError
		or *OverReceiptError
		is *InsufficientStockError
		hr *OrderHasReceivingsError
	)
	switch {
	case errors.As(err, &te):
		return 500
	case errors.As(err, &ve):
		return 400
	case errors.As(err, &nf):
		return 404
	case errors.As(err, &oc), errors.As(err, &or), errors.As(err, &is), errors.As(err, &hr):
		return 409
	default:
		return 500
	}
}
