package query

import "fmt"

// KindInvalidQuery is the Kind of every compile-time Error
const KindInvalidQuery = "Invalid query"

// Error is a query rejected before anything was sent to the store
type Error struct {
	Kind  string
	Model string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalid(model string, err error) *Error {
	return &Error{Kind: KindInvalidQuery, Model: model, Err: err}
}

// StoreError is a query the store failed to run
type StoreError struct {
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("aggregate on %s failed: %v", e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
