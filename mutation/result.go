package mutation

import "github.com/goliatone/go-catalog/failure"

// Result is the outcome of a create or update.
// Entity is the zero value and Errors is non-empty when Success is false.
// Failure classifies the first error and is only meaningful on failure.
type Result[T any] struct {
	Entity  T            `json:"entity"`
	Success bool         `json:"success"`
	Errors  []string     `json:"errors"`
	Failure failure.Kind `json:"-"`
}

// DeleteResult is the outcome of a delete.
type DeleteResult struct {
	Success bool         `json:"success"`
	Errors  []string     `json:"errors"`
	Failure failure.Kind `json:"-"`
}

func succeeded[T any](entity T) Result[T] {
	return Result[T]{Entity: entity, Success: true}
}

func failed[T any](errs []string) Result[T] {
	var zero T
	return Result[T]{Entity: zero, Success: false, Errors: errs}
}
