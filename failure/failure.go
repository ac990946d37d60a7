// Package failure maps catalog errors onto go-errors categories and renders
// them as the "<field>: <message>" strings returned by mutations.
package failure

import (
	"errors"
	"fmt"
	"sort"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to catalog errors.
const (
	CodeValidation     = "VALIDATION_FAILURE"
	CodeNotFound       = "NOT_FOUND"
	CodeAuthentication = "AUTHENTICATION_REQUIRED"
	CodeAuthorization  = "AUTHORIZATION_FAILURE"
	CodeConstraint     = "CONSTRAINT_VIOLATION"
	CodeUnexpected     = "UNEXPECTED_FAILURE"
)

// Kind classifies an error for callers.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindAuthentication
	KindAuthorization
	KindConstraint
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationFailure"
	case KindNotFound:
		return "NotFound"
	case KindAuthentication:
		return "AuthenticationRequired"
	case KindAuthorization:
		return "AuthorizationFailure"
	case KindConstraint:
		return "ConstraintViolation"
	default:
		return "UnexpectedFailure"
	}
}

// Violations collects field level rule violations keyed by field name.
type Violations map[string]string

// Add records msg for field unless the field already failed.
func (v Violations) Add(field, msg string) {
	if _, ok := v[field]; ok {
		return
	}
	v[field] = msg
}

// Err returns a validation error, or nil when there are no violations.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return Validation(v)
}

// Validation builds a ValidationFailure from field violations.
func Validation(fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]goerrors.FieldError, 0, len(names))
	for _, name := range names {
		list = append(list, goerrors.FieldError{Field: name, Message: fields[name]})
	}

	return goerrors.NewValidation("validation failed", list...).
		WithTextCode(CodeValidation)
}

// NotFound builds the error returned when a record of kind is missing.
func NotFound(kind string) error {
	return goerrors.New(kind+" not found", goerrors.CategoryNotFound).
		WithTextCode(CodeNotFound)
}

// AuthenticationRequired is returned when no verified identity accompanies a call.
func AuthenticationRequired() error {
	return goerrors.New("authentication required", goerrors.CategoryAuth).
		WithTextCode(CodeAuthentication)
}

// InvalidCredentials wraps a token verification failure.
func InvalidCredentials(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryAuth, "invalid credentials").
		WithTextCode(CodeAuthentication)
}

// Forbidden is returned when a verified identity may not perform an operation.
func Forbidden(msg string) error {
	return goerrors.New(msg, goerrors.CategoryAuthz).
		WithTextCode(CodeAuthorization)
}

// Constraint wraps a storage level constraint rejection.
func Constraint(err error, field, msg string) error {
	e := goerrors.Wrap(err, goerrors.CategoryConflict, msg).
		WithTextCode(CodeConstraint)
	if field != "" {
		e.ValidationErrors = goerrors.ValidationErrors{{Field: field, Message: msg}}
	}
	return e
}

// Unexpected wraps any other fault.
func Unexpected(err error, msg string) error {
	if err == nil {
		return nil
	}
	var ge *goerrors.Error
	if errors.As(err, &ge) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, msg).
		WithTextCode(CodeUnexpected)
}

// Classify returns the Kind of err.
func Classify(err error) Kind {
	var ge *goerrors.Error
	if !errors.As(err, &ge) {
		return KindUnexpected
	}
	switch ge.Category {
	case goerrors.CategoryValidation:
		return KindValidation
	case goerrors.CategoryNotFound:
		return KindNotFound
	case goerrors.CategoryAuth:
		return KindAuthentication
	case goerrors.CategoryAuthz:
		return KindAuthorization
	case goerrors.CategoryConflict:
		return KindConstraint
	default:
		return KindUnexpected
	}
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool {
	return Classify(err) == KindNotFound
}

// Messages renders err as the list of strings carried by mutation results.
// Field errors become "<field>: <message>"; anything else is its message.
func Messages(err error) []string {
	if err == nil {
		return nil
	}

	var ge *goerrors.Error
	if !errors.As(err, &ge) {
		return []string{err.Error()}
	}

	if len(ge.ValidationErrors) > 0 {
		out := make([]string, 0, len(ge.ValidationErrors))
		for _, fe := range ge.ValidationErrors {
			out = append(out, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
		}
		return out
	}

	if ge.Message != "" {
		return []string{ge.Message}
	}
	return []string{err.Error()}
}
