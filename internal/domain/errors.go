package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an ad does not exist, or exists but the
// caller lacks ownership. Both cases surface identically so that
// non-owners cannot probe for existence.
var ErrNotFound = errors.New("ad not found")

// ValidationError reports malformed or missing input. It maps to a
// 4xx response at the transport layer.
type ValidationError struct {
	Message string
	Fields  []string
}

// NewValidationError creates a ValidationError with a single message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// NewFieldValidationError creates a ValidationError listing the
// offending fields.
func NewFieldValidationError(msg string, fields ...string) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Fields, ", ")
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ReferenceNotFoundError reports an inventory reference id that does
// not resolve to an active entity. On create/update it is surfaced as
// a validation failure, since it indicates bad input.
type ReferenceNotFoundError struct {
	Kind string // manufacturer, model, variant, fuel_type, transmission_type
	ID   string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s reference %q not found", e.Kind, e.ID)
}

// AggregateReferenceErrors folds a list of reference failures into a
// single ValidationError listing every invalid reference.
func AggregateReferenceErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	fields := make([]string, 0, len(errs))
	for _, err := range errs {
		var ref *ReferenceNotFoundError
		if errors.As(err, &ref) {
			fields = append(fields, ref.Kind+"="+ref.ID)
			continue
		}
		// Non-reference failures (resolver down etc.) are infrastructure
		// errors and take precedence over the aggregate.
		return err
	}
	return NewFieldValidationError("invalid inventory references", fields...)
}

// OrphanDataError reports a data-integrity violation: a base ad
// without its detail record, or a detail record without its ad. It is
// only raised by the consistency scan, never on the read/write path.
type OrphanDataError struct {
	AdID     string
	Category AdCategory
	Reason   string
}

func (e *OrphanDataError) Error() string {
	return fmt.Sprintf("orphan data for ad %s (%s): %s", e.AdID, e.Category, e.Reason)
}

// InfrastructureError wraps a store or resolver failure (unreachable,
// timeout). Retried a bounded number of times at the call site, then
// surfaced as a 5xx-equivalent.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError wraps err with the failing operation name.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}
