/*
errors.go - Error types for the booking domain

PURPOSE:
  Sentinel errors for the outcome taxonomy (not-found, access-denied,
  not-editable, blocked delete) and the field-attached ValidationErrors type
  surfaced to users. Callers classify with errors.Is/As; the HTTP layer maps
  each class to a status code.

SEE ALSO:
  - validate.go: Produces ValidationErrors and gating errors
  - api/handlers.go: Maps these to HTTP responses
*/
package booking

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced booking, user, or absence
	// type does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied is returned when the actor is neither the owner, the
	// owner's manager, nor an admin.
	ErrAccessDenied = errors.New("access denied")

	// ErrNotEditable is returned when a plain owner tries to edit a booking
	// whose approval state is no longer Pending.
	ErrNotEditable = errors.New("booking is not editable: approval state is not pending")

	// ErrDeleteStarted is returned when a plain owner tries to delete an
	// approved booking after it has started.
	ErrDeleteStarted = errors.New("approved booking already started; ask your manager to remove it")

	// ErrInvalidApprovalState is returned when an approval decision is
	// neither Approved nor Denied.
	ErrInvalidApprovalState = errors.New("invalid approval state")
)

// IsNotFound reports whether err indicates a missing record.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAccessError reports whether err is an authorization outcome.
func IsAccessError(err error) bool {
	return errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrNotEditable) || errors.Is(err, ErrDeleteStarted)
}

// =============================================================================
// VALIDATION ERRORS - Field-attached, user-facing
// =============================================================================

// FieldError is a user-facing validation message attached to an input field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// ValidationErrors collects every violation found before an operation is
// rejected. An empty slice means the input passed.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// HasErrors reports whether any violation was recorded.
func (v ValidationErrors) HasErrors() bool { return len(v) > 0 }

// ByField returns the messages attached to a field.
func (v ValidationErrors) ByField(field string) []string {
	var msgs []string
	for _, e := range v {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

func (v *ValidationErrors) add(field, format string, args ...any) {
	*v = append(*v, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}
