package engine

import "fmt"

// Validation failure reasons.
const (
	ReasonMissingEndpoint     = "missing_endpoint"
	ReasonInvertedRange       = "inverted_range"
	ReasonOutOfSupportedYears = "out_of_supported_years"
	ReasonBadDate             = "bad_date"
	ReasonBadType             = "bad_type"
	ReasonEmptyName           = "empty_name"
)

// ValidationError reports rejected user input. A mutation that returns one
// has not touched any state.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports an operation on a missing entry identifier.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entry not found: %s", e.ID)
}

// MalformedSnapshotError reports an import document that is not a well-formed
// snapshot object. The importer keeps the prior state when it occurs.
type MalformedSnapshotError struct {
	Err error
}

func (e *MalformedSnapshotError) Error() string {
	return fmt.Sprintf("malformed snapshot: %v", e.Err)
}

func (e *MalformedSnapshotError) Unwrap() error {
	return e.Err
}

func validationf(reason, format string, args ...any) *ValidationError {
	return &ValidationError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}
