package synthesis

import "fmt"

// FailureReason classifies why the synthesis stage failed. Each reason maps
// to a distinct, user-diagnosable condition; callers can switch on it
// instead of parsing messages.
type FailureReason string

const (
	// ReasonMissingCredential means the API key for the service is not set.
	ReasonMissingCredential FailureReason = "missing_credential"
	// ReasonUpstreamFailure means the remote call itself errored or
	// returned no content.
	ReasonUpstreamFailure FailureReason = "upstream_failure"
	// ReasonInvalidJSON means the model response was not well-formed JSON.
	ReasonInvalidJSON FailureReason = "invalid_json"
	// ReasonSchemaViolation means the response failed strict validation
	// against the collection schema.
	ReasonSchemaViolation FailureReason = "schema_violation"
	// ReasonEmptyInput means there were no collections to merge.
	ReasonEmptyInput FailureReason = "empty_input"
	// ReasonBaseURLMismatch means a response's baseUrl diverged from the
	// request, which signals the model desynchronized from its input.
	ReasonBaseURLMismatch FailureReason = "base_url_mismatch"
)

// Error is the typed failure returned by the synthesis stage. Batch is the
// zero-based index of the batch (or collection) the failure belongs to, or
// -1 when it is not tied to one.
type Error struct {
	Reason FailureReason
	Batch  int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("synthesis failed (%s)", e.Reason)
	if e.Batch >= 0 {
		msg += fmt.Sprintf(" on batch %d", e.Batch)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(reason FailureReason, batch int, format string, args ...interface{}) *Error {
	return &Error{Reason: reason, Batch: batch, Detail: fmt.Sprintf(format, args...)}
}
