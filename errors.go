package rageval

import "errors"

// ErrRagEval is the root error for the library.
// All typed errors defined here wrap it, so callers can match any library
// failure with errors.Is(err, rageval.ErrRagEval).
var ErrRagEval = errors.New("rageval")

// DefaultEvaluationMessage is the message used by EvaluationError when none
// is given.
const DefaultEvaluationMessage = "Error during evaluation."

// EvaluationError signals a failure during the evaluation phase.
// The orchestrator itself does not raise it; it exists for callers and
// metric implementations to mark evaluation-specific failures distinctly
// from generic errors.
type EvaluationError struct {
	Message string
}

// NewEvaluationError creates an EvaluationError with the given message,
// or the default message if message is empty.
func NewEvaluationError(message string) *EvaluationError {
	if message == "" {
		message = DefaultEvaluationMessage
	}
	return &EvaluationError{Message: message}
}

func (e *EvaluationError) Error() string {
	return e.Message
}

func (e *EvaluationError) Unwrap() error {
	return ErrRagEval
}

// ValidationError reports an inconsistency detected while constructing an
// EvalResult, such as mismatched metric and score counts.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrRagEval
}
