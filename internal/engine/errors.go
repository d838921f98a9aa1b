package engine

import "errors"

// Failure conditions surfaced to callers as named errors so API layers can
// map them to precise user-facing messages. A terminal step is not an error;
// the resolver returns a nil transition for those.
var (
	// ErrWorkflowNotFound is returned when a workflow id does not exist.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrStepNotFound is returned when a project's (status, progress) pair
	// matches no step in its workflow. This indicates a stale or invalid
	// project record, a data-integrity problem rather than a user error.
	ErrStepNotFound = errors.New("no step matches the current status and progress")

	// ErrNoMatchingTransition is returned when the requested action has no
	// transition on the current step and neither fallback applies.
	ErrNoMatchingTransition = errors.New("no transition for action")

	// ErrCannotDeleteLastOrDefaultWorkflow rejects deleting the default
	// workflow while it is the only workflow in the store.
	ErrCannotDeleteLastOrDefaultWorkflow = errors.New("cannot delete the last or default workflow")
)
