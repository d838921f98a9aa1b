package engine

import (
	"fmt"
	"log/slog"

	domain "github.com/arkamaya/projectflow/pkg/projectflow/domain"
)

// Resolver computes what happens next for a project given its workflow, its
// current (status, progress) pair and the action taken. It holds no mutable
// state; every call reads through the store, repair pass included. The
// resolver never dispatches notifications itself, it returns the directive
// on the chosen transition for the caller to render and send.
type Resolver struct {
	store *DefinitionStore
}

func NewResolver(store *DefinitionStore) *Resolver {
	return &Resolver{store: store}
}

// fallbackActions are tried in order when the requested action has no entry
// on the current step.
var fallbackActions = []string{ActionDefault, ActionSubmitted}

// ResolveTransition looks up the step matching (currentStatus,
// currentProgress) in the workflow and returns the transition for the action
// taken, falling back to "default" then "submitted" when the action has no
// entry. A terminal step yields (nil, nil): the project is done, not in
// error. Steps are matched in slice order; if duplicate (status, progress)
// pairs exist the first match is authoritative.
func (r *Resolver) ResolveTransition(workflowID, currentStatus string, currentProgress int, actionTaken string) (*domain.Transition, error) {
	wf, err := r.store.GetByID(workflowID)
	if err != nil {
		return nil, err
	}
	if wf == nil {
		return nil, fmt.Errorf("%w: %s", ErrWorkflowNotFound, workflowID)
	}

	step := findStep(wf, currentStatus, currentProgress)
	if step == nil {
		return nil, fmt.Errorf("%w: workflow %s has no step for status %q at progress %d",
			ErrStepNotFound, workflowID, currentStatus, currentProgress)
	}
	if step.IsTerminal() {
		return nil, nil
	}

	if t, ok := step.Transitions[actionTaken]; ok {
		return &t, nil
	}
	for _, fallback := range fallbackActions {
		if t, ok := step.Transitions[fallback]; ok {
			slog.Debug("Action not defined on step, using fallback",
				"action", actionTaken, "fallback", fallback, "status", currentStatus)
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q from status %q at progress %d",
		ErrNoMatchingTransition, actionTaken, currentStatus, currentProgress)
}

// FirstStep returns the initial step of the workflow, used when a project is
// created. An unknown workflow id yields (nil, nil), not a failure.
func (r *Resolver) FirstStep(workflowID string) (*domain.Step, error) {
	wf, err := r.store.GetByID(workflowID)
	if err != nil || wf == nil {
		return nil, err
	}
	if len(wf.Steps) == 0 {
		// the repair pass keeps this from happening
		return nil, nil
	}
	return &wf.Steps[0], nil
}

func findStep(wf *domain.Workflow, status string, progress int) *domain.Step {
	for i := range wf.Steps {
		if wf.Steps[i].Status == status && wf.Steps[i].Progress == progress {
			return &wf.Steps[i]
		}
	}
	return nil
}
