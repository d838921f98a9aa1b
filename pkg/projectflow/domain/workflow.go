package domain

import (
	"strings"
	"time"
)

// Workflow is a named, ordered graph of steps describing how a project moves
// from creation through its approval stages to completion or cancellation.
type Workflow struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Steps       []Step    `json:"steps"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// Step is one state in a workflow. Lookups key on the (Status, Progress)
// pair, so that pair is expected to be unique within a workflow.
type Step struct {
	StepName              string                `json:"stepName"`
	Status                string                `json:"status"`
	AssignedDivision      string                `json:"assignedDivision"`
	Progress              int                   `json:"progress"`
	NextActionDescription *string               `json:"nextActionDescription"`
	Transitions           map[string]Transition `json:"transitions"`
}

// IsTerminal reports whether the step has no outgoing transitions.
func (s *Step) IsTerminal() bool {
	return s.Transitions == nil
}

// Transition is the effect of taking a named action from a step: the target
// state fields the caller applies onto its project record, plus an optional
// notification directive.
type Transition struct {
	TargetStatus                string        `json:"targetStatus"`
	TargetAssignedDivision      string        `json:"targetAssignedDivision"`
	TargetNextActionDescription *string       `json:"targetNextActionDescription"`
	TargetProgress              int           `json:"targetProgress"`
	Notification                *Notification `json:"notification,omitempty"`
}

// Notification asks the caller to inform a division that a project changed
// state. Message is a template containing a {projectName} placeholder.
type Notification struct {
	Division *string `json:"division"`
	Message  string  `json:"message"`
}

// Render substitutes the {projectName} placeholder in the message template.
func (n *Notification) Render(projectName string) string {
	return strings.ReplaceAll(n.Message, "{projectName}", projectName)
}
