package models

import (
	domain "github.com/arkamaya/projectflow/pkg/projectflow/domain"
)

// UpdateWorkflowRequest carries the fields that may be merged onto an
// existing workflow. Nil fields are left unchanged. The workflow id itself is
// immutable and has no place here.
type UpdateWorkflowRequest struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	Steps       []domain.Step `json:"steps,omitempty"`
}
