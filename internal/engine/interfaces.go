package engine

import (
	domain "github.com/arkamaya/projectflow/pkg/projectflow/domain"
)

// WorkflowDefinitionRepo is the persistence collaborator for workflow
// definitions, matching repository.ProjectWorkflowRepository. FindAll must
// treat a missing backing store as empty rather than failing; the store's
// repair pass recreates the default workflow on the next read. ReplaceAll
// writes the full workflow set and must report failures.
type WorkflowDefinitionRepo interface {
	FindAll() ([]domain.Workflow, error)
	ReplaceAll(workflows []domain.Workflow) error
}
