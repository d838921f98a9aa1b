package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/arkamaya/projectflow/pkg/projectflow/core"
	domain "github.com/arkamaya/projectflow/pkg/projectflow/domain"
	"github.com/arkamaya/projectflow/pkg/projectflow/models"
)

// DefinitionStore owns the durable mapping from workflow id to workflow and
// enforces the structural invariants: the default workflow always exists and
// no workflow is left without steps. Every read runs the repair pass first,
// so callers never observe an empty or defaultless store.
type DefinitionStore struct {
	repo  WorkflowDefinitionRepo
	clock core.Clock
}

func NewDefinitionStore(repo WorkflowDefinitionRepo, clock core.Clock) *DefinitionStore {
	return &DefinitionStore{repo: repo, clock: clock}
}

// GetAll returns every stored workflow after the repair pass.
func (s *DefinitionStore) GetAll() ([]domain.Workflow, error) {
	return s.loadRepaired()
}

// GetByID returns the workflow with the given id, or nil when it is absent.
func (s *DefinitionStore) GetByID(id string) (*domain.Workflow, error) {
	workflows, err := s.loadRepaired()
	if err != nil {
		return nil, err
	}
	for i := range workflows {
		if workflows[i].ID == id {
			return &workflows[i], nil
		}
	}
	return nil, nil
}

// Add creates a workflow with a freshly generated id, seeded with the
// canonical step structure. Callers customise the steps afterwards via
// Update; a workflow is never created empty.
func (s *DefinitionStore) Add(name, description string) (*domain.Workflow, error) {
	workflows, err := s.loadRepaired()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	wf := domain.Workflow{
		ID:          newWorkflowID(workflows),
		Name:        name,
		Description: description,
		Steps:       CanonicalSteps(),
		Created:     now,
		Updated:     now,
	}
	workflows = append(workflows, wf)
	if err := s.repo.ReplaceAll(workflows); err != nil {
		return nil, fmt.Errorf("save workflows: %w", err)
	}
	slog.Info("Workflow added", "id", wf.ID, "name", wf.Name)
	return &wf, nil
}

// Update merges the supplied fields onto the existing workflow and persists
// the result. The id is immutable. Returns ErrWorkflowNotFound for an
// unknown id.
func (s *DefinitionStore) Update(id string, req models.UpdateWorkflowRequest) (*domain.Workflow, error) {
	workflows, err := s.loadRepaired()
	if err != nil {
		return nil, err
	}
	for i := range workflows {
		if workflows[i].ID != id {
			continue
		}
		if req.Name != nil {
			workflows[i].Name = *req.Name
		}
		if req.Description != nil {
			workflows[i].Description = *req.Description
		}
		if req.Steps != nil {
			workflows[i].Steps = req.Steps
		}
		workflows[i].Updated = s.clock.Now()
		if err := s.repo.ReplaceAll(workflows); err != nil {
			return nil, fmt.Errorf("save workflows: %w", err)
		}
		return &workflows[i], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrWorkflowNotFound, id)
}

// Delete removes the workflow. Deleting the default workflow while it is the
// only one in the store is rejected. Should a delete ever leave the store
// empty, the default workflow is reinstated in the same write.
func (s *DefinitionStore) Delete(id string) error {
	workflows, err := s.loadRepaired()
	if err != nil {
		return err
	}
	idx := -1
	for i := range workflows {
		if workflows[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrWorkflowNotFound, id)
	}
	if id == DefaultWorkflowID && len(workflows) == 1 {
		return ErrCannotDeleteLastOrDefaultWorkflow
	}
	workflows = append(workflows[:idx], workflows[idx+1:]...)
	if len(workflows) == 0 {
		slog.Warn("Workflow store emptied, reinstating default workflow", "id", DefaultWorkflowID)
		workflows = append(workflows, s.defaultWorkflow())
	}
	if err := s.repo.ReplaceAll(workflows); err != nil {
		return fmt.Errorf("save workflows: %w", err)
	}
	slog.Info("Workflow deleted", "id", id)
	return nil
}

// AllUniqueStatuses collects the distinct status values across every step of
// every workflow, the full vocabulary of possible project statuses. Sorted
// for stable output; callers do not rely on order.
func (s *DefinitionStore) AllUniqueStatuses() ([]string, error) {
	workflows, err := s.loadRepaired()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	for i := range workflows {
		for _, step := range workflows[i].Steps {
			seen[step.Status] = struct{}{}
		}
	}
	statuses := make([]string, 0, len(seen))
	for status := range seen {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	return statuses, nil
}

// loadRepaired reads the backing store and applies the repair pass:
//   - an unreadable store is treated as empty, never as fatal
//   - the default workflow is synthesized when missing
//   - a default workflow whose step count drifted from the canonical
//     structure is overwritten with it (a coarse force-upgrade heuristic,
//     not a deep diff)
//   - any other workflow with zero steps gets the canonical steps installed
//
// All repairs are persisted with a single write before returning.
func (s *DefinitionStore) loadRepaired() ([]domain.Workflow, error) {
	workflows, err := s.repo.FindAll()
	if err != nil {
		slog.Warn("Workflow store unreadable, treating as empty", "error", err)
		workflows = nil
	}

	repaired := false
	canonical := CanonicalSteps()
	foundDefault := false
	for i := range workflows {
		if workflows[i].ID == DefaultWorkflowID {
			foundDefault = true
			if len(workflows[i].Steps) != len(canonical) {
				slog.Warn("Default workflow structure drifted, overwriting with canonical steps",
					"have", len(workflows[i].Steps), "want", len(canonical))
				workflows[i].Steps = CanonicalSteps()
				workflows[i].Updated = s.clock.Now()
				repaired = true
			}
			continue
		}
		if len(workflows[i].Steps) == 0 {
			slog.Warn("Workflow has no steps, installing canonical structure", "id", workflows[i].ID)
			workflows[i].Steps = CanonicalSteps()
			workflows[i].Updated = s.clock.Now()
			repaired = true
		}
	}
	if !foundDefault {
		slog.Info("Default workflow missing, installing", "id", DefaultWorkflowID)
		workflows = append(workflows, s.defaultWorkflow())
		repaired = true
	}

	if repaired {
		if err := s.repo.ReplaceAll(workflows); err != nil {
			return nil, fmt.Errorf("persist repaired workflows: %w", err)
		}
	}
	return workflows, nil
}

func (s *DefinitionStore) defaultWorkflow() domain.Workflow {
	now := s.clock.Now()
	return domain.Workflow{
		ID:          DefaultWorkflowID,
		Name:        DefaultWorkflowName,
		Description: DefaultWorkflowDescription,
		Steps:       CanonicalSteps(),
		Created:     now,
		Updated:     now,
	}
}

func newWorkflowID(existing []domain.Workflow) string {
	for {
		id := "wf_" + uuid.NewString()
		taken := false
		for i := range existing {
			if existing[i].ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}
