package engine

import (
	"errors"
	"reflect"
	"testing"
	"time"

	domain "github.com/arkamaya/projectflow/pkg/projectflow/domain"
	"github.com/arkamaya/projectflow/pkg/projectflow/models"
)

// MockDefinitionRepo is an in-memory stand-in for the SQL repository. The
// Func fields override the default map-backed behaviour when set.
type MockDefinitionRepo struct {
	Workflows      []domain.Workflow
	FindAllFunc    func() ([]domain.Workflow, error)
	ReplaceAllFunc func(workflows []domain.Workflow) error
	WriteCount     int
}

func (m *MockDefinitionRepo) FindAll() ([]domain.Workflow, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc()
	}
	return append([]domain.Workflow(nil), m.Workflows...), nil
}

func (m *MockDefinitionRepo) ReplaceAll(workflows []domain.Workflow) error {
	m.WriteCount++
	if m.ReplaceAllFunc != nil {
		return m.ReplaceAllFunc(workflows)
	}
	m.Workflows = append([]domain.Workflow(nil), workflows...)
	return nil
}

type fakeClock struct {
	now time.Time
}

func (f fakeClock) Now() time.Time                         { return f.now }
func (f fakeClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (f fakeClock) Sleep(d time.Duration)                  {}

func newTestStore(repo *MockDefinitionRepo) *DefinitionStore {
	return NewDefinitionStore(repo, fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)})
}

// seededDefault builds a default workflow that needs no repair.
func seededDefault() domain.Workflow {
	return domain.Workflow{
		ID:          DefaultWorkflowID,
		Name:        DefaultWorkflowName,
		Description: DefaultWorkflowDescription,
		Steps:       CanonicalSteps(),
	}
}

func TestGetAll_EmptyStoreInstallsDefault(t *testing.T) {
	repo := &MockDefinitionRepo{}
	store := newTestStore(repo)

	workflows, err := store.GetAll()
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	if len(workflows) != 1 {
		t.Fatalf("Expected 1 workflow, got %d", len(workflows))
	}
	if workflows[0].ID != DefaultWorkflowID {
		t.Errorf("Expected default workflow id %s, got %s", DefaultWorkflowID, workflows[0].ID)
	}
	if len(workflows[0].Steps) != len(CanonicalSteps()) {
		t.Errorf("Expected %d canonical steps, got %d", len(CanonicalSteps()), len(workflows[0].Steps))
	}
	if repo.WriteCount != 1 {
		t.Errorf("Expected the repair to be persisted once, got %d writes", repo.WriteCount)
	}
}

func TestGetAll_UnreadableStoreTreatedAsEmpty(t *testing.T) {
	repo := &MockDefinitionRepo{
		FindAllFunc: func() ([]domain.Workflow, error) {
			return nil, errors.New("backing store corrupted")
		},
	}
	store := newTestStore(repo)

	workflows, err := store.GetAll()
	if err != nil {
		t.Fatalf("GetAll should not fail on an unreadable store: %v", err)
	}
	if len(workflows) != 1 || workflows[0].ID != DefaultWorkflowID {
		t.Errorf("Expected only the reinstated default workflow, got %v", workflows)
	}
}

func TestGetAll_RepairIsIdempotent(t *testing.T) {
	repo := &MockDefinitionRepo{}
	store := newTestStore(repo)

	if _, err := store.GetAll(); err != nil {
		t.Fatalf("first GetAll: %v", err)
	}
	writes := repo.WriteCount
	if _, err := store.GetAll(); err != nil {
		t.Fatalf("second GetAll: %v", err)
	}
	if repo.WriteCount != writes {
		t.Errorf("Second GetAll should not write again, writes went %d -> %d", writes, repo.WriteCount)
	}
}

func TestGetAll_StepCountDriftOverwritesDefault(t *testing.T) {
	drifted := seededDefault()
	drifted.Name = "Customized Name"
	drifted.Steps = drifted.Steps[:2]
	repo := &MockDefinitionRepo{Workflows: []domain.Workflow{drifted}}
	store := newTestStore(repo)

	workflows, err := store.GetAll()
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	if len(workflows[0].Steps) != len(CanonicalSteps()) {
		t.Errorf("Expected drifted default to be overwritten with %d steps, got %d",
			len(CanonicalSteps()), len(workflows[0].Steps))
	}
	if workflows[0].Name != "Customized Name" {
		t.Errorf("Repair should only replace steps, name became %q", workflows[0].Name)
	}
}

func TestGetAll_ZeroStepWorkflowRepaired(t *testing.T) {
	repo := &MockDefinitionRepo{Workflows: []domain.Workflow{
		seededDefault(),
		{ID: "wf_custom", Name: "Custom"},
	}}
	store := newTestStore(repo)

	workflows, err := store.GetAll()
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	for _, wf := range workflows {
		if len(wf.Steps) == 0 {
			t.Errorf("Workflow %s still has zero steps after repair", wf.ID)
		}
	}
	if repo.WriteCount != 1 {
		t.Errorf("Expected one persisted repair, got %d writes", repo.WriteCount)
	}
}

func TestGetByID(t *testing.T) {
	repo := &MockDefinitionRepo{Workflows: []domain.Workflow{seededDefault()}}
	store := newTestStore(repo)

	wf, err := store.GetByID(DefaultWorkflowID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if wf == nil || wf.ID != DefaultWorkflowID {
		t.Fatalf("Expected default workflow, got %v", wf)
	}

	missing, err := store.GetByID("wf_nope")
	if err != nil {
		t.Fatalf("GetByID for unknown id returned error: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown id, got %v", missing)
	}
}

func TestAdd_SeedsCanonicalStepsWithUniqueID(t *testing.T) {
	repo := &MockDefinitionRepo{Workflows: []domain.Workflow{seededDefault()}}
	store := newTestStore(repo)

	wf, err := store.Add("Fast Track", "desc")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if wf.ID == "" || wf.ID == DefaultWorkflowID {
		t.Errorf("Expected a fresh unique id, got %q", wf.ID)
	}
	if wf.Name != "Fast Track" || wf.Description != "desc" {
		t.Errorf("Name/description not applied: %q %q", wf.Name, wf.Description)
	}
	if !reflect.DeepEqual(wf.Steps, CanonicalSteps()) {
		t.Error("Expected new workflow steps to deep-equal the canonical structure")
	}
	if len(repo.Workflows) != 2 {
		t.Errorf("Expected workflow to be persisted, store has %d records", len(repo.Workflows))
	}
}

func TestUpdate_MergesFields(t *testing.T) {
	repo := &MockDefinitionRepo{Workflows: []domain.Workflow{seededDefault()}}
	store := newTestStore(repo)

	name := "Renamed"
	wf, err := store.Update(DefaultWorkflowID, models.UpdateWorkflowRequest{Name: &name})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if wf.Name != "Renamed" {
		t.Errorf("Expected name Renamed, got %q", wf.Name)
	}
	if wf.Description != DefaultWorkflowDescription {
		t.Errorf("Description should be unchanged, got %q", wf.Description)
	}
	if len(wf.Steps) != len(CanonicalSteps()) {
		t.Errorf("Steps should be unchanged, got %d", len(wf.Steps))
	}

	steps := []domain.Step{{StepName: "Only", Status: "Solo", Progress: 10}}
	wf, err = store.Update(DefaultWorkflowID, models.UpdateWorkflowRequest{Steps: steps})
	if err != nil {
		t.Fatalf("Update with steps returned error: %v", err)
	}
	if len(wf.Steps) != 1 || wf.Steps[0].Status != "Solo" {
		t.Errorf("Expected replacement steps, got %v", wf.Steps)
	}
}

func TestUpdate_UnknownIDFails(t *testing.T) {
	repo := &MockDefinitionRepo{Workflows: []domain.Workflow{seededDefault()}}
	store := newTestStore(repo)

	name := "x"
	_, err := store.Update("wf_nope", models.UpdateWorkflowRequest{Name: &name})
	if !errors.Is(err, ErrWorkflowNotFound) {
		t.Errorf("Expected ErrWorkflowNotFound, got %v", err)
	}
}

func TestDelete_LastDefaultRejected(t *testing.T) {
	repo := &MockDefinitionRepo{Workflows: []domain.Workflow{seededDefault()}}
	store := newTestStore(repo)

	err := store.Delete(DefaultWorkflowID)
	if !errors.Is(err, ErrCannotDeleteLastOrDefaultWorkflow) {
		t.Fatalf("Expected ErrCannotDeleteLastOrDefaultWorkflow, got %v", err)
	}
	if len(repo.Workflows) != 1 || repo.Workflows[0].ID != DefaultWorkflowID {
		t.Errorf("Store should be unchanged after rejected delete, got %v", repo.Workflows)
	}
}

func TestDelete_UnknownIDFails(t *testing.T) {
	repo := &MockDefinitionRepo{Workflows: []domain.Workflow{seededDefault()}}
	store := newTestStore(repo)

	err := store.Delete("wf_nope")
	if !errors.Is(err, ErrWorkflowNotFound) {
		t.Errorf("Expected ErrWorkflowNotFound, got %v", err)
	}
}

func TestDelete_DefaultComesBackOnNextRead(t *testing.T) {
	custom := seededDefault()
	custom.ID = "wf_custom"
	custom.Name = "Custom"
	repo := &MockDefinitionRepo{Workflows: []domain.Workflow{seededDefault(), custom}}
	store := newTestStore(repo)

	// deleting the default is allowed while another workflow survives
	if err := store.Delete(DefaultWorkflowID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	workflows, err := store.GetAll()
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	found := false
	for _, wf := range workflows {
		if wf.ID == DefaultWorkflowID {
			found = true
		}
	}
	if !found {
		t.Error("Expected the default workflow to be reinstated on the next read")
	}
}

func TestAllUniqueStatuses(t *testing.T) {
	custom := seededDefault()
	custom.ID = "wf_custom"
	custom.Steps = append(CanonicalSteps(), domain.Step{
		StepName: "Extra", Status: "On Hold", AssignedDivision: domain.DivisionOwner, Progress: 5,
	})
	repo := &MockDefinitionRepo{Workflows: []domain.Workflow{seededDefault(), custom}}
	store := newTestStore(repo)

	statuses, err := store.AllUniqueStatuses()
	if err != nil {
		t.Fatalf("AllUniqueStatuses returned error: %v", err)
	}
	seen := make(map[string]int)
	for _, s := range statuses {
		seen[s]++
	}
	for _, want := range []string{StatusPendingOffer, StatusCompleted, StatusCanceled, "On Hold"} {
		if seen[want] != 1 {
			t.Errorf("Expected status %q exactly once, got %d", want, seen[want])
		}
	}
}

func TestAdd_SaveFailurePropagates(t *testing.T) {
	repo := &MockDefinitionRepo{
		Workflows: []domain.Workflow{seededDefault()},
		ReplaceAllFunc: func(workflows []domain.Workflow) error {
			return errors.New("disk full")
		},
	}
	store := newTestStore(repo)

	if _, err := store.Add("Doomed", ""); err == nil {
		t.Error("Expected the save failure to propagate")
	}
}
