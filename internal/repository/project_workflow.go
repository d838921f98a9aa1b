package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/arkamaya/projectflow/pkg/projectflow/domain"
)

// ProjectWorkflowRepository persists workflow definitions in the
// project_workflows table. Steps are stored as a single JSON document per
// workflow, the way the original flat-file store kept them, so the schema
// stays identical across Postgres, MySQL and SQLite.
type ProjectWorkflowRepository struct {
	db *sql.DB
}

func NewProjectWorkflowRepository(db *sql.DB) *ProjectWorkflowRepository {
	return &ProjectWorkflowRepository{db: db}
}

// FindAll returns every stored workflow. An empty table yields an empty
// slice, never an error.
func (r *ProjectWorkflowRepository) FindAll() ([]domain.Workflow, error) {
	query := `
		SELECT id, name, description, steps, created, updated
		FROM project_workflows
		ORDER BY created, id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workflows := make([]domain.Workflow, 0)
	for rows.Next() {
		var wf domain.Workflow
		var steps string
		if err := rows.Scan(&wf.ID, &wf.Name, &wf.Description, &steps, &wf.Created, &wf.Updated); err != nil {
			return nil, err
		}
		if steps != "" && steps != "null" {
			if err := json.Unmarshal([]byte(steps), &wf.Steps); err != nil {
				return nil, fmt.Errorf("decode steps for workflow %s: %w", wf.ID, err)
			}
		}
		workflows = append(workflows, wf)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return workflows, nil
}

// ReplaceAll writes the full workflow set in one transaction: every record
// is upserted and rows absent from the set are deleted.
func (r *ProjectWorkflowRepository) ReplaceAll(workflows []domain.Workflow) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, wf := range workflows {
		steps, err := json.Marshal(wf.Steps)
		if err != nil {
			return fmt.Errorf("encode steps for workflow %s: %w", wf.ID, err)
		}
		if err := upsertWorkflow(tx, wf, string(steps)); err != nil {
			return err
		}
	}
	if err := deleteAbsent(tx, workflows); err != nil {
		return err
	}
	return tx.Commit()
}

func upsertWorkflow(tx *sql.Tx, wf domain.Workflow, steps string) error {
	var query string
	if supportsOnConflict() {
		query = `
			INSERT INTO project_workflows (id, name, description, steps, created, updated)
			VALUES (` + placeholder(1) + `, ` + placeholder(2) + `, ` + placeholder(3) + `, ` + placeholder(4) + `, ` + placeholder(5) + `, ` + placeholder(6) + `)
			ON CONFLICT (id)
			DO UPDATE SET name = EXCLUDED.name,
				description = EXCLUDED.description,
				steps = EXCLUDED.steps,
				updated = EXCLUDED.updated
		`
	} else {
		query = `
			INSERT INTO project_workflows (id, name, description, steps, created, updated)
			VALUES (` + placeholder(1) + `, ` + placeholder(2) + `, ` + placeholder(3) + `, ` + placeholder(4) + `, ` + placeholder(5) + `, ` + placeholder(6) + `)
			ON DUPLICATE KEY UPDATE name = VALUES(name),
				description = VALUES(description),
				steps = VALUES(steps),
				updated = VALUES(updated)
		`
	}
	_, err := tx.Exec(query, wf.ID, wf.Name, wf.Description, steps, wf.Created, wf.Updated)
	return err
}

func deleteAbsent(tx *sql.Tx, workflows []domain.Workflow) error {
	if len(workflows) == 0 {
		_, err := tx.Exec(`DELETE FROM project_workflows`)
		return err
	}
	pps := make([]string, 0, len(workflows))
	ids := make([]interface{}, 0, len(workflows))
	for i, wf := range workflows {
		pps = append(pps, placeholder(i+1))
		ids = append(ids, wf.ID)
	}
	query := `DELETE FROM project_workflows WHERE id NOT IN (` + strings.Join(pps, ", ") + `)`
	_, err := tx.Exec(query, ids...)
	return err
}
