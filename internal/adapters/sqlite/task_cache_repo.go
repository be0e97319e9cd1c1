package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/taskflow/internal/models"
)

// TaskCacheRepository implements secondary.TaskCache with SQLite.
// Entries hold the last server-confirmed task subtree and are replaced
// wholesale on every successful sync.
type TaskCacheRepository struct {
	db *sql.DB
}

// NewTaskCacheRepository creates a new SQLite task cache repository.
func NewTaskCacheRepository(db *sql.DB) *TaskCacheRepository {
	return &TaskCacheRepository{db: db}
}

// Put stores a task subtree, replacing any existing entry.
func (r *TaskCacheRepository) Put(ctx context.Context, task *models.Task) error {
	taskJSON, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task %d: %w", task.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO task_cache (task_id, project_id, task_json, synced_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(task_id) DO UPDATE SET
			project_id = excluded.project_id,
			task_json = excluded.task_json,
			synced_at = CURRENT_TIMESTAMP`,
		task.ID, task.ProjectID, string(taskJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to cache task %d: %w", task.ID, err)
	}
	return nil
}

// Get returns a cached task, or nil if absent.
func (r *TaskCacheRepository) Get(ctx context.Context, taskID int) (*models.Task, error) {
	var taskJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT task_json FROM task_cache WHERE task_id = ?`, taskID,
	).Scan(&taskJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached task %d: %w", taskID, err)
	}

	var task models.Task
	if err := json.Unmarshal([]byte(taskJSON), &task); err != nil {
		return nil, fmt.Errorf("failed to parse cached task %d: %w", taskID, err)
	}
	return &task, nil
}

// Delete removes a cached task.
func (r *TaskCacheRepository) Delete(ctx context.Context, taskID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_cache WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("failed to delete cached task %d: %w", taskID, err)
	}
	return nil
}

// Purge removes all cached tasks.
func (r *TaskCacheRepository) Purge(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_cache`); err != nil {
		return fmt.Errorf("failed to purge task cache: %w", err)
	}
	return nil
}
