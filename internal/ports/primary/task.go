package primary

import (
	"context"

	"github.com/example/taskflow/internal/models"
)

// TaskService defines the primary port for task operations. Mutations
// run the core guards client-side before any request is issued, and on
// success replace cached state wholesale with the server's response.
type TaskService interface {
	// ListProjectTasks lists a page of a project's tasks.
	ListProjectTasks(ctx context.Context, projectID int, filters TaskFilters) (*TaskList, error)

	// ListMyTasks lists a page of tasks assigned to the current user.
	ListMyTasks(ctx context.Context, filters TaskFilters) (*TaskList, error)

	// GetTask retrieves one task with assignees and comments, seeding
	// the local cache with the server copy.
	GetTask(ctx context.Context, projectID, taskID int) (*models.Task, error)

	// RecordProgress writes the current user's (or, with management
	// override, another assignee's) progress and optional status.
	RecordProgress(ctx context.Context, req RecordProgressRequest) (*models.Task, error)

	// UpdateTask updates manager-owned task fields (status, priority,
	// metadata).
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)

	// AssignUsers replaces the task's assignee set.
	AssignUsers(ctx context.Context, projectID, taskID int, userIDs []int) (*models.Task, error)

	// AcceptTask fires the one-way acceptance transition.
	AcceptTask(ctx context.Context, projectID, taskID int) (*models.Task, error)

	// AddComment appends a comment to the task.
	AddComment(ctx context.Context, projectID, taskID int, content string) (*models.Task, error)
}

// ProjectService defines the primary port for project reads.
type ProjectService interface {
	// ListProjects lists the projects visible to the current user.
	ListProjects(ctx context.Context) ([]*models.Project, error)

	// GetProject retrieves one project with its member roster.
	GetProject(ctx context.Context, projectID int) (*models.Project, error)
}

// TaskFilters contains filter options for task listings.
type TaskFilters struct {
	Status  string
	Page    int
	PerPage int
}

// TaskList is one page of tasks.
type TaskList struct {
	Tasks   []*models.Task
	Total   int
	Page    int
	PerPage int
}

// RecordProgressRequest contains parameters for a progress write.
// AssigneeID names the row being written; it defaults to the current
// user and requires management rights when it names anyone else.
// Status may be empty, in which case only progress is sent and the
// completed-at-100 normalization still applies.
type RecordProgressRequest struct {
	ProjectID  int
	TaskID     int
	AssigneeID int
	Progress   int
	Status     string
}

// UpdateTaskRequest contains parameters for a manager metadata update.
// Nil fields are left untouched.
type UpdateTaskRequest struct {
	ProjectID   int
	TaskID      int
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *string
}
