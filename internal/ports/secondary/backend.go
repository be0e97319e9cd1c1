// Package secondary defines the secondary ports (driven adapters) for
// the application. These are the interfaces through which the client
// drives external systems: the REST backend that owns persistence, and
// the local stores holding session and cached task state.
package secondary

import (
	"context"

	"github.com/example/taskflow/internal/models"
)

// Backend defines the secondary port for the task-tracking REST
// collaborator. The backend is authoritative for all persisted state;
// every mutation returns the refreshed entity, which callers apply
// wholesale in place of any local copy.
type Backend interface {
	// Login exchanges credentials for a token and the account.
	Login(ctx context.Context, email, password string) (*AuthPayload, error)

	// Register creates an account and returns a token with it.
	Register(ctx context.Context, req RegisterRequest) (*AuthPayload, error)

	// Logout invalidates the current token server-side.
	Logout(ctx context.Context) error

	// GetCurrentUser returns the account behind the current token.
	// Used to validate a stored token on session restore.
	GetCurrentUser(ctx context.Context) (*models.User, error)

	// ListProjects retrieves the projects visible to the caller.
	ListProjects(ctx context.Context) ([]*models.Project, error)

	// GetProject retrieves one project with its member roster.
	GetProject(ctx context.Context, projectID int) (*models.Project, error)

	// ListProjectTasks retrieves a page of a project's tasks with
	// embedded assignees.
	ListProjectTasks(ctx context.Context, projectID int, page Page) (*TaskPage, error)

	// ListMyTasks retrieves a page of tasks assigned to the caller.
	ListMyTasks(ctx context.Context, page Page) (*TaskPage, error)

	// GetTask retrieves one task with assignees and comments.
	GetTask(ctx context.Context, projectID, taskID int) (*models.Task, error)

	// UpdateTask issues a partial update (progress/status for the
	// caller's own assignment row, or task metadata for managers) and
	// returns the refreshed task.
	UpdateTask(ctx context.Context, projectID, taskID int, req UpdateTaskRequest) (*models.Task, error)

	// AssignUsers replaces the task's assignee set and returns the
	// refreshed task.
	AssignUsers(ctx context.Context, projectID, taskID int, userIDs []int) (*models.Task, error)

	// AcceptTask fires the acceptance transition and returns the
	// refreshed task with accepted_at and accepter populated.
	AcceptTask(ctx context.Context, projectID, taskID int) (*models.Task, error)

	// AddComment appends a comment and returns the refreshed task.
	AddComment(ctx context.Context, projectID, taskID int, content string) (*models.Task, error)
}

// AuthPayload is the login/register response.
type AuthPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RegisterRequest contains parameters for account creation.
type RegisterRequest struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Page selects one page of a paginated listing.
type Page struct {
	Number  int
	PerPage int
	Status  string // optional task-level status filter
}

// TaskPage is one page of a task listing.
type TaskPage struct {
	Tasks   []*models.Task
	Total   int
	Page    int
	PerPage int
}

// UpdateTaskRequest contains the editable task fields. Nil pointers are
// omitted from the request body so the backend only touches what the
// caller set.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Progress    *int    `json:"progress,omitempty"`

	// AssigneeID targets another user's assignment row when a manager
	// writes progress as an override; absent, the backend applies the
	// progress to the caller's own row.
	AssigneeID *int `json:"assignee_id,omitempty"`
}
