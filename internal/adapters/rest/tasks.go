package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/example/taskflow/internal/models"
	"github.com/example/taskflow/internal/ports/secondary"
)

// paginated is the backend's paginator envelope for listings.
type paginated[T any] struct {
	Data        []T `json:"data"`
	Total       int `json:"total"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
}

// taskEnvelope wraps a single task in mutation responses.
type taskEnvelope struct {
	Message string       `json:"message"`
	Task    *models.Task `json:"task"`
}

// ListProjects retrieves the projects visible to the caller.
func (c *Client) ListProjects(ctx context.Context) ([]*models.Project, error) {
	var page paginated[*models.Project]
	if err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// GetProject retrieves one project with its member roster.
func (c *Client) GetProject(ctx context.Context, projectID int) (*models.Project, error) {
	var project models.Project
	path := fmt.Sprintf("/projects/%d", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjectTasks retrieves a page of a project's tasks.
func (c *Client) ListProjectTasks(ctx context.Context, projectID int, page secondary.Page) (*secondary.TaskPage, error) {
	path := fmt.Sprintf("/projects/%d/tasks", projectID)
	var resp paginated[*models.Task]
	if err := c.do(ctx, http.MethodGet, path, pageQuery(page.Number, page.PerPage, page.Status), nil, &resp); err != nil {
		return nil, err
	}
	return &secondary.TaskPage{
		Tasks:   resp.Data,
		Total:   resp.Total,
		Page:    resp.CurrentPage,
		PerPage: resp.PerPage,
	}, nil
}

// ListMyTasks retrieves a page of tasks assigned to the caller.
func (c *Client) ListMyTasks(ctx context.Context, page secondary.Page) (*secondary.TaskPage, error) {
	var resp paginated[*models.Task]
	if err := c.do(ctx, http.MethodGet, "/my-tasks", pageQuery(page.Number, page.PerPage, page.Status), nil, &resp); err != nil {
		return nil, err
	}
	return &secondary.TaskPage{
		Tasks:   resp.Data,
		Total:   resp.Total,
		Page:    resp.CurrentPage,
		PerPage: resp.PerPage,
	}, nil
}

// GetTask retrieves one task with assignees and comments.
func (c *Client) GetTask(ctx context.Context, projectID, taskID int) (*models.Task, error) {
	path := fmt.Sprintf("/projects/%d/tasks/%d", projectID, taskID)
	var task models.Task
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask issues a partial task update and returns the refreshed task.
func (c *Client) UpdateTask(ctx context.Context, projectID, taskID int, req secondary.UpdateTaskRequest) (*models.Task, error) {
	path := fmt.Sprintf("/projects/%d/tasks/%d", projectID, taskID)
	var env taskEnvelope
	if err := c.do(ctx, http.MethodPut, path, nil, req, &env); err != nil {
		return nil, err
	}
	return env.Task, nil
}

// AssignUsers replaces the task's assignee set.
func (c *Client) AssignUsers(ctx context.Context, projectID, taskID int, userIDs []int) (*models.Task, error) {
	path := fmt.Sprintf("/projects/%d/tasks/%d/assign", projectID, taskID)
	body := map[string][]int{"assignees": userIDs}
	var env taskEnvelope
	if err := c.do(ctx, http.MethodPut, path, nil, body, &env); err != nil {
		return nil, err
	}
	return env.Task, nil
}

// AcceptTask fires the acceptance transition.
func (c *Client) AcceptTask(ctx context.Context, projectID, taskID int) (*models.Task, error) {
	path := fmt.Sprintf("/projects/%d/tasks/%d/accept", projectID, taskID)
	var env taskEnvelope
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Task, nil
}

// AddComment appends a comment and returns the refreshed task.
func (c *Client) AddComment(ctx context.Context, projectID, taskID int, content string) (*models.Task, error) {
	path := fmt.Sprintf("/projects/%d/tasks/%d/comments", projectID, taskID)
	body := map[string]string{"content": content}
	var env taskEnvelope
	if err := c.do(ctx, http.MethodPost, path, nil, body, &env); err != nil {
		return nil, err
	}
	return env.Task, nil
}
