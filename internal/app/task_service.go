package app

import (
	"context"
	"fmt"

	"github.com/example/taskflow/internal/core/acceptance"
	"github.com/example/taskflow/internal/core/fault"
	"github.com/example/taskflow/internal/core/ledger"
	"github.com/example/taskflow/internal/core/role"
	"github.com/example/taskflow/internal/models"
	"github.com/example/taskflow/internal/ports/primary"
	"github.com/example/taskflow/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface. Mutations run
// the core guards against the last known local view before any request
// goes out; the backend remains authoritative and its response payload
// replaces the cached subtree wholesale on success.
type TaskServiceImpl struct {
	backend secondary.Backend
	cache   secondary.TaskCache
	holder  *SessionHolder
	log     secondary.LogWriter
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(
	backend secondary.Backend,
	cache secondary.TaskCache,
	holder *SessionHolder,
	log secondary.LogWriter,
) *TaskServiceImpl {
	return &TaskServiceImpl{
		backend: backend,
		cache:   cache,
		holder:  holder,
		log:     log,
	}
}

// caller returns the current user's capability set, or an unauthorized
// fault when no session is active.
func (s *TaskServiceImpl) caller() (role.Capabilities, error) {
	session := s.holder.Get()
	if session == nil || session.User == nil {
		return role.Capabilities{}, fault.New(fault.KindUnauthorized, "not logged in")
	}
	return role.Resolve(session.User), nil
}

// canManage reports whether caps may mutate manager-owned fields on
// tasks under projectID: admins always, otherwise the project roster is
// consulted for the incharge relationship.
func (s *TaskServiceImpl) canManage(ctx context.Context, caps role.Capabilities, projectID int) (bool, error) {
	if caps.IsAdmin {
		return true, nil
	}
	project, err := s.backend.GetProject(ctx, projectID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve project %d: %w", projectID, err)
	}
	return caps.CanManageProject(project), nil
}

// localTask returns the last known view of a task, fetching and caching
// it when absent.
func (s *TaskServiceImpl) localTask(ctx context.Context, projectID, taskID int) (*models.Task, error) {
	task, err := s.cache.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task != nil {
		return task, nil
	}
	return s.GetTask(ctx, projectID, taskID)
}

// ListProjectTasks lists a page of a project's tasks and re-seeds the
// cache with every task in the page.
func (s *TaskServiceImpl) ListProjectTasks(ctx context.Context, projectID int, filters primary.TaskFilters) (*primary.TaskList, error) {
	if _, err := s.caller(); err != nil {
		return nil, err
	}
	page, err := s.backend.ListProjectTasks(ctx, projectID, secondary.Page{
		Number:  filters.Page,
		PerPage: filters.PerPage,
		Status:  filters.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return s.seedPage(ctx, page)
}

// ListMyTasks lists a page of tasks assigned to the current user.
func (s *TaskServiceImpl) ListMyTasks(ctx context.Context, filters primary.TaskFilters) (*primary.TaskList, error) {
	if _, err := s.caller(); err != nil {
		return nil, err
	}
	page, err := s.backend.ListMyTasks(ctx, secondary.Page{
		Number:  filters.Page,
		PerPage: filters.PerPage,
		Status:  filters.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return s.seedPage(ctx, page)
}

func (s *TaskServiceImpl) seedPage(ctx context.Context, page *secondary.TaskPage) (*primary.TaskList, error) {
	for _, task := range page.Tasks {
		if err := s.cache.Put(ctx, task); err != nil {
			return nil, err
		}
	}
	return &primary.TaskList{
		Tasks:   page.Tasks,
		Total:   page.Total,
		Page:    page.Page,
		PerPage: page.PerPage,
	}, nil
}

// GetTask retrieves one task and re-seeds the cache with the server copy.
func (s *TaskServiceImpl) GetTask(ctx context.Context, projectID, taskID int) (*models.Task, error) {
	if _, err := s.caller(); err != nil {
		return nil, err
	}
	task, err := s.backend.GetTask(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// RecordProgress writes an assignment row's progress and optional
// status. The completed-at-100 normalization is applied before the
// guards run, so a bare progress=100 write carries completed status to
// the backend as well.
func (s *TaskServiceImpl) RecordProgress(ctx context.Context, req primary.RecordProgressRequest) (*models.Task, error) {
	caps, err := s.caller()
	if err != nil {
		return nil, err
	}

	assigneeID := req.AssigneeID
	if assigneeID == 0 {
		assigneeID = caps.UserID
	}

	task, err := s.localTask(ctx, req.ProjectID, req.TaskID)
	if err != nil {
		return nil, err
	}

	progress, status := ledger.Normalize(req.Progress, req.Status)

	// Only an override of someone else's row needs the project roster;
	// a user writing their own row is owner-authorized.
	manage := false
	if assigneeID != caps.UserID {
		manage, err = s.canManage(ctx, caps, req.ProjectID)
		if err != nil {
			return nil, err
		}
	}

	guard := ledger.CanRecordProgress(ledger.RecordProgressContext{
		TaskID:       task.ID,
		AssigneeID:   assigneeID,
		IsAssigned:   task.AssignmentFor(assigneeID) != nil,
		TaskAccepted: task.IsAccepted(),
		CallerID:     caps.UserID,
		CanManage:    manage,
		Progress:     progress,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	update := secondary.UpdateTaskRequest{Progress: &progress}
	if status != "" {
		update.Status = &status
	}
	if assigneeID != caps.UserID {
		update.AssigneeID = &assigneeID
	}

	m := beginMutation(task)
	fresh, err := s.backend.UpdateTask(ctx, req.ProjectID, req.TaskID, update)
	if err != nil {
		m.rollback()
		return nil, err
	}

	settled := m.settle(fresh)
	if err := s.cache.Put(ctx, settled); err != nil {
		return nil, err
	}
	_ = s.log.LogAction(ctx, "record_progress", "task", task.ID,
		fmt.Sprintf("assignee=%d progress=%d status=%s", assigneeID, progress, status))
	return settled, nil
}

// UpdateTask updates manager-owned task fields. Metadata edits remain
// possible after acceptance; only assignment progress/status writes are
// frozen by the lock.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, req primary.UpdateTaskRequest) (*models.Task, error) {
	caps, err := s.caller()
	if err != nil {
		return nil, err
	}

	manage, err := s.canManage(ctx, caps, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if !manage {
		return nil, fault.New(fault.KindForbidden,
			"only an admin or the project incharge may edit task %d", req.TaskID)
	}

	task, err := s.localTask(ctx, req.ProjectID, req.TaskID)
	if err != nil {
		return nil, err
	}

	m := beginMutation(task)
	fresh, err := s.backend.UpdateTask(ctx, req.ProjectID, req.TaskID, secondary.UpdateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		m.rollback()
		return nil, err
	}

	settled := m.settle(fresh)
	if err := s.cache.Put(ctx, settled); err != nil {
		return nil, err
	}
	_ = s.log.LogAction(ctx, "update_task", "task", task.ID, "")
	return settled, nil
}

// AssignUsers replaces the task's assignee set. Assignment rows are
// created for new members and destroyed for removed ones, so the set
// cannot change once the task is accepted.
func (s *TaskServiceImpl) AssignUsers(ctx context.Context, projectID, taskID int, userIDs []int) (*models.Task, error) {
	caps, err := s.caller()
	if err != nil {
		return nil, err
	}

	manage, err := s.canManage(ctx, caps, projectID)
	if err != nil {
		return nil, err
	}
	if !manage {
		return nil, fault.New(fault.KindForbidden,
			"only an admin or the project incharge may assign task %d", taskID)
	}

	task, err := s.localTask(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsAccepted() {
		return nil, fault.New(fault.KindLocked,
			"task %d has been accepted and can no longer be modified", taskID)
	}

	m := beginMutation(task)
	fresh, err := s.backend.AssignUsers(ctx, projectID, taskID, userIDs)
	if err != nil {
		m.rollback()
		return nil, err
	}

	settled := m.settle(fresh)
	if err := s.cache.Put(ctx, settled); err != nil {
		return nil, err
	}
	_ = s.log.LogAction(ctx, "assign_users", "task", taskID, fmt.Sprintf("assignees=%v", userIDs))
	return settled, nil
}

// AcceptTask fires the one-way acceptance transition. A duplicate
// accept fails explicitly with an already-accepted fault; when the
// backend reports one the client's view was stale, so the task is
// refetched to let the display self-correct and the anomaly is logged.
func (s *TaskServiceImpl) AcceptTask(ctx context.Context, projectID, taskID int) (*models.Task, error) {
	caps, err := s.caller()
	if err != nil {
		return nil, err
	}

	manage, err := s.canManage(ctx, caps, projectID)
	if err != nil {
		return nil, err
	}

	task, err := s.localTask(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}

	guard := acceptance.CanAccept(acceptance.AcceptContext{
		TaskID:          task.ID,
		TaskStatus:      task.Status,
		AlreadyAccepted: task.IsAccepted(),
		CanManage:       manage,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	m := beginMutation(task)
	fresh, err := s.backend.AcceptTask(ctx, projectID, taskID)
	if err != nil {
		m.rollback()
		if fault.IsAlreadyAccepted(err) {
			// The local guard passed but the backend disagrees: another
			// session accepted first. Re-seed so the stale view corrects.
			_ = s.log.LogUnexpected(ctx, "duplicate_accept",
				fmt.Sprintf("task=%d accepted concurrently by another session", taskID))
			_, _ = s.GetTask(ctx, projectID, taskID)
		}
		return nil, err
	}

	settled := m.settle(fresh)
	if err := s.cache.Put(ctx, settled); err != nil {
		return nil, err
	}
	_ = s.log.LogAction(ctx, "accept", "task", taskID, "")
	return settled, nil
}

// AddComment appends a comment to the task. Comments are append-only;
// acceptance does not freeze them.
func (s *TaskServiceImpl) AddComment(ctx context.Context, projectID, taskID int, content string) (*models.Task, error) {
	if _, err := s.caller(); err != nil {
		return nil, err
	}
	if content == "" {
		return nil, fault.New(fault.KindValidation, "comment content must not be empty")
	}

	task, err := s.localTask(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}

	m := beginMutation(task)
	fresh, err := s.backend.AddComment(ctx, projectID, taskID, content)
	if err != nil {
		m.rollback()
		return nil, err
	}

	settled := m.settle(fresh)
	if err := s.cache.Put(ctx, settled); err != nil {
		return nil, err
	}
	_ = s.log.LogAction(ctx, "comment", "task", taskID, "")
	return settled, nil
}
