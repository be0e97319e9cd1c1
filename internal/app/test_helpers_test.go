package app

import (
	"context"
	"time"

	"github.com/example/taskflow/internal/core/fault"
	"github.com/example/taskflow/internal/models"
	"github.com/example/taskflow/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockBackend implements secondary.Backend for testing.
type mockBackend struct {
	loginPayload *secondary.AuthPayload
	loginErr     error
	registerErr  error
	logoutErr    error
	currentUser  *models.User
	currentErr   error

	projects   map[int]*models.Project
	projectErr error

	tasks     map[int]*models.Task
	getErr    error
	updateErr error
	acceptErr error

	// Captured requests
	lastUpdate     *secondary.UpdateTaskRequest
	updateCalls    int
	acceptCalls    int
	assignedIDs    []int
	lastComment    string
	logoutCalls    int
	myTasksPage    *secondary.TaskPage
	projectTasks   *secondary.TaskPage
	listErr        error
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		projects: make(map[int]*models.Project),
		tasks:    make(map[int]*models.Task),
	}
}

func (m *mockBackend) Login(ctx context.Context, email, password string) (*secondary.AuthPayload, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginPayload, nil
}

func (m *mockBackend) Register(ctx context.Context, req secondary.RegisterRequest) (*secondary.AuthPayload, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return m.loginPayload, nil
}

func (m *mockBackend) Logout(ctx context.Context) error {
	m.logoutCalls++
	return m.logoutErr
}

func (m *mockBackend) GetCurrentUser(ctx context.Context) (*models.User, error) {
	if m.currentErr != nil {
		return nil, m.currentErr
	}
	return m.currentUser, nil
}

func (m *mockBackend) ListProjects(ctx context.Context) ([]*models.Project, error) {
	if m.projectErr != nil {
		return nil, m.projectErr
	}
	var out []*models.Project
	for _, p := range m.projects {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockBackend) GetProject(ctx context.Context, projectID int) (*models.Project, error) {
	if m.projectErr != nil {
		return nil, m.projectErr
	}
	if p, ok := m.projects[projectID]; ok {
		return p, nil
	}
	return nil, fault.New(fault.KindNotFound, "project %d not found", projectID)
}

func (m *mockBackend) ListProjectTasks(ctx context.Context, projectID int, page secondary.Page) (*secondary.TaskPage, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.projectTasks, nil
}

func (m *mockBackend) ListMyTasks(ctx context.Context, page secondary.Page) (*secondary.TaskPage, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.myTasksPage, nil
}

func (m *mockBackend) GetTask(ctx context.Context, projectID, taskID int) (*models.Task, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if t, ok := m.tasks[taskID]; ok {
		return t, nil
	}
	return nil, fault.New(fault.KindNotFound, "task %d not found", taskID)
}

func (m *mockBackend) UpdateTask(ctx context.Context, projectID, taskID int, req secondary.UpdateTaskRequest) (*models.Task, error) {
	m.updateCalls++
	m.lastUpdate = &req
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	task := m.tasks[taskID]
	if req.Progress != nil {
		targetID := 0
		if req.AssigneeID != nil {
			targetID = *req.AssigneeID
		}
		for i := range task.Assignees {
			if targetID == 0 || task.Assignees[i].ID == targetID {
				task.Assignees[i].Pivot.Progress = *req.Progress
				if req.Status != nil {
					task.Assignees[i].Pivot.Status = *req.Status
				}
				if targetID != 0 {
					break
				}
			}
		}
	}
	return task, nil
}

func (m *mockBackend) AssignUsers(ctx context.Context, projectID, taskID int, userIDs []int) (*models.Task, error) {
	m.assignedIDs = userIDs
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.tasks[taskID], nil
}

func (m *mockBackend) AcceptTask(ctx context.Context, projectID, taskID int) (*models.Task, error) {
	m.acceptCalls++
	if m.acceptErr != nil {
		return nil, m.acceptErr
	}
	task := m.tasks[taskID]
	now := time.Now()
	task.AcceptedAt = &now
	return task, nil
}

func (m *mockBackend) AddComment(ctx context.Context, projectID, taskID int, content string) (*models.Task, error) {
	m.lastComment = content
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.tasks[taskID], nil
}

// mockSessionStore implements secondary.SessionStore for testing.
type mockSessionStore struct {
	session  *secondary.Session
	saveErr  error
	loadErr  error
	clearErr error
}

func (m *mockSessionStore) Save(ctx context.Context, session *secondary.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.session = session
	return nil
}

func (m *mockSessionStore) Load(ctx context.Context) (*secondary.Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.session, nil
}

func (m *mockSessionStore) Clear(ctx context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.session = nil
	return nil
}

// mockTaskCache implements secondary.TaskCache for testing.
type mockTaskCache struct {
	tasks  map[int]*models.Task
	putErr error
	getErr error
}

func newMockTaskCache() *mockTaskCache {
	return &mockTaskCache{tasks: make(map[int]*models.Task)}
}

func (m *mockTaskCache) Put(ctx context.Context, task *models.Task) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskCache) Get(ctx context.Context, taskID int) (*models.Task, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.tasks[taskID], nil
}

func (m *mockTaskCache) Delete(ctx context.Context, taskID int) error {
	delete(m.tasks, taskID)
	return nil
}

func (m *mockTaskCache) Purge(ctx context.Context) error {
	m.tasks = make(map[int]*models.Task)
	return nil
}

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	actions    []string
	unexpected []string
}

func (m *mockLogWriter) LogAction(ctx context.Context, action, entityType string, entityID int, detail string) error {
	m.actions = append(m.actions, action)
	return nil
}

func (m *mockLogWriter) LogUnexpected(ctx context.Context, event, detail string) error {
	m.unexpected = append(m.unexpected, event)
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

func adminUser() *models.User {
	return &models.User{ID: 1, FirstName: "Ada", LastName: "Admin", Role: models.RoleAdmin}
}

func memberUser(id int) *models.User {
	verified := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &models.User{ID: id, FirstName: "Mia", LastName: "Member", Role: models.RoleUser, EmailVerifiedAt: &verified}
}

func fixtureProject(inchargeID int, memberIDs ...int) *models.Project {
	project := &models.Project{ID: 10, Name: "Apollo", Status: models.ProjectStatusActive}
	if inchargeID != 0 {
		project.Users = append(project.Users, models.ProjectMember{
			User:  models.User{ID: inchargeID, Role: models.RoleIncharge},
			Pivot: models.MemberPivot{Role: models.MemberRoleIncharge},
		})
	}
	for _, id := range memberIDs {
		project.Users = append(project.Users, models.ProjectMember{
			User:  *memberUser(id),
			Pivot: models.MemberPivot{Role: models.MemberRoleMember},
		})
	}
	return project
}

func fixtureTask(id int, status string, assigneeIDs ...int) *models.Task {
	task := &models.Task{
		ID:        id,
		ProjectID: 10,
		Title:     "Build the thing",
		Status:    status,
		Priority:  models.PriorityMedium,
	}
	for _, uid := range assigneeIDs {
		task.Assignees = append(task.Assignees, models.Assignee{
			User:  *memberUser(uid),
			Pivot: models.Assignment{Progress: 0, Status: models.AssignmentStatusPending},
		})
	}
	return task
}

func fixtureTaskPage() *secondary.TaskPage {
	return &secondary.TaskPage{
		Tasks: []*models.Task{
			fixtureTask(1, models.TaskStatusPending, 2),
			fixtureTask(2, models.TaskStatusInProgress, 2, 3),
		},
		Total:   2,
		Page:    1,
		PerPage: 15,
	}
}

func holderFor(user *models.User) *SessionHolder {
	holder := NewSessionHolder()
	holder.Set(&secondary.Session{Token: "tok", User: user})
	return holder
}
