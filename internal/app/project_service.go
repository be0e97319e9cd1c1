package app

import (
	"context"

	"github.com/example/taskflow/internal/core/fault"
	"github.com/example/taskflow/internal/models"
	"github.com/example/taskflow/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface. Project
// data is read-only in this client; all project mutation lives in the
// web surface.
type ProjectServiceImpl struct {
	backend secondary.Backend
	holder  *SessionHolder
}

// NewProjectService creates a new ProjectService with injected dependencies.
func NewProjectService(backend secondary.Backend, holder *SessionHolder) *ProjectServiceImpl {
	return &ProjectServiceImpl{backend: backend, holder: holder}
}

// ListProjects lists the projects visible to the current user.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context) ([]*models.Project, error) {
	if s.holder.Get() == nil {
		return nil, fault.New(fault.KindUnauthorized, "not logged in")
	}
	return s.backend.ListProjects(ctx)
}

// GetProject retrieves one project with its member roster.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID int) (*models.Project, error) {
	if s.holder.Get() == nil {
		return nil, fault.New(fault.KindUnauthorized, "not logged in")
	}
	return s.backend.GetProject(ctx, projectID)
}
