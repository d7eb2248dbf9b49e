package services

import (
	"context"
	"errors"
	"time"

	"github.com/init-club/Init-Website-sub000/internal/models"
	pgrepo "github.com/init-club/Init-Website-sub000/internal/repositories/postgres"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type ProjectService interface {
	Get(ctx context.Context, id string) (*models.Project, error)
	ListActive(ctx context.Context) ([]models.Project, error)
	ListGraveyard(ctx context.Context) ([]models.Project, error)
	UpdateMeta(ctx context.Context, p *models.Project) (*models.Project, error)
}

type projectService struct {
	projects pgrepo.ProjectRepository
}

func NewProjectService(projects pgrepo.ProjectRepository) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) Get(ctx context.Context, id string) (*models.Project, error) {
	const op = "ProjectService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}

	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "project not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get project", err)
	}
	return p, nil
}

func (s *projectService) ListActive(ctx context.Context) ([]models.Project, error) {
	const op = "ProjectService.ListActive"

	out, err := s.projects.ListByStatus(ctx, models.ProjectActive)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list projects", err)
	}
	return out, nil
}

func (s *projectService) ListGraveyard(ctx context.Context) ([]models.Project, error) {
	const op = "ProjectService.ListGraveyard"

	out, err := s.projects.ListByStatus(ctx, models.ProjectArchived)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list archived projects", err)
	}
	return out, nil
}

// UpdateMeta is the admin metadata edit. Archiving sets archived_at so the
// project surfaces in the Graveyard; un-archiving clears it.
func (s *projectService) UpdateMeta(ctx context.Context, p *models.Project) (*models.Project, error) {
	const op = "ProjectService.UpdateMeta"

	if p == nil || p.ID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "project.id is required", nil)
	}
	if p.Status != models.ProjectActive && p.Status != models.ProjectArchived {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid project status", nil)
	}

	now := time.Now().UTC()
	p.UpdatedAt = now
	if p.Status == models.ProjectArchived {
		if p.ArchivedAt == nil {
			p.ArchivedAt = &now
		}
	} else {
		p.ArchivedAt = nil
	}

	if err := s.projects.Update(ctx, p); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "project not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update project", err)
	}
	return p, nil
}
