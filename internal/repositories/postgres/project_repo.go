package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/init-club/Init-Website-sub000/internal/models"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*models.Project, error)
	ListByStatus(ctx context.Context, status models.ProjectStatus) ([]models.Project, error)
	Update(ctx context.Context, p *models.Project) error
}

type projectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *projectRepo) ListByStatus(ctx context.Context, status models.ProjectStatus) ([]models.Project, error) {
	var out []models.Project
	order := "created_at DESC"
	if status == models.ProjectArchived {
		order = "archived_at DESC"
	}
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order(order).
		Find(&out).Error
	return out, err
}

func (r *projectRepo) Update(ctx context.Context, p *models.Project) error {
	res := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"title":       p.Title,
			"description": p.Description,
			"repo_url":    p.RepoURL,
			"tech_stack":  p.TechStack,
			"status":      p.Status,
			"epitaph":     p.Epitaph,
			"updated_at":  p.UpdatedAt,
			"archived_at": p.ArchivedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
