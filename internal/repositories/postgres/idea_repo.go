package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/init-club/Init-Website-sub000/internal/models"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type IdeaRepository interface {
	Create(ctx context.Context, i *models.Idea) error
	List(ctx context.Context, search string) ([]models.Idea, error)
	Delete(ctx context.Context, id string) error
}

type ideaRepo struct {
	db *gorm.DB
}

func NewIdeaRepo(db *gorm.DB) IdeaRepository {
	return &ideaRepo{db: db}
}

func (r *ideaRepo) Create(ctx context.Context, i *models.Idea) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ideaRepo) List(ctx context.Context, search string) ([]models.Idea, error) {
	q := r.db.WithContext(ctx)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("title ILIKE ? OR pitch ILIKE ?", like, like)
	}

	var out []models.Idea
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *ideaRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Idea{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
