package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/init-club/Init-Website-sub000/internal/models"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type EventRepository interface {
	Create(ctx context.Context, e *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]models.Event, error)
	ListPast(ctx context.Context, now time.Time) ([]models.Event, error)
	Update(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id string) error
}

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, e *models.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &e, err
}

func (r *eventRepo) ListUpcoming(ctx context.Context, now time.Time) ([]models.Event, error) {
	var out []models.Event
	err := r.db.WithContext(ctx).
		Where("ends_at >= ?", now).
		Order("starts_at ASC").
		Find(&out).Error
	return out, err
}

func (r *eventRepo) ListPast(ctx context.Context, now time.Time) ([]models.Event, error) {
	var out []models.Event
	err := r.db.WithContext(ctx).
		Where("ends_at < ?", now).
		Order("starts_at DESC").
		Find(&out).Error
	return out, err
}

func (r *eventRepo) Update(ctx context.Context, e *models.Event) error {
	res := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"title":       e.Title,
			"description": e.Description,
			"location":    e.Location,
			"banner_url":  e.BannerURL,
			"starts_at":   e.StartsAt,
			"ends_at":     e.EndsAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Event{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
