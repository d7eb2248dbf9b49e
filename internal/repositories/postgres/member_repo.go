package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/init-club/Init-Website-sub000/internal/models"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type MemberRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Member, error)
	Upsert(ctx context.Context, m *models.Member) error
	List(ctx context.Context) ([]models.Member, error)
}

type memberRepo struct {
	db *gorm.DB
}

func NewMemberRepo(db *gorm.DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) GetByUserID(ctx context.Context, userID string) (*models.Member, error) {
	var m models.Member
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &m, err
}

func (r *memberRepo) Upsert(ctx context.Context, m *models.Member) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"github_login", "full_name", "avatar_url", "bio", "skills", "socials", "profile_completed", "updated_at"}),
		}).
		Create(m).Error
}

func (r *memberRepo) List(ctx context.Context) ([]models.Member, error) {
	var out []models.Member
	err := r.db.WithContext(ctx).
		Order("joined_at ASC").
		Find(&out).Error
	return out, err
}
