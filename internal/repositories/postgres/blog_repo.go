package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/init-club/Init-Website-sub000/internal/models"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

// BlogFilter composes the search/tag filters of the public listing.
type BlogFilter struct {
	Search string
	Tag    string
}

type BlogRepository interface {
	Create(ctx context.Context, b *models.Blog) error
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	ListPublished(ctx context.Context, f BlogFilter) ([]models.Blog, error)
	ListPending(ctx context.Context) ([]models.Blog, error)
	Review(ctx context.Context, blogID, reviewerID string, verdict models.BlogStatus) error
}

type blogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) BlogRepository {
	return &blogRepo{db: db}
}

func (r *blogRepo) Create(ctx context.Context, b *models.Blog) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *blogRepo) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	var b models.Blog
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &b, err
}

func (r *blogRepo) ListPublished(ctx context.Context, f BlogFilter) ([]models.Blog, error) {
	q := r.db.WithContext(ctx).
		Where("status = ?", models.BlogPublished)
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title ILIKE ? OR summary ILIKE ?", like, like)
	}
	if f.Tag != "" {
		q = q.Where("? = ANY(tags)", f.Tag)
	}

	var out []models.Blog
	err := q.Order("published_at DESC").Find(&out).Error
	return out, err
}

func (r *blogRepo) ListPending(ctx context.Context) ([]models.Blog, error) {
	var out []models.Blog
	err := r.db.WithContext(ctx).
		Where("status = ?", models.BlogPending).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// Review calls the review_blog() procedure; pending -> published|rejected is
// enforced by the procedure itself, so a blog that is not pending (or not
// there at all) comes back as zero affected rows.
func (r *blogRepo) Review(ctx context.Context, blogID, reviewerID string, verdict models.BlogStatus) error {
	var updated int64
	err := r.db.WithContext(ctx).
		Raw("SELECT review_blog(?, ?, ?)", blogID, reviewerID, string(verdict)).
		Scan(&updated).Error
	if err != nil {
		return err
	}
	if updated == 0 {
		return utils.ErrNotFound
	}
	return nil
}
