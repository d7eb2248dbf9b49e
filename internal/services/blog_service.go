package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/init-club/Init-Website-sub000/internal/cache"
	"github.com/init-club/Init-Website-sub000/internal/models"
	pgrepo "github.com/init-club/Init-Website-sub000/internal/repositories/postgres"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

const publishedBlogsTTL = 60 * time.Second

// ReviewFeed announces new submissions to the admin review queue.
type ReviewFeed interface {
	SubmissionReceived(ctx context.Context, b *models.Blog)
}

type BlogService interface {
	Submit(ctx context.Context, authorID string, b *models.Blog) (*models.Blog, error)
	Get(ctx context.Context, id string) (*models.Blog, error)
	ListPublished(ctx context.Context, f pgrepo.BlogFilter) ([]models.Blog, error)
	ListPending(ctx context.Context) ([]models.Blog, error)
	Review(ctx context.Context, blogID, reviewerID string, approve bool) error
}

type blogService struct {
	blogs pgrepo.BlogRepository
	cache cache.Cache
	feed  ReviewFeed
	log   *logrus.Logger
}

func NewBlogService(blogs pgrepo.BlogRepository, c cache.Cache, feed ReviewFeed, log *logrus.Logger) BlogService {
	return &blogService{blogs: blogs, cache: c, feed: feed, log: log}
}

func (s *blogService) Submit(ctx context.Context, authorID string, b *models.Blog) (*models.Blog, error) {
	const op = "BlogService.Submit"

	if authorID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "author_id is required", nil)
	}
	if b == nil || b.Title == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title is required", nil)
	}

	b.ID = uuid.NewString()
	b.AuthorID = authorID
	b.Status = models.BlogPending
	b.CreatedAt = time.Now().UTC()
	b.ReviewedAt = nil
	b.PublishedAt = nil

	if err := s.blogs.Create(ctx, b); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create blog", err)
	}

	s.feed.SubmissionReceived(ctx, b)
	return b, nil
}

func (s *blogService) Get(ctx context.Context, id string) (*models.Blog, error) {
	const op = "BlogService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}

	b, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "blog not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get blog", err)
	}
	return b, nil
}

func (s *blogService) ListPublished(ctx context.Context, f pgrepo.BlogFilter) ([]models.Blog, error) {
	const op = "BlogService.ListPublished"

	// Only the unfiltered listing is cached; filtered queries go straight
	// through.
	cacheable := f.Search == "" && f.Tag == ""
	if cacheable {
		var cached []models.Blog
		if hit, err := s.cache.GetJSON(ctx, cache.KeyPublishedBlogs, &cached); err == nil && hit {
			return cached, nil
		} else if err != nil {
			s.log.WithError(err).Warn("blog cache read failed")
		}
	}

	out, err := s.blogs.ListPublished(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list blogs", err)
	}

	if cacheable {
		if err := s.cache.SetJSON(ctx, cache.KeyPublishedBlogs, out, publishedBlogsTTL); err != nil {
			s.log.WithError(err).Warn("blog cache write failed")
		}
	}
	return out, nil
}

func (s *blogService) ListPending(ctx context.Context) ([]models.Blog, error) {
	const op = "BlogService.ListPending"

	out, err := s.blogs.ListPending(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list pending blogs", err)
	}
	return out, nil
}

// Review resolves a pending submission. The pending -> published|rejected
// rule is the procedure's to enforce; a refusal surfaces here as not-found.
func (s *blogService) Review(ctx context.Context, blogID, reviewerID string, approve bool) error {
	const op = "BlogService.Review"

	if blogID == "" || reviewerID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "blog_id and reviewer_id are required", nil)
	}

	verdict := models.BlogRejected
	if approve {
		verdict = models.BlogPublished
	}

	if err := s.blogs.Review(ctx, blogID, reviewerID, verdict); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeConflict, op, "blog is not pending review", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to review blog", err)
	}

	if verdict == models.BlogPublished {
		if err := s.cache.Del(ctx, cache.KeyPublishedBlogs); err != nil {
			s.log.WithError(err).Warn("blog cache invalidation failed")
		}
	}
	return nil
}
