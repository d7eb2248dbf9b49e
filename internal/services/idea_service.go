package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/init-club/Init-Website-sub000/internal/models"
	pgrepo "github.com/init-club/Init-Website-sub000/internal/repositories/postgres"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type IdeaService interface {
	Post(ctx context.Context, authorID string, i *models.Idea) (*models.Idea, error)
	List(ctx context.Context, search string) ([]models.Idea, error)
	Delete(ctx context.Context, id string) error
}

type ideaService struct {
	ideas pgrepo.IdeaRepository
}

func NewIdeaService(ideas pgrepo.IdeaRepository) IdeaService {
	return &ideaService{ideas: ideas}
}

func (s *ideaService) Post(ctx context.Context, authorID string, i *models.Idea) (*models.Idea, error) {
	const op = "IdeaService.Post"

	if authorID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "author_id is required", nil)
	}
	if i == nil || i.Title == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title is required", nil)
	}

	i.ID = uuid.NewString()
	i.AuthorID = authorID
	i.CreatedAt = time.Now().UTC()

	if err := s.ideas.Create(ctx, i); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to post idea", err)
	}
	return i, nil
}

func (s *ideaService) List(ctx context.Context, search string) ([]models.Idea, error) {
	const op = "IdeaService.List"

	out, err := s.ideas.List(ctx, search)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list ideas", err)
	}
	return out, nil
}

func (s *ideaService) Delete(ctx context.Context, id string) error {
	const op = "IdeaService.Delete"

	if id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	if err := s.ideas.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "idea not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete idea", err)
	}
	return nil
}
