package services

import (
	"context"
	"errors"
	"time"

	"github.com/init-club/Init-Website-sub000/internal/models"
	pgrepo "github.com/init-club/Init-Website-sub000/internal/repositories/postgres"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type MemberService interface {
	GetMe(ctx context.Context, userID string) (*models.Member, error)
	CompleteProfile(ctx context.Context, m *models.Member) error
	List(ctx context.Context) ([]models.Member, error)
}

type memberService struct {
	members pgrepo.MemberRepository
}

func NewMemberService(members pgrepo.MemberRepository) MemberService {
	return &memberService{members: members}
}

func (s *memberService) GetMe(ctx context.Context, userID string) (*models.Member, error) {
	const op = "MemberService.GetMe"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	m, err := s.members.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "member not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get member", err)
	}
	return m, nil
}

// CompleteProfile saves the onboarding form and flips profile_completed, so
// the next membership check stops redirecting to profile-setup. The role
// itself is never writable from here.
func (s *memberService) CompleteProfile(ctx context.Context, m *models.Member) error {
	const op = "MemberService.CompleteProfile"

	if m == nil || m.UserID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "member.user_id is required", nil)
	}
	if m.FullName == "" {
		return utils.E(utils.CodeInvalidArgument, op, "full_name is required", nil)
	}

	existing, err := s.members.GetByUserID(ctx, m.UserID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeForbidden, op, "no membership record", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to load member", err)
	}

	m.Role = existing.Role
	m.JoinedAt = existing.JoinedAt
	m.ProfileCompleted = true
	m.UpdatedAt = time.Now().UTC()

	if err := s.members.Upsert(ctx, m); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save profile", err)
	}
	return nil
}

func (s *memberService) List(ctx context.Context) ([]models.Member, error) {
	const op = "MemberService.List"

	out, err := s.members.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list members", err)
	}
	return out, nil
}
