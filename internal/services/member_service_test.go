package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/init-club/Init-Website-sub000/internal/models"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type memMemberRepo struct {
	mu      sync.Mutex
	members map[string]*models.Member
}

func newMemMemberRepo() *memMemberRepo {
	return &memMemberRepo{members: map[string]*models.Member{}}
}

func (r *memMemberRepo) GetByUserID(_ context.Context, userID string) (*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memMemberRepo) Upsert(_ context.Context, m *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.members[m.UserID] = &cp
	return nil
}

func (r *memMemberRepo) List(_ context.Context) ([]models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Member
	for _, m := range r.members {
		out = append(out, *m)
	}
	return out, nil
}

func TestCompleteProfilePreservesRoleAndJoinedAt(t *testing.T) {
	repo := newMemMemberRepo()
	joined := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(context.Background(), &models.Member{
		UserID:   "user-1",
		Role:     models.RoleSemiAdmin,
		JoinedAt: joined,
	}))

	svc := NewMemberService(repo)
	err := svc.CompleteProfile(context.Background(), &models.Member{
		UserID:   "user-1",
		FullName: "Grace Hopper",
		Bio:      "compilers",
		// A client trying to smuggle in a role upgrade.
		Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	got, err := svc.GetMe(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", got.FullName)
	assert.True(t, got.ProfileCompleted)
	assert.Equal(t, models.RoleSemiAdmin, got.Role)
	assert.Equal(t, joined, got.JoinedAt)
}

func TestCompleteProfileRequiresMembershipRecord(t *testing.T) {
	svc := NewMemberService(newMemMemberRepo())

	err := svc.CompleteProfile(context.Background(), &models.Member{
		UserID:   "stranger",
		FullName: "Nobody",
	})
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
}

func TestCompleteProfileValidation(t *testing.T) {
	svc := NewMemberService(newMemMemberRepo())

	assert.True(t, utils.IsCode(
		svc.CompleteProfile(context.Background(), nil), utils.CodeInvalidArgument))
	assert.True(t, utils.IsCode(
		svc.CompleteProfile(context.Background(), &models.Member{UserID: "u"}), utils.CodeInvalidArgument))
}

func TestGetMeNotFound(t *testing.T) {
	svc := NewMemberService(newMemMemberRepo())

	_, err := svc.GetMe(context.Background(), "missing")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
