package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleMember    Role = "member"
	RoleSemiAdmin Role = "semi_admin"
	RoleAdmin     Role = "admin"
)

// CanReview reports whether the role may enter the admin surfaces (blog
// review queue, project metadata editing).
func (r Role) CanReview() bool {
	return r == RoleAdmin || r == RoleSemiAdmin
}

// Member is a row in the club's members table, keyed by the Supabase auth
// user id. Row-level policies on the table itself are owned by the backend.
type Member struct {
	UserID      string `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	GithubLogin string `gorm:"column:github_login;type:text" json:"github_login"`
	FullName    string `gorm:"column:full_name;type:text" json:"full_name"`
	AvatarURL   string `gorm:"column:avatar_url;type:text" json:"avatar_url"`
	Bio         string `gorm:"column:bio;type:text" json:"bio"`

	Role             Role `gorm:"column:role;type:text" json:"role"`
	ProfileCompleted bool `gorm:"column:profile_completed" json:"profile_completed"`

	Skills pq.StringArray `gorm:"column:skills;type:text[]" json:"skills"`

	// JSONB: {"github": "...", "linkedin": "...", ...}
	Socials datatypes.JSON `gorm:"column:socials;type:jsonb" json:"socials"`

	JoinedAt  time.Time `gorm:"column:joined_at;type:timestamptz" json:"joined_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Member) TableName() string { return "members" }

// MemberStatus is the row shape returned by the member_status() remote
// procedure. It is computed fresh for every gate evaluation and discarded
// right after the decision; it is never a local source of truth.
type MemberStatus struct {
	Role             Role `gorm:"column:role" json:"role"`
	ProfileCompleted bool `gorm:"column:profile_completed" json:"profile_completed"`
}
