package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/init-club/Init-Website-sub000/internal/models"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

// RPCStatusQuery calls the member_status() function on the backend. The
// function runs under the backend's row policies and encapsulates the
// membership rules; this side only reads the rows it returns. Zero rows is
// an answer ("not a member"), never an error.
type RPCStatusQuery struct {
	db *gorm.DB
}

func NewRPCStatusQuery(db *gorm.DB) *RPCStatusQuery {
	return &RPCStatusQuery{db: db}
}

func (q *RPCStatusQuery) MyStatus(ctx context.Context, userID string) ([]models.MemberStatus, error) {
	const op = "RPCStatusQuery.MyStatus"

	var rows []models.MemberStatus
	err := q.db.WithContext(ctx).
		Raw("SELECT role, profile_completed FROM member_status(?)", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "status procedure failed", err)
	}
	return rows, nil
}

// TableStatusQuery is the equivalent call shape reading the members table
// directly. Either implementation may back a gate.
type TableStatusQuery struct {
	db *gorm.DB
}

func NewTableStatusQuery(db *gorm.DB) *TableStatusQuery {
	return &TableStatusQuery{db: db}
}

func (q *TableStatusQuery) MyStatus(ctx context.Context, userID string) ([]models.MemberStatus, error) {
	const op = "TableStatusQuery.MyStatus"

	var rows []models.MemberStatus
	err := q.db.WithContext(ctx).
		Model(&models.Member{}).
		Select("role", "profile_completed").
		Where("user_id = ?", userID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "status lookup failed", err)
	}
	return rows, nil
}
