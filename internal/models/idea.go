package models

import (
	"time"

	"github.com/lib/pq"
)

// Idea is a card on the Idea Wall. Anyone can read the wall; posting
// requires membership.
type Idea struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AuthorID string `gorm:"column:author_id;type:uuid" json:"author_id"`

	Title string `gorm:"column:title;type:text" json:"title"`
	Pitch string `gorm:"column:pitch;type:text" json:"pitch"`

	Tags pq.StringArray `gorm:"column:tags;type:text[]" json:"tags"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (Idea) TableName() string { return "ideas" }
