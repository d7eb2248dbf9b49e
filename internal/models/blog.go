package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type BlogStatus string

const (
	BlogPending   BlogStatus = "pending"
	BlogPublished BlogStatus = "published"
	BlogRejected  BlogStatus = "rejected"
)

type Blog struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AuthorID string `gorm:"column:author_id;type:uuid" json:"author_id"`

	Title    string     `gorm:"column:title;type:text" json:"title"`
	Summary  string     `gorm:"column:summary;type:text" json:"summary"`
	CoverURL string     `gorm:"column:cover_url;type:text" json:"cover_url"`
	Status   BlogStatus `gorm:"column:status;type:text" json:"status"`

	Tags pq.StringArray `gorm:"column:tags;type:text[]" json:"tags"`

	// JSONB list of content blocks (paragraphs, images, code) as the site
	// editor produces them; opaque to this service.
	Content datatypes.JSON `gorm:"column:content;type:jsonb" json:"content"`

	CreatedAt   time.Time  `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	ReviewedAt  *time.Time `gorm:"column:reviewed_at;type:timestamptz" json:"reviewed_at,omitempty"`
	PublishedAt *time.Time `gorm:"column:published_at;type:timestamptz" json:"published_at,omitempty"`
}

func (Blog) TableName() string { return "blogs" }
