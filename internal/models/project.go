package models

import (
	"time"

	"github.com/lib/pq"
)

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived" // lives in the Graveyard
)

type Project struct {
	ID          string        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string        `gorm:"column:title;type:text" json:"title"`
	Description string        `gorm:"column:description;type:text" json:"description"`
	RepoURL     string        `gorm:"column:repo_url;type:text" json:"repo_url"`
	Status      ProjectStatus `gorm:"column:status;type:text" json:"status"`

	TechStack pq.StringArray `gorm:"column:tech_stack;type:text[]" json:"tech_stack"`

	// Epitaph is shown on the Graveyard page for archived projects.
	Epitaph string `gorm:"column:epitaph;type:text" json:"epitaph,omitempty"`

	CreatedAt  time.Time  `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
	ArchivedAt *time.Time `gorm:"column:archived_at;type:timestamptz" json:"archived_at,omitempty"`
}

func (Project) TableName() string { return "projects" }
