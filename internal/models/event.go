package models

import "time"

type Event struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;type:text" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Location    string    `gorm:"column:location;type:text" json:"location"`
	BannerURL   string    `gorm:"column:banner_url;type:text" json:"banner_url"`
	StartsAt    time.Time `gorm:"column:starts_at;type:timestamptz" json:"starts_at"`
	EndsAt      time.Time `gorm:"column:ends_at;type:timestamptz" json:"ends_at"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (Event) TableName() string { return "events" }
