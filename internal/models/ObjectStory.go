package models

import (
	"time"
)

// ObjectStory is the persistent tier of the story cache: at most one row
// per heritage object, overwritten on regeneration.
type ObjectStory struct {
	ObjectID  uint      `json:"object_id" gorm:"primaryKey"`
	Source    string    `json:"source" gorm:"size:200;not null"`
	Story     string    `json:"story" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ObjectStory) TableName() string {
	return "object_stories"
}
