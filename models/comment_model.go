package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BlogID   uuid.UUID `gorm:"type:uuid;not null;index" json:"blog_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	UserName string    `gorm:"size:255;not null" json:"user_name"`
	Text     string    `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `json:"created_at"`
}
