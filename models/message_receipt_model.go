package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageReceipt records that a user has read a message. The composite
// primary key makes the read-set a true set: inserting the same pair twice is
// a conflict, and nothing in the application ever deletes a receipt, so the
// set only grows. Senders carry no receipt row; they are part of their own
// message's read-set by definition.
type MessageReceipt struct {
	MessageID uint64    `gorm:"primaryKey;autoIncrement:false" json:"message_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
