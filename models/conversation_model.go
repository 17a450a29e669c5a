package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is keyed by the canonical chat id derived from its two
// participants, so there is at most one row per unordered pair of users.
// ParticipantA always holds the lexicographically smaller id.
type Conversation struct {
	ChatID       string    `gorm:"size:80;primary_key" json:"chat_id"`
	ParticipantA uuid.UUID `gorm:"type:uuid;not null;index" json:"participant_a"`
	ParticipantB uuid.UUID `gorm:"type:uuid;not null;index" json:"participant_b"`

	LastMessage     string    `gorm:"type:text" json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Counterpart returns the other participant's id.
func (c *Conversation) Counterpart(self uuid.UUID) uuid.UUID {
	if c.ParticipantA == self {
		return c.ParticipantB
	}
	return c.ParticipantA
}
