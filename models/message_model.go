package models

import (
	"time"

	"github.com/google/uuid"
)

// Message rows get a serial id so ordering within a conversation is
// created_at first, insertion order second.
type Message struct {
	ID         uint64    `gorm:"primary_key;autoIncrement" json:"id"`
	ChatID     string    `gorm:"size:80;not null;index" json:"chat_id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	SenderName string    `gorm:"size:255;not null" json:"sender_name"`
	Content    string    `gorm:"type:text;not null" json:"content"`

	Receipts []MessageReceipt `gorm:"foreignKey:MessageID" json:"-"`
	ReadBy   []string         `gorm:"-" json:"read_by"`

	CreatedAt time.Time `json:"created_at"`
}

// FillReadBy projects the preloaded receipt rows into the serialized
// read-set. The sender is a member of every message's read-set without a
// receipt row, so a fresh message already reads as seen by its author.
func (m *Message) FillReadBy() {
	m.ReadBy = make([]string, 0, len(m.Receipts)+1)
	m.ReadBy = append(m.ReadBy, m.SenderID.String())
	for _, r := range m.Receipts {
		if r.UserID == m.SenderID {
			continue
		}
		m.ReadBy = append(m.ReadBy, r.UserID.String())
	}
}

// ReadByUser reports whether the user is in this message's read-set.
func (m *Message) ReadByUser(userID uuid.UUID) bool {
	if userID == m.SenderID {
		return true
	}
	for _, r := range m.Receipts {
		if r.UserID == userID {
			return true
		}
	}
	return false
}
