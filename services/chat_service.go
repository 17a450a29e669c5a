package services

import (
	"sort"

	"github.com/google/uuid"
	"github.com/rajeshh21/nomads-journal/database"
	"github.com/rajeshh21/nomads-journal/models"
	"github.com/rajeshh21/nomads-journal/utils"
	"gorm.io/gorm/clause"
)

// PersistMessage appends a message to the conversation between sender and
// contact and refreshes the conversation metadata (participants, last message
// text and time). The two writes are separate statements, not a transaction:
// each is atomic on its own and a metadata failure after a successful append
// leaves the message in place. Either failure is reported to the caller as a
// failed send.
func PersistMessage(senderID uuid.UUID, senderName string, contactID uuid.UUID, content string) (*models.Message, error) {
	chatID := utils.ChatID(senderID.String(), contactID.String())

	msg := models.Message{
		ChatID:     chatID,
		SenderID:   senderID,
		SenderName: senderName,
		Content:    content,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		return nil, err
	}
	msg.FillReadBy()

	a, b := senderID, contactID
	if b.String() < a.String() {
		a, b = b, a
	}
	conv := models.Conversation{
		ChatID:          chatID,
		ParticipantA:    a,
		ParticipantB:    b,
		LastMessage:     content,
		LastMessageTime: msg.CreatedAt,
	}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_message", "last_message_time", "updated_at"}),
	}).Create(&conv).Error
	if err != nil {
		return &msg, err
	}

	return &msg, nil
}

// LoadSnapshot returns the complete message list of a conversation, receipts
// included, in the order subscribers render it.
func LoadSnapshot(chatID string) ([]models.Message, error) {
	var msgs []models.Message
	err := database.DB.
		Preload("Receipts").
		Where("chat_id = ?", chatID).
		Order("created_at asc, id asc").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return OrderSnapshot(msgs), nil
}

// OrderSnapshot sorts messages by creation time, insertion order breaking
// ties, and fills in the serialized read-sets. Every snapshot handed to a
// subscriber goes through here so emissions are always complete and ordered.
func OrderSnapshot(msgs []models.Message) []models.Message {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].ID < msgs[j].ID
		}
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	for i := range msgs {
		msgs[i].FillReadBy()
	}
	return msgs
}

// CountUnread counts the messages in a loaded snapshot that the given user
// has not read yet. A user's own messages are never unread for them.
func CountUnread(msgs []models.Message, self uuid.UUID) int64 {
	var n int64
	for i := range msgs {
		if msgs[i].SenderID == self {
			continue
		}
		if !msgs[i].ReadByUser(self) {
			n++
		}
	}
	return n
}

// ReceiptsToAdd selects the receipt rows that put the reader in the read-set
// of every message they have not read yet. A reader's own messages and
// messages already carrying their receipt select nothing, so applying the
// selection twice yields an empty second pass.
func ReceiptsToAdd(msgs []models.Message, reader uuid.UUID) []models.MessageReceipt {
	var rows []models.MessageReceipt
	for i := range msgs {
		if msgs[i].SenderID == reader || msgs[i].ReadByUser(reader) {
			continue
		}
		rows = append(rows, models.MessageReceipt{MessageID: msgs[i].ID, UserID: reader})
	}
	return rows
}

// MarkConversationRead adds the user to the read-set of every message the
// contact sent them in this conversation. The insert is a set union: rows
// that already exist are left untouched, so marking twice is a no-op and the
// call is safe to retry. Returns the number of messages newly marked.
func MarkConversationRead(self, contact uuid.UUID) (string, int64, error) {
	chatID := utils.ChatID(self.String(), contact.String())

	var msgs []models.Message
	err := database.DB.
		Preload("Receipts").
		Where("chat_id = ? AND sender_id = ?", chatID, contact).
		Find(&msgs).Error
	if err != nil {
		return chatID, 0, err
	}

	rows := ReceiptsToAdd(msgs, self)
	if len(rows) == 0 {
		return chatID, 0, nil
	}
	res := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return chatID, 0, res.Error
	}
	return chatID, res.RowsAffected, nil
}

// UnreadCount returns how many messages from the contact the user has not
// read yet in their conversation.
func UnreadCount(self, contact uuid.UUID) (int64, error) {
	chatID := utils.ChatID(self.String(), contact.String())

	var n int64
	err := database.DB.Model(&models.Message{}).
		Where("chat_id = ? AND sender_id = ?", chatID, contact).
		Where(`NOT EXISTS (
			SELECT 1 FROM message_receipts r
			WHERE r.message_id = messages.id AND r.user_id = ?)`, self).
		Count(&n).Error
	return n, err
}

// UnreadCounts returns the user's unread counts keyed by counterpart id,
// covering every conversation they participate in. Contacts with nothing
// unread are omitted.
func UnreadCounts(self uuid.UUID) (map[string]int64, error) {
	rows := []struct {
		SenderID uuid.UUID
		Count    int64
	}{}
	err := database.DB.Model(&models.Message{}).
		Select("messages.sender_id, count(*) as count").
		Joins("JOIN conversations c ON c.chat_id = messages.chat_id").
		Where("(c.participant_a = ? OR c.participant_b = ?)", self, self).
		Where("messages.sender_id <> ?", self).
		Where(`NOT EXISTS (
			SELECT 1 FROM message_receipts r
			WHERE r.message_id = messages.id AND r.user_id = ?)`, self).
		Group("messages.sender_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.SenderID.String()] = r.Count
	}
	return counts, nil
}
