package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rajeshh21/nomads-journal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msgAt(id uint64, sender uuid.UUID, at time.Time) models.Message {
	return models.Message{ID: id, SenderID: sender, Content: "m", CreatedAt: at}
}

func TestOrderSnapshotByCreationTime(t *testing.T) {
	sender := uuid.New()
	base := time.Now()

	msgs := []models.Message{
		msgAt(3, sender, base.Add(2*time.Second)),
		msgAt(1, sender, base),
		msgAt(2, sender, base.Add(time.Second)),
	}

	out := OrderSnapshot(msgs)
	require.Len(t, out, 3)
	assert.Equal(t, uint64(1), out[0].ID)
	assert.Equal(t, uint64(2), out[1].ID)
	assert.Equal(t, uint64(3), out[2].ID)
}

func TestOrderSnapshotTiesByInsertionOrder(t *testing.T) {
	sender := uuid.New()
	at := time.Now()

	msgs := []models.Message{
		msgAt(7, sender, at),
		msgAt(5, sender, at),
		msgAt(6, sender, at),
	}

	out := OrderSnapshot(msgs)
	assert.Equal(t, uint64(5), out[0].ID)
	assert.Equal(t, uint64(6), out[1].ID)
	assert.Equal(t, uint64(7), out[2].ID)
}

func TestOrderSnapshotFillsReadSets(t *testing.T) {
	sender := uuid.New()
	reader := uuid.New()

	msgs := []models.Message{
		{
			ID:       1,
			SenderID: sender,
			Receipts: []models.MessageReceipt{{MessageID: 1, UserID: reader}},
		},
	}

	out := OrderSnapshot(msgs)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].ReadBy, sender.String())
	assert.Contains(t, out[0].ReadBy, reader.String())
}

func TestCountUnread(t *testing.T) {
	self := uuid.New()
	contact := uuid.New()
	base := time.Now()

	read := msgAt(1, contact, base)
	read.Receipts = []models.MessageReceipt{{MessageID: 1, UserID: self}}

	msgs := []models.Message{
		read,
		msgAt(2, contact, base.Add(time.Second)),
		msgAt(3, contact, base.Add(2*time.Second)),
		msgAt(4, self, base.Add(3*time.Second)),
	}

	assert.Equal(t, int64(2), CountUnread(msgs, self))
}

func TestCountUnreadOwnMessagesNeverUnread(t *testing.T) {
	self := uuid.New()

	msgs := []models.Message{
		msgAt(1, self, time.Now()),
		msgAt(2, self, time.Now()),
	}

	assert.Equal(t, int64(0), CountUnread(msgs, self))
}

func TestReceiptsToAddSkipsOwnAndAlreadyRead(t *testing.T) {
	self := uuid.New()
	contact := uuid.New()
	base := time.Now()

	read := msgAt(1, contact, base)
	read.Receipts = []models.MessageReceipt{{MessageID: 1, UserID: self}}

	msgs := []models.Message{
		read,
		msgAt(2, contact, base.Add(time.Second)),
		msgAt(3, self, base.Add(2*time.Second)),
	}

	rows := ReceiptsToAdd(msgs, self)
	require.Len(t, rows, 1)
	assert.Equal(t, uint64(2), rows[0].MessageID)
	assert.Equal(t, self, rows[0].UserID)
}

func TestMarkingReadTwiceAddsNothing(t *testing.T) {
	self := uuid.New()
	contact := uuid.New()
	base := time.Now()

	msgs := []models.Message{
		msgAt(1, contact, base),
		msgAt(2, contact, base.Add(time.Second)),
	}

	rows := ReceiptsToAdd(msgs, self)
	require.Len(t, rows, 2)

	for _, r := range rows {
		for i := range msgs {
			if msgs[i].ID == r.MessageID {
				msgs[i].Receipts = append(msgs[i].Receipts, r)
			}
		}
	}

	assert.Empty(t, ReceiptsToAdd(msgs, self))
	assert.Equal(t, int64(0), CountUnread(msgs, self))
}

func TestCountUnreadAllFromContactBeforeMarking(t *testing.T) {
	self := uuid.New()
	contact := uuid.New()
	base := time.Now()

	msgs := []models.Message{
		msgAt(1, contact, base),
		msgAt(2, contact, base.Add(time.Second)),
		msgAt(3, contact, base.Add(2*time.Second)),
	}

	assert.Equal(t, int64(3), CountUnread(msgs, self))
}
