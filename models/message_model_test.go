package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFillReadByAlwaysContainsSender(t *testing.T) {
	sender := uuid.New()
	m := Message{ID: 1, SenderID: sender}

	m.FillReadBy()
	assert.Equal(t, []string{sender.String()}, m.ReadBy)
}

func TestFillReadByMergesReceipts(t *testing.T) {
	sender := uuid.New()
	reader := uuid.New()
	m := Message{
		ID:       1,
		SenderID: sender,
		Receipts: []MessageReceipt{{MessageID: 1, UserID: reader}},
	}

	m.FillReadBy()
	assert.Len(t, m.ReadBy, 2)
	assert.Contains(t, m.ReadBy, sender.String())
	assert.Contains(t, m.ReadBy, reader.String())
}

func TestFillReadBySenderReceiptNotDuplicated(t *testing.T) {
	sender := uuid.New()
	m := Message{
		ID:       1,
		SenderID: sender,
		Receipts: []MessageReceipt{{MessageID: 1, UserID: sender}},
	}

	m.FillReadBy()
	assert.Len(t, m.ReadBy, 1)
}

func TestReadByUser(t *testing.T) {
	sender := uuid.New()
	reader := uuid.New()
	stranger := uuid.New()
	m := Message{
		ID:       1,
		SenderID: sender,
		Receipts: []MessageReceipt{{MessageID: 1, UserID: reader}},
	}

	assert.True(t, m.ReadByUser(sender))
	assert.True(t, m.ReadByUser(reader))
	assert.False(t, m.ReadByUser(stranger))
}
