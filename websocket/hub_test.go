package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rajeshh21/nomads-journal/utils"
	"github.com/stretchr/testify/assert"
)

func TestOpenConversationReplacesSubscription(t *testing.T) {
	self := uuid.New()
	first := uuid.New()
	second := uuid.New()
	client := &Client{UserID: self}

	firstChat := client.OpenConversation(first)
	assert.True(t, client.SubscribedTo(firstChat))

	secondChat := client.OpenConversation(second)
	assert.True(t, client.SubscribedTo(secondChat))
	assert.False(t, client.SubscribedTo(firstChat), "old subscription must be cancelled on switch")
}

func TestOpenConversationChatID(t *testing.T) {
	self := uuid.New()
	contact := uuid.New()
	client := &Client{UserID: self}

	chatID := client.OpenConversation(contact)
	assert.Equal(t, utils.ChatID(self.String(), contact.String()), chatID)
}

func TestCloseConversation(t *testing.T) {
	client := &Client{UserID: uuid.New()}

	chatID := client.OpenConversation(uuid.New())
	client.CloseConversation()
	assert.False(t, client.SubscribedTo(chatID))
}

func TestNotSubscribedByDefault(t *testing.T) {
	client := &Client{UserID: uuid.New()}
	assert.False(t, client.SubscribedTo("anything"))
}

func TestDeliveryPlan(t *testing.T) {
	sender := uuid.New()
	recipient := uuid.New()

	cases := []struct {
		name          string
		subscribed    bool
		participantID uuid.UUID
		snapshot      bool
		markRead      bool
		unread        bool
	}{
		{"subscribed recipient reads each arriving message", true, recipient, true, true, false},
		{"subscribed sender only gets the snapshot", true, sender, true, false, false},
		{"unsubscribed recipient gets an unread bump", false, recipient, false, false, true},
		{"unsubscribed sender gets nothing", false, sender, false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snapshot, markRead, unread := deliveryPlan(tc.subscribed, tc.participantID, sender)
			assert.Equal(t, tc.snapshot, snapshot)
			assert.Equal(t, tc.markRead, markRead)
			assert.Equal(t, tc.unread, unread)
		})
	}
}
