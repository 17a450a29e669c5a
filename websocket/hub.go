package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/rajeshh21/nomads-journal/database"
	"github.com/rajeshh21/nomads-journal/models"
	"github.com/rajeshh21/nomads-journal/services"
	"github.com/rajeshh21/nomads-journal/utils"
)

// Client is one authenticated websocket session. A client holds at most one
// live conversation subscription at a time; opening a new conversation
// replaces the previous one, so stale snapshots can never keep flowing to a
// conversation the user has left.
type Client struct {
	UserID uuid.UUID
	Name   string
	Conn   *websocket.Conn

	mu        sync.Mutex
	writeMu   sync.Mutex
	contactID uuid.UUID
	chatID    string
}

// OpenConversation subscribes the client to the conversation with the given
// contact, cancelling whatever conversation was open before. Returns the
// canonical chat id of the new subscription.
func (c *Client) OpenConversation(contactID uuid.UUID) string {
	chatID := utils.ChatID(c.UserID.String(), contactID.String())
	c.mu.Lock()
	c.contactID = contactID
	c.chatID = chatID
	c.mu.Unlock()
	return chatID
}

// CloseConversation drops the client's conversation subscription, if any.
func (c *Client) CloseConversation() {
	c.mu.Lock()
	c.contactID = uuid.Nil
	c.chatID = ""
	c.mu.Unlock()
}

// SubscribedTo reports whether the client currently has this conversation open.
func (c *Client) SubscribedTo(chatID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chatID == chatID
}

// WriteJSON serializes writes to the underlying connection; the hub and the
// session's read loop both push frames, and the connection is not safe for
// concurrent writers.
func (c *Client) WriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

// Frame is the server-to-client wire format. Type is one of "snapshot",
// "unread", "directory" or "error"; the other fields are populated per type.
type Frame struct {
	Type      string           `json:"type"`
	ChatID    string           `json:"chat_id,omitempty"`
	ContactID string           `json:"contact_id,omitempty"`
	Count     int64            `json:"count"`
	Messages  []models.Message `json:"messages,omitempty"`
	Travelers []models.User    `json:"travelers,omitempty"`
	Message   string           `json:"message,omitempty"`
}

var (
	clientsMu sync.RWMutex
	clients   = make(map[uuid.UUID]*Client)
)

var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *models.Message)
var DirectoryChanged = make(chan uuid.UUID, 16)

// RunHub owns the client table. Presence writes and fan-out all happen here,
// driven by the channels above.
func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client
			clientsMu.Unlock()
			setPresence(client.UserID, true)
			pushDirectory()

		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if existing, ok := clients[client.UserID]; ok && existing == client {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
			setPresence(client.UserID, false)
			pushDirectory()

		case message := <-Broadcast:
			deliver(message)

		case <-DirectoryChanged:
			pushDirectory()
		}
	}
}

// deliveryPlan decides what one participant receives for a freshly persisted
// message. Subscribers get the full snapshot; a subscribed recipient is
// viewing the conversation, so the emission also marks the message read. A
// recipient without the conversation open only gets an unread counter bump.
func deliveryPlan(subscribed bool, participantID, senderID uuid.UUID) (snapshot, markRead, unread bool) {
	if subscribed {
		return true, participantID != senderID, false
	}
	return false, false, participantID != senderID
}

// deliver fans a freshly persisted message out to its two participants per
// deliveryPlan.
func deliver(message *models.Message) {
	msgs, err := services.LoadSnapshot(message.ChatID)
	if err != nil {
		log.Printf("Error loading snapshot for %s: %v", message.ChatID, err)
		return
	}

	for _, participantID := range utils.ChatParticipants(message.ChatID) {
		client := lookup(participantID)
		if client == nil {
			continue
		}
		snapshot, markRead, unread := deliveryPlan(client.SubscribedTo(message.ChatID), participantID, message.SenderID)
		if snapshot {
			if err := client.WriteJSON(Frame{Type: "snapshot", ChatID: message.ChatID, Messages: msgs}); err != nil {
				log.Printf("Error sending snapshot to client %s: %v", participantID, err)
				dropClient(client)
				continue
			}
		}
		if markRead {
			go MarkReadAndRepublish(client, message.SenderID)
		}
		if unread {
			count, err := services.UnreadCount(participantID, message.SenderID)
			if err != nil {
				log.Printf("Error counting unread for %s: %v", participantID, err)
				continue
			}
			if err := client.WriteJSON(Frame{Type: "unread", ContactID: message.SenderID.String(), Count: count}); err != nil {
				log.Printf("Error sending unread count to client %s: %v", participantID, err)
				dropClient(client)
			}
		}
	}
}

// MarkReadAndRepublish adds the client to the read-set of everything the
// contact has sent them, then re-emits the snapshot so the contact observes
// the grown read-sets. Runs fire and forget, on opening a conversation and on
// each live emission to a subscribed recipient; failures are only logged
// since the next emission re-evaluates read state.
func MarkReadAndRepublish(client *Client, contactID uuid.UUID) {
	chatID, marked, err := services.MarkConversationRead(client.UserID, contactID)
	if err != nil {
		log.Printf("Failed to mark conversation %s read for %s: %v", chatID, client.UserID, err)
		return
	}
	if marked > 0 {
		PublishSnapshot(chatID)
	}
	SendUnread(client, contactID)
}

// PublishSnapshot re-emits the conversation to every participant that has it
// open. Called after read-state changes so both sides observe the grown
// read-sets without waiting for the next message.
func PublishSnapshot(chatID string) {
	msgs, err := services.LoadSnapshot(chatID)
	if err != nil {
		log.Printf("Error loading snapshot for %s: %v", chatID, err)
		return
	}
	for _, participantID := range utils.ChatParticipants(chatID) {
		client := lookup(participantID)
		if client == nil || !client.SubscribedTo(chatID) {
			continue
		}
		if err := client.WriteJSON(Frame{Type: "snapshot", ChatID: chatID, Messages: msgs}); err != nil {
			log.Printf("Error sending snapshot to client %s: %v", participantID, err)
			dropClient(client)
		}
	}
}

// SendSnapshot pushes the current state of a conversation to one client,
// the initial emission after opening it.
func SendSnapshot(client *Client, chatID string) error {
	msgs, err := services.LoadSnapshot(chatID)
	if err != nil {
		return err
	}
	return client.WriteJSON(Frame{Type: "snapshot", ChatID: chatID, Messages: msgs})
}

// SendUnread pushes the client's unread count for one contact.
func SendUnread(client *Client, contactID uuid.UUID) {
	count, err := services.UnreadCount(client.UserID, contactID)
	if err != nil {
		log.Printf("Error counting unread for %s: %v", client.UserID, err)
		return
	}
	if err := client.WriteJSON(Frame{Type: "unread", ContactID: contactID.String(), Count: count}); err != nil {
		log.Printf("Error sending unread count to client %s: %v", client.UserID, err)
		dropClient(client)
	}
}

// NotifyDirectoryChanged queues a directory re-emission. Never blocks the
// caller; if the queue is full an emission is already pending and the change
// will ride along with it.
func NotifyDirectoryChanged(userID uuid.UUID) {
	select {
	case DirectoryChanged <- userID:
	default:
	}
}

// pushDirectory sends every connected client the current traveler directory,
// each one filtered to exclude themselves.
func pushDirectory() {
	var users []models.User
	if err := database.DB.Order("name asc").Find(&users).Error; err != nil {
		log.Printf("Error loading traveler directory: %v", err)
		return
	}

	clientsMu.RLock()
	receivers := make([]*Client, 0, len(clients))
	for _, client := range clients {
		receivers = append(receivers, client)
	}
	clientsMu.RUnlock()

	for _, client := range receivers {
		travelers := make([]models.User, 0, len(users))
		for _, u := range users {
			if u.ID != client.UserID {
				travelers = append(travelers, u)
			}
		}
		if err := client.WriteJSON(Frame{Type: "directory", Travelers: travelers}); err != nil {
			log.Printf("Error sending directory to client %s: %v", client.UserID, err)
			dropClient(client)
		}
	}
}

func setPresence(userID uuid.UUID, online bool) {
	now := time.Now()
	err := database.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"is_online": online, "last_seen_at": now}).Error
	if err != nil {
		log.Printf("Error updating presence for %s: %v", userID, err)
	}
}

// TouchPresence refreshes a user's last-seen timestamp. Called on every
// inbound frame so the stale-presence sweep only reaps dead sessions.
func TouchPresence(userID uuid.UUID) {
	err := database.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen_at", time.Now()).Error
	if err != nil {
		log.Printf("Error touching presence for %s: %v", userID, err)
	}
}

func lookup(userID uuid.UUID) *Client {
	clientsMu.RLock()
	defer clientsMu.RUnlock()
	return clients[userID]
}

func dropClient(client *Client) {
	client.Conn.Close()
	clientsMu.Lock()
	if existing, ok := clients[client.UserID]; ok && existing == client {
		delete(clients, client.UserID)
	}
	clientsMu.Unlock()
}
