package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	config "github.com/rajeshh21/nomads-journal/configs"
	"github.com/rajeshh21/nomads-journal/database"
	"github.com/rajeshh21/nomads-journal/models"
	"github.com/rajeshh21/nomads-journal/services"
	"github.com/rajeshh21/nomads-journal/utils"
	"github.com/rajeshh21/nomads-journal/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type ConversationSummary struct {
	ChatID          string       `json:"chat_id"`
	Contact         *models.User `json:"contact"`
	LastMessage     string       `json:"last_message"`
	LastMessageTime time.Time    `json:"last_message_time"`
	UnreadCount     int64        `json:"unread_count"`
}

type SendMessageRequest struct {
	ContactID string `json:"contact_id" validate:"required,uuid"`
	Content   string `json:"content" validate:"required"`
}

// GetUserConversations lists the caller's conversations newest-first, each
// with the counterpart's profile and the caller's unread count.
func GetUserConversations(c *fiber.Ctx) error {
	selfID := currentUserID(c)

	var conversations []models.Conversation
	err := database.DB.
		Where("participant_a = ? OR participant_b = ?", selfID, selfID).
		Order("last_message_time desc").
		Find(&conversations).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch conversations"})
	}

	contactIDs := make([]uuid.UUID, 0, len(conversations))
	for i := range conversations {
		contactIDs = append(contactIDs, conversations[i].Counterpart(selfID))
	}

	contacts := make(map[uuid.UUID]*models.User, len(contactIDs))
	if len(contactIDs) > 0 {
		var users []models.User
		if err := database.DB.Where("id IN ?", contactIDs).Find(&users).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch contacts"})
		}
		for i := range users {
			contacts[users[i].ID] = &users[i]
		}
	}

	unread, err := services.UnreadCounts(selfID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch unread counts"})
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for i := range conversations {
		contactID := conversations[i].Counterpart(selfID)
		summaries = append(summaries, ConversationSummary{
			ChatID:          conversations[i].ChatID,
			Contact:         contacts[contactID],
			LastMessage:     conversations[i].LastMessage,
			LastMessageTime: conversations[i].LastMessageTime,
			UnreadCount:     unread[contactID.String()],
		})
	}

	return c.JSON(summaries)
}

// GetConversationMessages returns the full ordered message list of one
// conversation. Only its participants may read it.
func GetConversationMessages(c *fiber.Ctx) error {
	selfID := currentUserID(c)
	chatID := c.Params("chatId")

	if !chatParticipant(chatID, selfID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a participant of this conversation"})
	}

	msgs, err := services.LoadSnapshot(chatID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	return c.JSON(msgs)
}

// GetUnreadCounts returns the caller's unread totals keyed by contact id.
func GetUnreadCounts(c *fiber.Ctx) error {
	selfID := currentUserID(c)

	counts, err := services.UnreadCounts(selfID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch unread counts"})
	}

	return c.JSON(counts)
}

// MarkConversationRead adds the caller to the read-set of every message the
// contact has sent them. Idempotent; repeating it marks nothing new.
func MarkConversationRead(c *fiber.Ctx) error {
	selfID := currentUserID(c)

	contactID, err := uuid.Parse(c.Params("contactId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contact ID"})
	}

	chatID, marked, err := services.MarkConversationRead(selfID, contactID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark conversation read"})
	}
	if marked > 0 {
		websocket.PublishSnapshot(chatID)
	}

	return c.JSON(fiber.Map{"chat_id": chatID, "marked_read": marked})
}

// SendMessage is the REST send path; the websocket loop accepts the same
// payload. A failed append or metadata write reports a failed send and makes
// no attempt to roll back whichever write did land.
func SendMessage(c *fiber.Ctx) error {
	selfID := currentUserID(c)
	selfName := currentUserName(c)

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	contactID, _ := uuid.Parse(req.ContactID)

	if _, err := lookupRecipient(contactID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Recipient not found"})
	}

	msg, err := persistMessage(selfID, selfName, contactID, req.Content)
	if err != nil {
		log.Printf("Failed to send message from %s to %s: %v", selfID, contactID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
	}

	websocket.Broadcast <- msg

	return c.Status(fiber.StatusCreated).JSON(msg)
}

var lookupRecipient = func(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

var persistMessage = services.PersistMessage

func chatParticipant(chatID string, userID uuid.UUID) bool {
	for _, id := range utils.ChatParticipants(chatID) {
		if id == userID {
			return true
		}
	}
	return false
}

type wsInbound struct {
	Type      string `json:"type"`
	Token     string `json:"token,omitempty"`
	ContactID string `json:"contact_id,omitempty"`
	Content   string `json:"content,omitempty"`
}

// ServeWs runs one client's websocket session: an auth frame first, then a
// loop of open/message/close frames. Each "open" replaces the previous
// conversation subscription, delivers the initial snapshot, and kicks off the
// fire-and-forget read-marking that never gates rendering.
func ServeWs(c *websocketcontrib.Conn) {
	var authMsg wsInbound
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		log.Printf("WebSocket auth failed: invalid or missing auth message, error: %v", err)
		_ = c.WriteJSON(fiber.Map{"type": "error", "message": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		log.Printf("WebSocket auth failed: invalid token, error: %v", err)
		_ = c.WriteJSON(fiber.Map{"type": "error", "message": "Invalid token"})
		c.Close()
		return
	}

	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		log.Printf("WebSocket auth failed: invalid user_id, error: %v", err)
		_ = c.WriteJSON(fiber.Map{"type": "error", "message": "Invalid user ID"})
		c.Close()
		return
	}
	name, _ := claims["name"].(string)

	client := &websocket.Client{UserID: userID, Name: name, Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	for {
		var msg wsInbound
		if err := c.ReadJSON(&msg); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}

		websocket.TouchPresence(userID)

		switch msg.Type {
		case "open":
			contactID, err := uuid.Parse(msg.ContactID)
			if err != nil {
				_ = client.WriteJSON(fiber.Map{"type": "error", "message": "Invalid contact ID"})
				continue
			}
			chatID := client.OpenConversation(contactID)
			if err := websocket.SendSnapshot(client, chatID); err != nil {
				log.Printf("Failed to send snapshot to client %s: %v", userID, err)
				_ = client.WriteJSON(fiber.Map{"type": "error", "message": "Failed to load conversation"})
				continue
			}
			go websocket.MarkReadAndRepublish(client, contactID)

		case "message":
			dbMessage, errFrame := sendFromSocket(userID, name, msg)
			if errFrame != nil {
				_ = client.WriteJSON(errFrame)
				continue
			}
			if dbMessage == nil {
				continue
			}
			websocket.Broadcast <- dbMessage

		case "close":
			client.CloseConversation()

		default:
			_ = client.WriteJSON(fiber.Map{"type": "error", "message": "Unknown frame type"})
		}
	}
}

// sendFromSocket validates and persists one inbound chat frame. Returns the
// persisted message, or the error frame to write back to the sender. Both nil
// means an empty frame that is silently dropped. Sends to an id no user has
// are refused so that stray frames cannot create orphan conversations.
func sendFromSocket(senderID uuid.UUID, senderName string, msg wsInbound) (*models.Message, fiber.Map) {
	contactID, err := uuid.Parse(msg.ContactID)
	if err != nil {
		return nil, fiber.Map{"type": "error", "message": "Invalid contact ID"}
	}
	if msg.Content == "" {
		return nil, nil
	}
	if _, err := lookupRecipient(contactID); err != nil {
		return nil, fiber.Map{"type": "error", "message": "Recipient not found"}
	}
	dbMessage, err := persistMessage(senderID, senderName, contactID, msg.Content)
	if err != nil {
		log.Printf("Failed to save message for client %s: %v", senderID, err)
		return nil, fiber.Map{"type": "error", "message": "Failed to send message"}
	}
	return dbMessage, nil
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
