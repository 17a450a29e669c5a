package handlers

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rajeshh21/nomads-journal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func swapSendSeams(t *testing.T, lookup func(uuid.UUID) (*models.User, error), persist func(uuid.UUID, string, uuid.UUID, string) (*models.Message, error)) {
	origLookup, origPersist := lookupRecipient, persistMessage
	lookupRecipient, persistMessage = lookup, persist
	t.Cleanup(func() {
		lookupRecipient, persistMessage = origLookup, origPersist
	})
}

func messagingTestApp(userID uuid.UUID, name string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": userID.String(),
			"name":    name,
		})
		c.Locals("user", token)
		return c.Next()
	})
	app.Post("/messages", SendMessage)
	return app
}

func postMessage(t *testing.T, app *fiber.App, contactID, content string) (int, string) {
	body := `{"contact_id":"` + contactID + `","content":"` + content + `"}`
	req := httptest.NewRequest("POST", "/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestSendMessageFailedPersistReportsFailedSend(t *testing.T) {
	swapSendSeams(t,
		func(id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		func(senderID uuid.UUID, senderName string, contactID uuid.UUID, content string) (*models.Message, error) {
			return nil, errors.New("insert failed")
		})

	app := messagingTestApp(uuid.New(), "Asha")
	status, body := postMessage(t, app, uuid.New().String(), "hello")

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"Failed to send message"}`, body)
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	swapSendSeams(t,
		func(id uuid.UUID) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		func(senderID uuid.UUID, senderName string, contactID uuid.UUID, content string) (*models.Message, error) {
			t.Error("must not persist a message to an unknown recipient")
			return nil, nil
		})

	app := messagingTestApp(uuid.New(), "Asha")
	status, body := postMessage(t, app, uuid.New().String(), "hello")

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"Recipient not found"}`, body)
}

func TestSocketSendRejectsUnknownRecipient(t *testing.T) {
	persisted := false
	swapSendSeams(t,
		func(id uuid.UUID) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		func(senderID uuid.UUID, senderName string, contactID uuid.UUID, content string) (*models.Message, error) {
			persisted = true
			return &models.Message{}, nil
		})

	msg := wsInbound{Type: "message", ContactID: uuid.New().String(), Content: "hi"}
	dbMessage, errFrame := sendFromSocket(uuid.New(), "Asha", msg)

	assert.Nil(t, dbMessage)
	require.NotNil(t, errFrame)
	assert.Equal(t, "Recipient not found", errFrame["message"])
	assert.False(t, persisted)
}

func TestSocketSendInvalidContactID(t *testing.T) {
	msg := wsInbound{Type: "message", ContactID: "not-a-uuid", Content: "hi"}
	dbMessage, errFrame := sendFromSocket(uuid.New(), "Asha", msg)

	assert.Nil(t, dbMessage)
	require.NotNil(t, errFrame)
	assert.Equal(t, "Invalid contact ID", errFrame["message"])
}

func TestSocketSendDropsEmptyContent(t *testing.T) {
	swapSendSeams(t,
		func(id uuid.UUID) (*models.User, error) {
			t.Fatal("empty frames must not hit the recipient lookup")
			return nil, nil
		},
		func(senderID uuid.UUID, senderName string, contactID uuid.UUID, content string) (*models.Message, error) {
			t.Fatal("empty frames must not be persisted")
			return nil, nil
		})

	msg := wsInbound{Type: "message", ContactID: uuid.New().String()}
	dbMessage, errFrame := sendFromSocket(uuid.New(), "Asha", msg)

	assert.Nil(t, dbMessage)
	assert.Nil(t, errFrame)
}

func TestSocketSendPersistsAndReturnsMessage(t *testing.T) {
	sender := uuid.New()
	contact := uuid.New()
	swapSendSeams(t,
		func(id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		func(senderID uuid.UUID, senderName string, contactID uuid.UUID, content string) (*models.Message, error) {
			assert.Equal(t, sender, senderID)
			assert.Equal(t, contact, contactID)
			return &models.Message{ID: 1, SenderID: senderID, Content: content}, nil
		})

	msg := wsInbound{Type: "message", ContactID: contact.String(), Content: "hi"}
	dbMessage, errFrame := sendFromSocket(sender, "Asha", msg)

	require.Nil(t, errFrame)
	require.NotNil(t, dbMessage)
	assert.Equal(t, "hi", dbMessage.Content)
}
