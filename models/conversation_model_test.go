package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestConversationCounterpart(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	conv := Conversation{ParticipantA: a, ParticipantB: b}

	assert.Equal(t, b, conv.Counterpart(a))
	assert.Equal(t, a, conv.Counterpart(b))
}
