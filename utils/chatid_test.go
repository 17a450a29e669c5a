package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatIDCommutative(t *testing.T) {
	a := uuid.New().String()
	b := uuid.New().String()

	assert.Equal(t, ChatID(a, b), ChatID(b, a))
}

func TestChatIDDistinctPairs(t *testing.T) {
	a := uuid.New().String()
	b := uuid.New().String()
	c := uuid.New().String()

	assert.NotEqual(t, ChatID(a, b), ChatID(a, c))
	assert.NotEqual(t, ChatID(a, b), ChatID(b, c))
}

func TestChatIDOrdersLexicographically(t *testing.T) {
	id := ChatID("bbb", "aaa")
	assert.Equal(t, "aaa_bbb", id)
}

func TestChatParticipantsRoundTrip(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	ids := ChatParticipants(ChatID(a.String(), b.String()))
	require.Len(t, ids, 2)
	assert.Contains(t, ids, a)
	assert.Contains(t, ids, b)
}

func TestChatParticipantsMalformed(t *testing.T) {
	assert.Empty(t, ChatParticipants("not_a_uuid"))
}
