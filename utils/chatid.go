package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ChatID maps a pair of user ids to the canonical conversation key. The two
// ids are sorted before joining, so ChatID(a, b) == ChatID(b, a), and since
// user ids are UUIDs the "_" separator can never occur inside an id, distinct
// unordered pairs never collide.
func ChatID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}

// ChatParticipants recovers the two participant ids from a canonical chat id.
// Malformed segments are skipped rather than returned as zero ids.
func ChatParticipants(chatID string) []uuid.UUID {
	parts := strings.SplitN(chatID, "_", 2)
	ids := make([]uuid.UUID, 0, 2)
	for _, p := range parts {
		id, err := uuid.Parse(p)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
