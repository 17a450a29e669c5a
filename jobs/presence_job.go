package jobs

import (
	"log"
	"time"

	"github.com/rajeshh21/nomads-journal/database"
	"github.com/rajeshh21/nomads-journal/models"
	"github.com/rajeshh21/nomads-journal/websocket"
	"github.com/google/uuid"
)

const staleAfter = 15 * time.Minute

// SweepStalePresence marks users offline whose sessions died without the
// hub seeing a disconnect (crashed clients, dropped connections). Online
// users refresh their last-seen timestamp on every websocket frame, so
// anyone quiet longer than the threshold is gone.
func SweepStalePresence() {
	cutoff := time.Now().Add(-staleAfter)

	res := database.DB.Model(&models.User{}).
		Where("is_online = ? AND (last_seen_at IS NULL OR last_seen_at < ?)", true, cutoff).
		Update("is_online", false)
	if res.Error != nil {
		log.Printf("Error sweeping stale presence: %v", res.Error)
		return
	}

	if res.RowsAffected > 0 {
		log.Printf("Marked %d user(s) offline after inactivity.", res.RowsAffected)
		websocket.NotifyDirectoryChanged(uuid.Nil)
	}
}
