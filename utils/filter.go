package utils

import (
	"strings"

	"github.com/rajeshh21/nomads-journal/models"
)

// MatchTraveler reports whether the user matches a directory search query.
// Matching is a case-insensitive substring test against the display name and
// the free-text current-location label; an empty query matches everyone.
func MatchTraveler(u *models.User, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(u.Name), q) {
		return true
	}
	if u.CurrentLocation != nil && strings.Contains(strings.ToLower(*u.CurrentLocation), q) {
		return true
	}
	return false
}
