package utils

import (
	"testing"

	"github.com/rajeshh21/nomads-journal/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestMatchTravelerEmptyQuery(t *testing.T) {
	u := models.User{Name: "Aisha"}
	assert.True(t, MatchTraveler(&u, ""))
	assert.True(t, MatchTraveler(&u, "   "))
}

func TestMatchTravelerByName(t *testing.T) {
	u := models.User{Name: "Aisha Banerjee"}
	assert.True(t, MatchTraveler(&u, "banerjee"))
	assert.True(t, MatchTraveler(&u, "AISHA"))
	assert.False(t, MatchTraveler(&u, "marco"))
}

func TestMatchTravelerByLocation(t *testing.T) {
	u := models.User{Name: "Marco", CurrentLocation: strPtr("Lisbon, Portugal")}
	assert.True(t, MatchTraveler(&u, "lisbon"))
	assert.False(t, MatchTraveler(&u, "berlin"))
}

func TestMatchTravelerNilLocation(t *testing.T) {
	u := models.User{Name: "Marco"}
	assert.False(t, MatchTraveler(&u, "lisbon"))
}
