package handlers

import (
	"math"
	"sort"
	"strconv"

	"github.com/rajeshh21/nomads-journal/database"
	"github.com/rajeshh21/nomads-journal/models"
	"github.com/rajeshh21/nomads-journal/utils"
	"github.com/gofiber/fiber/v2"
)

type TravelerWithDistance struct {
	models.User
	DistanceKm *float64 `json:"distance_km"`
}

// ListTravelers returns the contact directory: every user except the caller.
// Search is a substring filter applied in-process over name and current
// location, the same way the live directory feed filters.
func ListTravelers(c *fiber.Ctx) error {
	selfID := currentUserID(c)
	query := c.Query("q")

	var users []models.User
	if err := database.DB.Where("id <> ?", selfID).Order("name asc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch travelers"})
	}

	travelers := make([]models.User, 0, len(users))
	for i := range users {
		if utils.MatchTraveler(&users[i], query) {
			travelers = append(travelers, users[i])
		}
	}

	return c.JSON(travelers)
}

// MapTravelers returns every user that has shared coordinates, the dataset
// the world map renders markers from.
func MapTravelers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch travelers"})
	}

	return c.JSON(users)
}

// NearbyTravelers lists other users with locations sorted by great-circle
// distance from the caller's reported position. Without lat/lng parameters
// the list is unsorted and distances are omitted.
func NearbyTravelers(c *fiber.Ctx) error {
	selfID := currentUserID(c)

	var hasOrigin bool
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat == nil && errLng == nil {
		hasOrigin = true
	}

	var users []models.User
	if err := database.DB.
		Where("id <> ? AND latitude IS NOT NULL AND longitude IS NOT NULL", selfID).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch travelers"})
	}

	travelers := make([]TravelerWithDistance, 0, len(users))
	for _, u := range users {
		t := TravelerWithDistance{User: u}
		if hasOrigin {
			d := math.Round(utils.HaversineKm(lat, lng, *u.Latitude, *u.Longitude))
			t.DistanceKm = &d
		}
		travelers = append(travelers, t)
	}

	if hasOrigin {
		sort.Slice(travelers, func(i, j int) bool {
			return *travelers[i].DistanceKm < *travelers[j].DistanceKm
		})
	}

	return c.JSON(travelers)
}
