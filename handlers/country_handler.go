package handlers

import (
	"strings"

	"github.com/rajeshh21/nomads-journal/services"
	"github.com/gofiber/fiber/v2"
)

// GetCountry serves the discover-by-country browser. Lookups are proxied
// through the server so the public API is hit once per country, not once per
// client.
func GetCountry(c *fiber.Ctx) error {
	name := c.Params("name")

	country, err := services.FetchCountry(name)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Country not found"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Country lookup failed"})
	}

	return c.JSON(country)
}
