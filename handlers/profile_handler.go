package handlers

import (
	"github.com/rajeshh21/nomads-journal/database"
	"github.com/rajeshh21/nomads-journal/models"
	"github.com/rajeshh21/nomads-journal/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	Bio             *string `json:"bio"`
	TravelStyle     *string `json:"travel_style"`
	Interests       *string `json:"interests"`
	HomeCountry     *string `json:"home_country"`
	CurrentLocation *string `json:"current_location"`
	AvatarURL       *string `json:"avatar_url"`
}

type UpdateLocationRequest struct {
	Latitude        float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude       float64 `json:"longitude" validate:"min=-180,max=180"`
	CurrentLocation *string `json:"current_location"`
}

func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	return userID
}

func currentUserName(c *fiber.Ctx) string {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	name, _ := claims["name"].(string)
	return name
}

func GetProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.TravelStyle != nil {
		user.TravelStyle = req.TravelStyle
	}
	if req.Interests != nil {
		user.Interests = req.Interests
	}
	if req.HomeCountry != nil {
		user.HomeCountry = req.HomeCountry
	}
	if req.CurrentLocation != nil {
		user.CurrentLocation = req.CurrentLocation
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	websocket.NotifyDirectoryChanged(userID)

	return c.JSON(user)
}

func UpdateLocation(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.Latitude = &req.Latitude
	user.Longitude = &req.Longitude
	if req.CurrentLocation != nil {
		user.CurrentLocation = req.CurrentLocation
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update location"})
	}

	websocket.NotifyDirectoryChanged(userID)

	return c.JSON(user)
}
