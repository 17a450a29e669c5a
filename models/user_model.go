package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	Bio             *string `gorm:"type:text" json:"bio"`
	TravelStyle     *string `gorm:"size:50" json:"travel_style"`
	Interests       *string `gorm:"type:text" json:"interests"`
	HomeCountry     *string `gorm:"size:100" json:"home_country"`
	CurrentLocation *string `gorm:"size:255" json:"current_location"`
	AvatarURL       *string `gorm:"size:255" json:"avatar_url"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	IsOnline   bool       `gorm:"default:false" json:"is_online"`
	LastSeenAt *time.Time `json:"last_seen_at"`

	ResetPasswordToken          *string    `gorm:"size:255;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasLocation reports whether the user has shared coordinates. The map and
// nearby feeds only include users for which this is true.
func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}
