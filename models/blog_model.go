package models

import (
	"time"

	"github.com/google/uuid"
)

type Blog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	AuthorName string    `gorm:"size:255;not null" json:"author_name"`

	Title    string  `gorm:"size:255;not null" json:"title"`
	Content  string  `gorm:"type:text;not null" json:"content"`
	Location *string `gorm:"size:255" json:"location"`
	Tags     *string `gorm:"size:255" json:"tags"`
	ImageURL *string `gorm:"size:512" json:"image_url"`

	LikeRows []BlogLike `gorm:"foreignKey:BlogID" json:"-"`
	Likes    []string   `gorm:"-" json:"likes"`
	Comments []Comment  `gorm:"foreignKey:BlogID" json:"comments"`

	CreatedAt time.Time `json:"created_at"`
}

// FillLikes projects the preloaded like rows into the serialized list of
// user ids, matching what clients render a heart count from.
func (b *Blog) FillLikes() {
	b.Likes = make([]string, 0, len(b.LikeRows))
	for _, l := range b.LikeRows {
		b.Likes = append(b.Likes, l.UserID.String())
	}
}

// BlogLike is one user's like on one blog; the composite key makes liking
// idempotent and unliking a single row delete.
type BlogLike struct {
	BlogID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"blog_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
