package handlers

import (
	"github.com/rajeshh21/nomads-journal/database"
	"github.com/rajeshh21/nomads-journal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateBlogRequest struct {
	Title    string  `json:"title" validate:"required"`
	Content  string  `json:"content" validate:"required"`
	Location *string `json:"location"`
	Tags     *string `json:"tags"`
	ImageURL *string `json:"image_url"`
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

func CreateBlog(c *fiber.Ctx) error {
	authorID := currentUserID(c)
	authorName := currentUserName(c)

	var req CreateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title and content are required"})
	}

	blog := models.Blog{
		AuthorID:   authorID,
		AuthorName: authorName,
		Title:      req.Title,
		Content:    req.Content,
		Location:   req.Location,
		Tags:       req.Tags,
		ImageURL:   req.ImageURL,
	}
	if err := database.DB.Create(&blog).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to publish blog"})
	}
	blog.FillLikes()

	return c.Status(fiber.StatusCreated).JSON(blog)
}

// ListBlogs returns the feed newest-first with likes and comments attached.
func ListBlogs(c *fiber.Ctx) error {
	var blogs []models.Blog
	err := database.DB.
		Preload("LikeRows").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.created_at asc") }).
		Order("created_at desc").
		Find(&blogs).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch blogs"})
	}

	for i := range blogs {
		blogs[i].FillLikes()
	}

	return c.JSON(blogs)
}

// DeleteBlog removes one of the caller's own blogs, comments and likes with
// it. Deleting somebody else's blog is forbidden.
func DeleteBlog(c *fiber.Ctx) error {
	selfID := currentUserID(c)

	blogID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid blog ID"})
	}

	var blog models.Blog
	if err := database.DB.First(&blog, "id = ?", blogID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Blog not found"})
	}
	if blog.AuthorID != selfID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only the author can delete this blog"})
	}

	database.DB.Where("blog_id = ?", blogID).Delete(&models.Comment{})
	database.DB.Where("blog_id = ?", blogID).Delete(&models.BlogLike{})
	if err := database.DB.Delete(&blog).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete blog"})
	}

	return c.JSON(fiber.Map{"message": "Blog deleted"})
}

// ToggleLike adds the caller to the blog's like set, or removes them if
// already present. The like set has set semantics: liking twice in a row
// still counts once.
func ToggleLike(c *fiber.Ctx) error {
	selfID := currentUserID(c)

	blogID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid blog ID"})
	}

	var blog models.Blog
	if err := database.DB.First(&blog, "id = ?", blogID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Blog not found"})
	}

	var existing models.BlogLike
	err = database.DB.Where("blog_id = ? AND user_id = ?", blogID, selfID).First(&existing).Error
	if err == nil {
		if err := database.DB.Delete(&existing).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to unlike"})
		}
		return c.JSON(fiber.Map{"liked": false})
	}

	like := models.BlogLike{BlogID: blogID, UserID: selfID}
	if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to like"})
	}

	return c.JSON(fiber.Map{"liked": true})
}

func AddComment(c *fiber.Ctx) error {
	selfID := currentUserID(c)
	selfName := currentUserName(c)

	blogID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid blog ID"})
	}

	var req AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var blog models.Blog
	if err := database.DB.First(&blog, "id = ?", blogID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Blog not found"})
	}

	comment := models.Comment{
		BlogID:   blogID,
		UserID:   selfID,
		UserName: selfName,
		Text:     req.Text,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add comment"})
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment removes one of the caller's own comments.
func DeleteComment(c *fiber.Ctx) error {
	selfID := currentUserID(c)

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid comment ID"})
	}

	var comment models.Comment
	if err := database.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Comment not found"})
	}
	if comment.UserID != selfID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only the author can delete this comment"})
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete comment"})
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
