package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/pkg/response"
)

// GET /api/auth/user (protected)
func GetUser(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid token")
	}

	return response.Success(c, fiber.Map{
		"id":             user.ID,
		"email":          user.Email,
		"name":           user.Name,
		"githubUsername": user.GithubUsername,
		"avatarUrl":      user.AvatarUrl,
		"createdAt":      user.CreatedAt,
	})
}
