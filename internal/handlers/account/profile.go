package account

import (
	"net/mail"

	"github.com/gofiber/fiber/v2"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/pkg/response"
)

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PATCH /api/account/profile
func UpdateProfile(c *fiber.Ctx) error {
	db := database.GetDatabase()

	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid authentication")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if len(req.Name) < 2 {
		return response.BadRequest(c, "Name must be at least 2 characters")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return response.BadRequest(c, "Invalid email format")
	}

	// Check if email is already taken by another user
	var existingUser models.User
	if err := db.Where("email = ? AND id != ?", req.Email, user.ID).First(&existingUser).Error; err == nil {
		return response.BadRequest(c, "Email already taken")
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"name":  req.Name,
		"email": req.Email,
	}).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	var updatedUser models.User
	db.Where("id = ?", user.ID).First(&updatedUser)

	return response.Success(c, fiber.Map{
		"user": fiber.Map{
			"id":             updatedUser.ID,
			"email":          updatedUser.Email,
			"name":           updatedUser.Name,
			"githubUsername": updatedUser.GithubUsername,
		},
	})
}
