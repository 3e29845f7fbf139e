package account

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/pkg/response"
	"golang.org/x/crypto/bcrypt"
)

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// PATCH /api/account/password
func UpdatePassword(c *fiber.Ctx) error {
	db := database.GetDatabase()

	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid authentication")
	}

	if user.Password == "" {
		return response.BadRequest(c, "This account signs in with GitHub and has no password")
	}

	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if len(req.NewPassword) < 8 {
		return response.BadRequest(c, "New password must be at least 8 characters")
	}
	if req.NewPassword != req.ConfirmPassword {
		return response.BadRequest(c, "Passwords don't match")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return response.BadRequest(c, "Current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return response.InternalServerError(c, "Failed to update password")
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("password", string(hashedPassword)).Error; err != nil {
		return response.InternalServerError(c, "Failed to update password")
	}

	return response.Success(c, fiber.Map{
		"message": "Password updated successfully",
	})
}
