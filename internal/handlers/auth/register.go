package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/pkg/response"
	"github.com/scribehq/scribe-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register creates a password-based account
// POST /api/auth/register
func Register(c *fiber.Ctx) error {
	db := database.GetDatabase()

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if !utils.ValidateEmail(req.Email) {
		return response.BadRequest(c, "Invalid email address")
	}

	if len(req.Password) < 8 {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return response.Conflict(c, "An account with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return response.InternalServerError(c, "Failed to create account")
	}

	user := models.User{
		ID:       uuid.NewString(),
		Email:    &req.Email,
		Password: string(hashedPassword),
	}
	if req.Name != "" {
		user.Name = &req.Name
	}

	if err := db.Create(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to create account")
	}

	token, err := utils.GenerateToken(user.ID, req.Email)
	if err != nil {
		return response.InternalServerError(c, "Internal server error")
	}

	return response.Success(c, fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
		"token": token,
	})
}
