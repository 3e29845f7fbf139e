package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/pkg/response"
	"github.com/scribehq/scribe-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles password login
// POST /api/auth/login
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if !utils.ValidateEmail(req.Email) {
		return response.BadRequest(c, "Invalid email address")
	}

	if len(req.Password) == 0 {
		return response.BadRequest(c, "Password is required")
	}

	db := database.GetDatabase()

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return response.BadRequest(c, "Email and password do not match")
	}

	// OAuth-only accounts carry no password hash
	if user.Password == "" {
		return response.BadRequest(c, "Email and password do not match")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return response.BadRequest(c, "Email and password do not match")
	}

	token, err := utils.GenerateToken(user.ID, req.Email)
	if err != nil {
		fmt.Printf("Token generation error: %v\n", err)
		return response.InternalServerError(c, "Internal server error")
	}

	return response.Success(c, fiber.Map{
		"user": fiber.Map{
			"id":             user.ID,
			"email":          user.Email,
			"name":           user.Name,
			"githubUsername": user.GithubUsername,
		},
		"token": token,
	})
}
