package projects

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/pkg/response"
)

// List returns all projects, most recently active first. Public: viewing
// projects requires no identity.
// GET /api/projects
func List(c *fiber.Ctx) error {
	db := database.GetDatabase()

	var projects []models.Project
	if err := db.Order("updatedAt DESC").Find(&projects).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch projects")
	}

	return response.Success(c, projects)
}
