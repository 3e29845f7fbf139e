package projects

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/pkg/response"
)

// Get returns a single project. Public.
// GET /api/projects/:projectId
func Get(c *fiber.Ctx) error {
	db := database.GetDatabase()
	projectID := c.Params("projectId")

	if projectID == "" {
		return response.BadRequest(c, "Project ID is required")
	}

	var project models.Project
	if err := db.Where("id = ?", projectID).First(&project).Error; err != nil {
		return response.NotFound(c, "Project not found")
	}

	return response.Success(c, project)
}
