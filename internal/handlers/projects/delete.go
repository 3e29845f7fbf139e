package projects

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/internal/redis"
	"github.com/scribehq/scribe-api/pkg/response"
)

// Delete removes a project and every changelog under it. Only the Scribe-side
// owner may delete; repository permissions play no part here.
// DELETE /api/projects/:projectId
func Delete(c *fiber.Ctx) error {
	db := database.GetDatabase()
	projectID := c.Params("projectId")

	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid authentication")
	}

	if projectID == "" {
		return response.BadRequest(c, "Project ID is required")
	}

	var project models.Project
	if err := db.Where("id = ?", projectID).First(&project).Error; err != nil {
		return response.NotFound(c, "Project not found")
	}

	if project.OwnerID == nil || *project.OwnerID != user.ID {
		return response.Forbidden(c, "You do not own this project")
	}

	// Cascade: changelogs first, then the project itself
	if err := db.Where("projectId = ?", projectID).Delete(&models.Changelog{}).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete project changelogs")
	}

	if err := db.Delete(&models.Project{}, "id = ?", projectID).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete project")
	}

	_ = redis.InvalidatePublishedList(c.Context(), projectID)

	return response.Success(c, fiber.Map{
		"message": "Project deleted successfully",
	})
}
