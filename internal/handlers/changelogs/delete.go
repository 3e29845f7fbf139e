package changelogs

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/internal/redis"
	"github.com/scribehq/scribe-api/pkg/response"
)

// Delete hard-deletes a changelog. The owning user may delete at any time,
// draft or published; ownership is the only business rule.
// DELETE /api/changelogs/:changelogId
func Delete(c *fiber.Ctx) error {
	db := database.GetDatabase()
	changelogID := c.Params("changelogId")

	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid authentication")
	}

	var changelog models.Changelog
	if err := db.Where("id = ?", changelogID).First(&changelog).Error; err != nil {
		return response.NotFound(c, "Changelog not found")
	}

	if changelog.CreatedBy == nil || *changelog.CreatedBy != user.ID {
		return response.Forbidden(c, "You do not own this changelog")
	}

	if err := db.Delete(&models.Changelog{}, "id = ?", changelogID).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete changelog")
	}

	_ = redis.InvalidatePublishedList(c.Context(), changelog.ProjectID)

	return response.Success(c, fiber.Map{
		"message": "Changelog deleted successfully",
	})
}
