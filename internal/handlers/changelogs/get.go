package changelogs

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/pkg/response"
)

// Get returns a single changelog, drafts included, to its owner
// GET /api/changelogs/:changelogId
func Get(c *fiber.Ctx) error {
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

	return response.Success(c, changelog)
}
