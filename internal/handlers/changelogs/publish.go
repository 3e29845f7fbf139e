package changelogs

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/internal/redis"
	"github.com/scribehq/scribe-api/pkg/response"
)

// PublishRequest represents the publish request body
type PublishRequest struct {
	Summary string `json:"summary"`
}

// Publish transitions a draft to published with the user-edited final
// summary. The transition is one-way and not idempotent: a second publish is
// rejected as a conflict and leaves publishedAt untouched.
// POST /api/changelogs/:changelogId/publish
func Publish(c *fiber.Ctx) error {
	db := database.GetDatabase()
	changelogID := c.Params("changelogId")

	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid authentication")
	}

	var req PublishRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Summary) == "" {
		return response.BadRequest(c, "Final summary is required")
	}

	var changelog models.Changelog
	if err := db.Where("id = ?", changelogID).First(&changelog).Error; err != nil {
		return response.NotFound(c, "Changelog not found")
	}

	if changelog.CreatedBy == nil || *changelog.CreatedBy != user.ID {
		return response.Forbidden(c, "You do not own this changelog")
	}

	if changelog.Status == models.ChangelogStatusPublished {
		return response.Conflict(c, "Changelog is already published")
	}

	now := time.Now()

	// Conditional update so a concurrent publish cannot apply twice
	result := db.Model(&models.Changelog{}).
		Where("id = ? AND status = ?", changelogID, models.ChangelogStatusDraft).
		Updates(map[string]interface{}{
			"summaryFinal": req.Summary,
			"publishedAt":  now,
			"status":       models.ChangelogStatusPublished,
		})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to publish changelog")
	}
	if result.RowsAffected == 0 {
		return response.Conflict(c, "Changelog is already published")
	}

	// Publishing counts as project activity, which drives the public
	// "recently active" ordering
	db.Model(&models.Project{}).Where("id = ?", changelog.ProjectID).Update("updatedAt", now)

	_ = redis.InvalidatePublishedList(c.Context(), changelog.ProjectID)

	return response.Success(c, fiber.Map{
		"changelogId": changelog.ID,
		"version":     changelog.Version,
		"status":      models.ChangelogStatusPublished,
		"publishedAt": now,
		"projectId":   changelog.ProjectID,
	})
}
