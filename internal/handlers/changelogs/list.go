package changelogs

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/internal/redis"
	"github.com/scribehq/scribe-api/pkg/response"
)

// ListPublished returns a project's published changelogs, newest first,
// optionally filtered by a text match on the final summary. Public: this is
// the viewer-facing listing. Unfiltered responses are served from a short
// Redis cache invalidated on publish and delete.
// GET /api/projects/:projectId/changelogs?search=
func ListPublished(c *fiber.Ctx) error {
	db := database.GetDatabase()
	projectID := c.Params("projectId")
	search := c.Query("search")

	if projectID == "" {
		return response.BadRequest(c, "Project ID is required")
	}

	var project models.Project
	if err := db.Where("id = ?", projectID).First(&project).Error; err != nil {
		return response.NotFound(c, "Project not found")
	}

	if search == "" {
		var cached []models.Changelog
		if hit, err := redis.GetPublishedList(c.Context(), projectID, &cached); err == nil && hit {
			return response.Success(c, cached)
		}
	}

	query := db.Where("projectId = ? AND status = ?", projectID, models.ChangelogStatusPublished).
		Order("publishedAt DESC")
	if search != "" {
		query = query.Where("summaryFinal LIKE ?", "%"+search+"%")
	}

	var changelogs []models.Changelog
	if err := query.Find(&changelogs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch changelogs")
	}

	if search == "" {
		_ = redis.SetPublishedList(c.Context(), projectID, changelogs)
	}

	return response.Success(c, changelogs)
}
