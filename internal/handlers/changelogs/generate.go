package changelogs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/scribehq/scribe-api/internal/config"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/internal/registry"
	"github.com/scribehq/scribe-api/pkg/github"
	"github.com/scribehq/scribe-api/pkg/llm"
	"github.com/scribehq/scribe-api/pkg/response"
	"github.com/scribehq/scribe-api/pkg/utils"
)

// GenerateRequest represents the generation request body
type GenerateRequest struct {
	ProjectName string `json:"projectName"`
	RepoUrl     string `json:"repoUrl"`
	CommitCount int    `json:"commitCount"`
}

// Generate runs the changelog generation workflow: resolve the project for
// the repository URL, fetch recent commits, draft a changelog with the model
// and persist it as a draft. Validation and authorization failures return
// before any side effect; a failed fetch or generation persists nothing.
// POST /api/changelogs/generate
func Generate(c *fiber.Ctx) error {
	db := database.GetDatabase()
	cfg := config.Get()
	ctx := context.Background()

	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid authentication")
	}

	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.ProjectName = strings.TrimSpace(req.ProjectName)
	if req.ProjectName == "" {
		return response.BadRequest(c, "Project name is required")
	}
	if !utils.ValidateRepoURL(req.RepoUrl) {
		return response.BadRequest(c, "Invalid repository URL. Expected format: https://github.com/owner/repo")
	}
	if req.CommitCount < 1 || req.CommitCount > github.MaxCommitCount {
		return response.BadRequest(c, fmt.Sprintf("Commit count must be between 1 and %d", github.MaxCommitCount))
	}

	// The generating user needs a GitHub credential to read the source repo
	var account models.GithubAccount
	if err := db.Where("userId = ?", user.ID).Order("updatedAt DESC").First(&account).Error; err != nil {
		return response.Forbidden(c, "Connect your GitHub account before generating a changelog")
	}

	validAccount, err := github.EnsureValidGithubToken(account.ID)
	if err != nil {
		fmt.Printf("Failed to ensure valid GitHub token: %v\n", err)
		return response.Forbidden(c, "Failed to authenticate with GitHub")
	}

	owner, repoName, ok := utils.ParseRepoURL(req.RepoUrl)
	if !ok {
		return response.BadRequest(c, "Invalid repository URL. Expected format: https://github.com/owner/repo")
	}

	client := newGitHubClient(ctx, validAccount.AccessToken)

	// Repository access is checked against the hosting platform; this is
	// independent of Scribe-side project ownership.
	access, err := client.CheckRepositoryAccess(ctx, owner, repoName, validAccount.Username)
	if err != nil {
		return githubError(c, err)
	}
	if !access.CanAccess {
		return response.Forbidden(c, "You do not have access to this repository")
	}

	project, err := registry.ResolveOrCreate(db, req.ProjectName, req.RepoUrl, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrInvalidRepositoryURL):
			return response.BadRequest(c, "Invalid repository URL. Expected format: https://github.com/owner/repo")
		case errors.Is(err, registry.ErrDuplicateRepository):
			return response.Conflict(c, "This repository was registered by a concurrent request, please retry")
		default:
			fmt.Printf("Failed to resolve project: %v\n", err)
			return response.InternalServerError(c, "Failed to resolve project")
		}
	}

	commits, err := client.ListRecentCommits(ctx, owner, repoName, req.CommitCount)
	if err != nil {
		return githubError(c, err)
	}
	if len(commits) == 0 {
		return response.NotFound(c, "No commits found in this repository")
	}

	draft, err := newLLMClient(cfg).GenerateDraft(ctx, commits)
	if err != nil {
		return llmError(c, err)
	}

	hashes := make([]string, 0, len(commits))
	for _, commit := range commits {
		hashes = append(hashes, commit.SHA)
	}

	now := time.Now()
	changelog := models.Changelog{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		CreatedBy: &user.ID,
		Version:   utils.FormatVersion(now),
		SummaryAI: draft,
		Status:    models.ChangelogStatusDraft,
		CreatedAt: now,
	}
	if err := changelog.SetCommitHashes(hashes); err != nil {
		return response.InternalServerError(c, "Failed to save changelog")
	}

	if err := db.Create(&changelog).Error; err != nil {
		return response.InternalServerError(c, "Failed to save changelog")
	}

	// A fresh draft counts as project activity
	db.Model(&models.Project{}).Where("id = ?", project.ID).Update("updatedAt", now)

	return response.Success(c, fiber.Map{
		"changelogId": changelog.ID,
		"draftText":   draft,
		"version":     changelog.Version,
		"projectId":   project.ID,
		"commitCount": len(commits),
	})
}

// githubError maps commit-source failures to user-facing statuses
func githubError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, github.ErrInvalidCommitCount):
		return response.BadRequest(c, fmt.Sprintf("Commit count must be between 1 and %d", github.MaxCommitCount))
	case errors.Is(err, github.ErrRepositoryNotFound):
		return response.NotFound(c, "Repository not found")
	case errors.Is(err, github.ErrAccessDenied):
		return response.Forbidden(c, "GitHub denied access to this repository")
	case errors.Is(err, github.ErrRateLimited):
		return response.TooManyRequests(c, "GitHub rate limit exceeded, try again later")
	default:
		fmt.Printf("GitHub request failed: %v\n", err)
		return response.BadGateway(c, "Failed to fetch commits from GitHub")
	}
}

// llmError maps draft-generation failures to user-facing statuses
func llmError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, llm.ErrTimeout):
		return response.GatewayTimeout(c, "Changelog generation timed out, try again")
	case errors.Is(err, llm.ErrRateLimited), errors.Is(err, llm.ErrQuotaExceeded):
		return response.TooManyRequests(c, "Generation quota exceeded, try again later")
	case errors.Is(err, llm.ErrSafetyBlocked):
		return response.Error(c, fiber.StatusUnprocessableEntity, "Generation was blocked by the provider's content filter")
	case errors.Is(err, llm.ErrMissingAPIKey):
		return response.InternalServerError(c, "Changelog generation is not configured")
	default:
		fmt.Printf("Draft generation failed: %v\n", err)
		return response.BadGateway(c, "Failed to generate changelog draft")
	}
}
