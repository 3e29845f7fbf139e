// Package registry maps a repository URL to exactly one project record.
package registry

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/pkg/utils"
	"gorm.io/gorm"
)

var (
	// ErrInvalidRepositoryURL is returned before any lookup when the URL
	// does not match https://host/owner/repo
	ErrInvalidRepositoryURL = errors.New("invalid repository url")

	// ErrDuplicateRepository is returned when a concurrent create loses the
	// race on the unique repository URL index. Surfaced as a conflict, not
	// retried.
	ErrDuplicateRepository = errors.New("repository already registered")
)

// ResolveOrCreate returns the single project for repoURL, creating it on
// first use. The operation is idempotent with respect to the URL: repeated
// calls return the same record and never overwrite its name. A previously
// anonymous record is claimed by the first authenticated owner, and records
// predating the repoOwner/repoName split get those fields backfilled.
func ResolveOrCreate(db *gorm.DB, name, repoURL, ownerUserID string) (*models.Project, error) {
	if !utils.ValidateRepoURL(repoURL) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRepositoryURL, repoURL)
	}
	normalized := utils.NormalizeRepoURL(repoURL)

	var project models.Project
	err := db.Where("repositoryUrl = ?", normalized).First(&project).Error
	if err == nil {
		return claimAndBackfill(db, &project, ownerUserID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up project: %w", err)
	}

	// Consistency re-check: the parse must agree with the upstream validation
	owner, repoName, ok := utils.ParseRepoURL(normalized)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRepositoryURL, repoURL)
	}

	now := time.Now()
	project = models.Project{
		ID:            uuid.NewString(),
		Name:          name,
		RepositoryURL: normalized,
		RepoOwner:     &owner,
		RepoName:      &repoName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if ownerUserID != "" {
		project.OwnerID = &ownerUserID
	}

	if err := db.Create(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRepository, normalized)
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &project, nil
}

func claimAndBackfill(db *gorm.DB, project *models.Project, ownerUserID string) (*models.Project, error) {
	updates := map[string]interface{}{}

	if project.OwnerID == nil && ownerUserID != "" {
		updates["ownerId"] = ownerUserID
		project.OwnerID = &ownerUserID
	}

	if project.RepoOwner == nil || project.RepoName == nil {
		owner, repoName, ok := utils.ParseRepoURL(project.RepositoryURL)
		if ok {
			if project.RepoOwner == nil {
				updates["repoOwner"] = owner
				project.RepoOwner = &owner
			}
			if project.RepoName == nil {
				updates["repoName"] = repoName
				project.RepoName = &repoName
			}
		}
	}

	if len(updates) == 0 {
		return project, nil
	}

	if err := db.Model(&models.Project{}).Where("id = ?", project.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}
