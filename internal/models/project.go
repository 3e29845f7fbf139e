package models

import "time"

type Project struct {
	ID            string      `gorm:"primaryKey;size:191;column:id" json:"id"`
	Name          string      `gorm:"size:191;column:name" json:"name"`
	Description   *string     `gorm:"size:191;column:description" json:"description,omitempty"`
	RepositoryURL string      `gorm:"uniqueIndex;size:191;column:repositoryUrl" json:"repositoryUrl"`
	// RepoOwner and RepoName are derived from RepositoryURL. They are nullable
	// because records created before the split lacked them; the registry
	// backfills both on the next resolve.
	RepoOwner  *string     `gorm:"size:191;column:repoOwner" json:"repoOwner,omitempty"`
	RepoName   *string     `gorm:"size:191;column:repoName" json:"repoName,omitempty"`
	OwnerID    *string     `gorm:"index;size:191;column:ownerId" json:"ownerId,omitempty"`
	CreatedAt  time.Time   `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`
	Changelogs []Changelog `gorm:"foreignKey:ProjectID" json:"changelogs,omitempty"`
}

func (Project) TableName() string {
	return "Project"
}
