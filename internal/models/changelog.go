package models

import (
	"encoding/json"
	"time"
)

type Changelog struct {
	ID           string          `gorm:"primaryKey;size:191;column:id" json:"id"`
	ProjectID    string          `gorm:"index;size:191;column:projectId" json:"projectId"`
	CreatedBy    *string         `gorm:"index;size:191;column:createdBy" json:"createdBy,omitempty"`
	Version      string          `gorm:"size:191;column:version" json:"version"`
	SummaryAI    string          `gorm:"type:text;column:summaryAi" json:"summaryAi"`
	SummaryFinal *string         `gorm:"type:text;column:summaryFinal" json:"summaryFinal,omitempty"`
	CommitHashes JSON            `gorm:"type:json;column:commitHashes" json:"commitHashes,omitempty"`
	Status       ChangelogStatus `gorm:"size:191;column:status" json:"status"`
	CreatedAt    time.Time       `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	PublishedAt  *time.Time      `gorm:"column:publishedAt" json:"publishedAt,omitempty"`
}

func (Changelog) TableName() string {
	return "Changelog"
}

// SetCommitHashes stores the ordered commit hashes included in the draft
func (c *Changelog) SetCommitHashes(hashes []string) error {
	data, err := json.Marshal(hashes)
	if err != nil {
		return err
	}
	c.CommitHashes = JSON(data)
	return nil
}

// GetCommitHashes returns the ordered commit hashes included in the draft
func (c *Changelog) GetCommitHashes() ([]string, error) {
	var hashes []string
	if err := c.CommitHashes.UnmarshalTo(&hashes); err != nil {
		return nil, err
	}
	return hashes, nil
}
