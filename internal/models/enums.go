package models

// ChangelogStatus enum
type ChangelogStatus string

const (
	ChangelogStatusDraft     ChangelogStatus = "draft"
	ChangelogStatusPublished ChangelogStatus = "published"
)
