package models

import "time"

type User struct {
	ID             string          `gorm:"primaryKey;size:191;column:id" json:"id"`
	Email          *string         `gorm:"uniqueIndex;size:191;column:email" json:"email,omitempty"`
	Password       string          `gorm:"size:191;column:password" json:"-"`
	GithubUsername *string         `gorm:"uniqueIndex;size:191;column:githubUsername" json:"githubUsername,omitempty"`
	Name           *string         `gorm:"size:191;column:name" json:"name,omitempty"`
	AvatarUrl      *string         `gorm:"size:191;column:avatarUrl" json:"avatarUrl,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`
	GithubAccounts []GithubAccount `gorm:"foreignKey:UserID" json:"githubAccounts,omitempty"`
}

func (User) TableName() string {
	return "User"
}
