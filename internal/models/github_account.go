package models

import "time"

type GithubAccount struct {
	ID           string     `gorm:"primaryKey;size:191;column:id" json:"id"`
	UserID       string     `gorm:"index;size:191;column:userId" json:"userId"`
	Username     string     `gorm:"size:191;column:username" json:"username"`
	Email        *string    `gorm:"size:191;column:email" json:"email,omitempty"`
	AvatarUrl    *string    `gorm:"size:191;column:avatarUrl" json:"avatarUrl,omitempty"`
	AccessToken  string     `gorm:"size:191;column:accessToken" json:"-"`
	RefreshToken *string    `gorm:"size:191;column:refreshToken" json:"-"`
	ExpiresAt    *time.Time `gorm:"column:expiresAt" json:"expiresAt,omitempty"`
	TokenType    *string    `gorm:"size:191;column:tokenType" json:"tokenType,omitempty"`
	Scope        *string    `gorm:"size:191;column:scope" json:"scope,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`
}

func (GithubAccount) TableName() string {
	return "GithubAccount"
}
