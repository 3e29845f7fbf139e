package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/scribehq/scribe-api/internal/config"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/models"
	"golang.org/x/oauth2"
)

// MaxCommitCount is the inclusive upper bound on commits per generation request
const MaxCommitCount = 100

// CommitRecord is a normalized commit sourced from the hosting API
type CommitRecord struct {
	SHA         string `json:"sha"`
	Message     string `json:"message"`
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	Timestamp   string `json:"timestamp"`
}

// AccessInfo describes the authenticated user's permissions on a repository
type AccessInfo struct {
	CanAccess      bool `json:"canAccess"`
	IsOwner        bool `json:"isOwner"`
	HasWriteAccess bool `json:"hasWriteAccess"`
}

// Client wraps the GitHub client
type Client struct {
	client *gh.Client
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at an alternate API endpoint (tests)
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		if parsed, err := url.Parse(raw); err == nil {
			c.client.BaseURL = parsed
		}
	}
}

// NewClientWithToken creates a GitHub client with an OAuth access token
func NewClientWithToken(ctx context.Context, token string, opts ...Option) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	client := &Client{client: gh.NewClient(tc)}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// ListRecentCommits fetches up to count commits for owner/repo, most recent
// first. Pages are fetched until count records are collected or the repository
// is exhausted. No retries: every failure is terminal for the request.
func (c *Client) ListRecentCommits(ctx context.Context, owner, repo string, count int) ([]CommitRecord, error) {
	if count < 1 || count > MaxCommitCount {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidCommitCount, count, MaxCommitCount)
	}

	opts := &gh.CommitsListOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	records := make([]CommitRecord, 0, count)
	for {
		commits, resp, err := c.client.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			// GitHub answers 409 for a repository with no commits yet
			var ghErr *gh.ErrorResponse
			if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusConflict {
				return records, nil
			}
			return nil, classifyError(err)
		}

		for _, commit := range commits {
			records = append(records, CommitRecord{
				SHA:         commit.GetSHA(),
				Message:     commit.GetCommit().GetMessage(),
				AuthorName:  commit.GetCommit().GetAuthor().GetName(),
				AuthorEmail: commit.GetCommit().GetAuthor().GetEmail(),
				Timestamp:   commit.GetCommit().GetAuthor().GetDate().Format(time.RFC3339),
			})
			if len(records) == count {
				return records, nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return records, nil
}

// CheckRepositoryAccess asks the hosting API what the authenticated user may
// do with owner/repo. A 404 means the repository is invisible to this
// credential, which is reported as CanAccess=false rather than an error.
func (c *Client) CheckRepositoryAccess(ctx context.Context, owner, repo, username string) (*AccessInfo, error) {
	repoInfo, _, err := c.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		var ghErr *gh.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil {
			switch ghErr.Response.StatusCode {
			case http.StatusNotFound, http.StatusUnauthorized, http.StatusForbidden:
				return &AccessInfo{}, nil
			}
		}
		return nil, classifyError(err)
	}

	perms := repoInfo.GetPermissions()
	return &AccessInfo{
		CanAccess:      true,
		IsOwner:        strings.EqualFold(repoInfo.GetOwner().GetLogin(), username),
		HasWriteAccess: perms["push"] || perms["admin"],
	}, nil
}

// classifyError maps a go-github failure onto the adapter's closed error set
// at the point of failure, so callers never reconstruct the kind downstream.
func classifyError(err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: resets at %s", ErrRateLimited, rateErr.Rate.Reset.Format(time.RFC3339))
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: secondary rate limit", ErrRateLimited)
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return ErrRepositoryNotFound
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrAccessDenied
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: too many requests", ErrRateLimited)
		}
		return fmt.Errorf("%w: status %d", ErrUpstream, ghErr.Response.StatusCode)
	}

	return fmt.Errorf("%w: %v", ErrUpstream, err)
}

// tokenRefreshResponse represents the response from GitHub OAuth token refresh
type tokenRefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	Error        string `json:"error"`
	ErrorDesc    string `json:"error_description"`
}

// EnsureValidGithubToken checks if a GitHub token is expired and refreshes it
// if needed. Returns the GithubAccount with a valid token.
func EnsureValidGithubToken(githubAccountID string) (*models.GithubAccount, error) {
	db := database.GetDatabase()
	cfg := config.Get()

	var githubAccount models.GithubAccount
	if err := db.Where("id = ?", githubAccountID).First(&githubAccount).Error; err != nil {
		return nil, fmt.Errorf("GitHub account not found: %s", githubAccountID)
	}

	now := time.Now()
	isExpired := githubAccount.ExpiresAt != nil && githubAccount.ExpiresAt.Before(now)
	if !isExpired {
		return &githubAccount, nil
	}

	if githubAccount.RefreshToken == nil || *githubAccount.RefreshToken == "" {
		return nil, fmt.Errorf("GitHub token expired and no refresh token available for account: %s", githubAccountID)
	}

	log.Printf("GitHub token expired, refreshing...")

	requestBody, _ := json.Marshal(map[string]string{
		"client_id":     cfg.GitHubClientID,
		"client_secret": cfg.GitHubClientSecret,
		"refresh_token": *githubAccount.RefreshToken,
		"grant_type":    "refresh_token",
	})

	req, err := http.NewRequest("POST", "https://github.com/login/oauth/access_token", bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	defer resp.Body.Close()

	var tokenData tokenRefreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenData); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	if tokenData.Error != "" {
		return nil, fmt.Errorf("failed to refresh GitHub token: %s - %s", tokenData.Error, tokenData.ErrorDesc)
	}

	if tokenData.AccessToken == "" {
		return nil, fmt.Errorf("failed to refresh GitHub token: no access token in response")
	}

	// GitHub tokens expire after 6 hours
	expiresAt := time.Now().Add(6 * time.Hour)

	updates := map[string]interface{}{
		"accessToken": tokenData.AccessToken,
		"expiresAt":   expiresAt,
		"updatedAt":   time.Now(),
	}
	if tokenData.RefreshToken != "" {
		updates["refreshToken"] = tokenData.RefreshToken
	}

	if err := db.Model(&githubAccount).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update GitHub account with new token: %w", err)
	}

	if err := db.Where("id = ?", githubAccountID).First(&githubAccount).Error; err != nil {
		return nil, fmt.Errorf("failed to reload GitHub account: %w", err)
	}

	return &githubAccount, nil
}
