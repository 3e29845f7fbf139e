package callback

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/scribehq/scribe-api/internal/config"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/internal/redis"
	"github.com/scribehq/scribe-api/pkg/utils"
)

// GitHubTokenResponse represents the response from GitHub OAuth token exchange
type GitHubTokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// GitHubUserResponse represents the response from GitHub user API
type GitHubUserResponse struct {
	Login     string `json:"login"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// GitHub handles the GitHub OAuth callback: it verifies the state parameter,
// exchanges the code for an access token, upserts the developer's account and
// credential, and hands a session token back to the app.
// GET /api/callback/github
func GitHub(c *fiber.Ctx) error {
	cfg := config.Get()
	origin := cfg.AppURL

	code := c.Query("code")
	state := c.Query("state")

	if code == "" || state == "" {
		return redirectWithError(c, origin, "missing_params")
	}

	valid, err := redis.ConsumeOAuthState(c.Context(), state)
	if err != nil || !valid {
		return redirectWithError(c, origin, "invalid_state")
	}

	tokenData, err := exchangeCodeForToken(cfg, code)
	if err != nil || tokenData.AccessToken == "" {
		fmt.Printf("Failed to exchange code for token: %v\n", err)
		return redirectWithError(c, origin, "auth_failed")
	}

	userData, err := getGitHubUser(tokenData)
	if err != nil {
		fmt.Printf("Failed to get GitHub user: %v\n", err)
		return redirectWithError(c, origin, "user_data_failed")
	}

	db := database.GetDatabase()

	// Find or create the Scribe user for this GitHub identity
	var user models.User
	err = db.Where("githubUsername = ?", userData.Login).First(&user).Error
	if err != nil {
		user = models.User{
			ID:             uuid.NewString(),
			GithubUsername: &userData.Login,
		}
		if userData.Email != "" {
			user.Email = &userData.Email
		}
		if userData.Name != "" {
			user.Name = &userData.Name
		}
		if userData.AvatarURL != "" {
			user.AvatarUrl = &userData.AvatarURL
		}

		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Failed to create user: %v\n", err)
			return redirectWithError(c, origin, "auth_failed")
		}
	}

	// GitHub tokens expire after 6 hours
	expiresAt := time.Now().Add(6 * time.Hour)

	var account models.GithubAccount
	err = db.Where("userId = ? AND username = ?", user.ID, userData.Login).First(&account).Error
	if err == nil {
		account.AccessToken = tokenData.AccessToken
		account.RefreshToken = &tokenData.RefreshToken
		account.ExpiresAt = &expiresAt
		account.TokenType = &tokenData.TokenType
		account.Scope = &tokenData.Scope
		account.Email = &userData.Email
		account.AvatarUrl = &userData.AvatarURL
		account.UpdatedAt = time.Now()

		if err := db.Save(&account).Error; err != nil {
			fmt.Printf("Failed to update GitHub account: %v\n", err)
			return redirectWithError(c, origin, "auth_failed")
		}
	} else {
		account = models.GithubAccount{
			ID:           uuid.NewString(),
			UserID:       user.ID,
			Username:     userData.Login,
			Email:        &userData.Email,
			AvatarUrl:    &userData.AvatarURL,
			AccessToken:  tokenData.AccessToken,
			RefreshToken: &tokenData.RefreshToken,
			ExpiresAt:    &expiresAt,
			TokenType:    &tokenData.TokenType,
			Scope:        &tokenData.Scope,
		}

		if err := db.Create(&account).Error; err != nil {
			fmt.Printf("Failed to create GitHub account: %v\n", err)
			return redirectWithError(c, origin, "auth_failed")
		}
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	token, err := utils.GenerateToken(user.ID, email)
	if err != nil {
		fmt.Printf("Token generation error: %v\n", err)
		return redirectWithError(c, origin, "auth_failed")
	}

	return redirectWithHeaders(c, fmt.Sprintf("%s/auth/callback?token=%s", origin, url.QueryEscape(token)))
}

// exchangeCodeForToken exchanges the OAuth code for an access token
func exchangeCodeForToken(cfg *config.Config, code string) (*GitHubTokenResponse, error) {
	data := url.Values{}
	data.Set("client_id", cfg.GitHubClientID)
	data.Set("client_secret", cfg.GitHubClientSecret)
	data.Set("code", code)

	req, err := http.NewRequest("POST", "https://github.com/login/oauth/access_token", strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var tokenData GitHubTokenResponse
	if err := json.Unmarshal(body, &tokenData); err != nil {
		return nil, err
	}

	return &tokenData, nil
}

// getGitHubUser gets the GitHub user data
func getGitHubUser(tokenData *GitHubTokenResponse) (*GitHubUserResponse, error) {
	req, err := http.NewRequest("GET", "https://api.github.com/user", nil)
	if err != nil {
		return nil, err
	}

	tokenType := tokenData.TokenType
	if tokenType == "" {
		tokenType = "token"
	}
	req.Header.Set("Authorization", fmt.Sprintf("%s %s", tokenType, tokenData.AccessToken))
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get user data: %s", string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var userData GitHubUserResponse
	if err := json.Unmarshal(body, &userData); err != nil {
		return nil, err
	}

	return &userData, nil
}

// redirectWithError redirects with an error query parameter
func redirectWithError(c *fiber.Ctx, origin, errorCode string) error {
	return redirectWithHeaders(c, fmt.Sprintf("%s/auth/callback?error=%s", origin, errorCode))
}

// redirectWithHeaders sets cache headers and redirects
func redirectWithHeaders(c *fiber.Ctx, url string) error {
	c.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Set("Referrer-Policy", "no-referrer")
	return c.Redirect(url)
}
