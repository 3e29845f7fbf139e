package auth

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/scribehq/scribe-api/internal/config"
	"github.com/scribehq/scribe-api/internal/redis"
	"github.com/scribehq/scribe-api/pkg/response"
	"github.com/scribehq/scribe-api/pkg/utils"
)

// GitHubLogin starts the GitHub OAuth flow
// GET /api/auth/github
func GitHubLogin(c *fiber.Ctx) error {
	cfg := config.Get()

	if cfg.GitHubClientID == "" {
		return response.InternalServerError(c, "GitHub OAuth is not configured")
	}

	state := utils.GenerateStateToken()
	if err := redis.SaveOAuthState(c.Context(), state); err != nil {
		return response.InternalServerError(c, "Failed to start GitHub login")
	}

	callbackURL := fmt.Sprintf("%s/callback/github", cfg.ApiURL)
	authorizeURL := fmt.Sprintf(
		"https://github.com/login/oauth/authorize?client_id=%s&redirect_uri=%s&scope=%s&state=%s",
		cfg.GitHubClientID,
		url.QueryEscape(callbackURL),
		url.QueryEscape("repo read:user user:email"),
		state,
	)

	return c.Redirect(authorizeURL)
}
