package changelogs

import (
	"context"

	"github.com/scribehq/scribe-api/internal/config"
	"github.com/scribehq/scribe-api/pkg/github"
	"github.com/scribehq/scribe-api/pkg/llm"
)

// Client constructors, swappable in tests to point at fake upstreams.
var (
	newGitHubClient = func(ctx context.Context, token string) *github.Client {
		return github.NewClientWithToken(ctx, token)
	}

	newLLMClient = func(cfg *config.Config) *llm.Client {
		return llm.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	}
)
