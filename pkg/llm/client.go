package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/scribehq/scribe-api/pkg/github"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	// GenerationTimeout is the hard ceiling on a single model invocation.
	// This is the only externally imposed deadline in the system.
	GenerationTimeout = 15 * time.Second
)

// Client calls the Gemini text-generation REST API
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at an alternate endpoint (tests)
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(raw, "/")
	}
}

// WithTimeout overrides the generation deadline (tests)
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a Gemini client
func NewClient(apiKey, model string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		timeout:    GenerationTimeout,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Error struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateDraft produces raw changelog text from an ordered, non-empty list
// of commits. The invocation is abandoned once the deadline elapses; no
// partial output escapes. The model's categorization and wording are trusted
// as-is apart from whitespace trimming.
func (c *Client) GenerateDraft(ctx context.Context, commits []github.CommitRecord) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: BuildPrompt(commits)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var result generateResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("%w: invalid response body", ErrUpstream)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, result)
	}

	if result.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: %s", ErrSafetyBlocked, result.PromptFeedback.BlockReason)
	}

	if len(result.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	candidate := result.Candidates[0]
	if candidate.FinishReason == "SAFETY" {
		return "", fmt.Errorf("%w: completion filtered", ErrSafetyBlocked)
	}

	var text strings.Builder
	for _, p := range candidate.Content.Parts {
		text.WriteString(p.Text)
	}

	draft := strings.TrimSpace(text.String())
	if draft == "" {
		return "", ErrEmptyResponse
	}

	return draft, nil
}

func classifyStatus(statusCode int, result generateResponse) error {
	switch {
	case result.Error.Status == "RESOURCE_EXHAUSTED":
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, result.Error.Message)
	case statusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return fmt.Errorf("%w: provider rejected credential", ErrMissingAPIKey)
	default:
		return fmt.Errorf("%w: status %d", ErrUpstream, statusCode)
	}
}
