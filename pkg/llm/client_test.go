package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/scribehq/scribe-api/pkg/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleCommits = []github.CommitRecord{
	{SHA: "a1b2c3d4e5f6a7b8c9d0a1b2c3d4e5f6a7b8c9d0", Message: "Add CSV export to reports"},
	{SHA: "b2c3d4e5f6a7b8c9d0a1b2c3d4e5f6a7b8c9d0a1", Message: "Fix timezone drift in scheduler"},
	{SHA: "c3d4e5f6a7b8c9d0a1b2c3d4e5f6a7b8c9d0a1b2", Message: "chore: bump deps"},
}

func candidateBody(text string) string {
	payload := map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"parts": []interface{}{map[string]string{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
	raw, _ := json.Marshal(payload)
	return string(raw)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(sampleCommits)

	// Every commit message appears, keyed by its short hash
	assert.Contains(t, prompt, "a1b2c3d Add CSV export to reports")
	assert.Contains(t, prompt, "b2c3d4e Fix timezone drift in scheduler")

	// Drafting policy from the embedded template is rendered
	assert.Contains(t, prompt, "Features")
	assert.Contains(t, prompt, "Bug Fixes")
	assert.Contains(t, prompt, "most recent first")
}

func TestGenerateDraft_TrimsWhitespaceOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-test:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candidateBody("\n\n## Features\n- CSV export\n\n## Bug Fixes\n- Timezone drift\n\n")))
	}))
	defer server.Close()

	client := NewClient("key", "gemini-test", WithBaseURL(server.URL))

	draft, err := client.GenerateDraft(context.Background(), sampleCommits)
	require.NoError(t, err)

	// Outer whitespace is stripped, interior structure is untouched
	assert.Equal(t, "## Features\n- CSV export\n\n## Bug Fixes\n- Timezone drift", draft)
}

func TestGenerateDraft_MissingKeyNeverCallsOut(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client := NewClient("", "gemini-test", WithBaseURL(server.URL))

	_, err := client.GenerateDraft(context.Background(), sampleCommits)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestGenerateDraft_EmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no candidates", body: `{"candidates": []}`},
		{name: "blank text", body: candidateBody("   \n\t  ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient("key", "gemini-test", WithBaseURL(server.URL))

			_, err := client.GenerateDraft(context.Background(), sampleCommits)
			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}

func TestGenerateDraft_SafetyBlocked(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "prompt blocked", body: `{"promptFeedback": {"blockReason": "SAFETY"}}`},
		{
			name: "completion filtered",
			body: `{"candidates": [{"content": {"parts": [{"text": "partial"}]}, "finishReason": "SAFETY"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient("key", "gemini-test", WithBaseURL(server.URL))

			_, err := client.GenerateDraft(context.Background(), sampleCommits)
			assert.ErrorIs(t, err, ErrSafetyBlocked)
		})
	}
}

func TestGenerateDraft_ProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   `{"error": {"code": 429, "status": "UNAVAILABLE", "message": "slow down"}}`,
			want:   ErrRateLimited,
		},
		{
			name:   "quota exhausted",
			status: http.StatusTooManyRequests,
			body:   `{"error": {"code": 429, "status": "RESOURCE_EXHAUSTED", "message": "quota exceeded"}}`,
			want:   ErrQuotaExceeded,
		},
		{
			name:   "bad credential",
			status: http.StatusForbidden,
			body:   `{"error": {"code": 403, "status": "PERMISSION_DENIED", "message": "key invalid"}}`,
			want:   ErrMissingAPIKey,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error": {"code": 500, "status": "INTERNAL", "message": "boom"}}`,
			want:   ErrUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient("key", "gemini-test", WithBaseURL(server.URL))

			_, err := client.GenerateDraft(context.Background(), sampleCommits)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerateDraft_DeadlineAbandonsCall(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient("key", "gemini-test", WithBaseURL(server.URL), WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := client.GenerateDraft(context.Background(), sampleCommits)
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, elapsed, 2*time.Second)

	// One attempt, no retries
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
