package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatVersion(t *testing.T) {
	ts := time.Date(2025, 3, 9, 14, 7, 0, 0, time.UTC)
	version := FormatVersion(ts)

	assert.Equal(t, "2025.03.09-1407", version)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}-\d{4}$`), version)
}

func TestFormatVersion_SameMinuteCollides(t *testing.T) {
	// Versions generated in the same wall-clock minute are textually equal.
	// This is documented behavior, not a defect.
	first := time.Date(2025, 3, 9, 14, 7, 1, 0, time.UTC)
	second := time.Date(2025, 3, 9, 14, 7, 59, 0, time.UTC)

	assert.Equal(t, FormatVersion(first), FormatVersion(second))
}

func TestValidateRepoURL(t *testing.T) {
	valid := []string{
		"https://github.com/acme/widgets",
		"https://github.com/acme/widgets/",
		"https://gitlab.example.com/team/repo",
		"https://github.com/acme/my-repo.js",
	}
	for _, url := range valid {
		assert.True(t, ValidateRepoURL(url), url)
	}

	invalid := []string{
		"",
		"github.com/acme/widgets",
		"http://github.com/acme/widgets",
		"https://github.com/acme",
		"https://github.com/acme/widgets/extra",
		"https://github.com/acme/widgets?tab=readme",
	}
	for _, url := range invalid {
		assert.False(t, ValidateRepoURL(url), url)
	}
}

func TestNormalizeRepoURL(t *testing.T) {
	assert.Equal(t, "https://github.com/acme/widgets", NormalizeRepoURL("https://github.com/acme/widgets/"))
	assert.Equal(t, "https://github.com/acme/widgets", NormalizeRepoURL("https://github.com/acme/widgets"))
}

func TestParseRepoURL(t *testing.T) {
	owner, repo, ok := ParseRepoURL("https://github.com/acme/widgets")
	assert.True(t, ok)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "widgets", repo)

	owner, repo, ok = ParseRepoURL("https://github.com/acme/widgets/")
	assert.True(t, ok)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "widgets", repo)

	_, _, ok = ParseRepoURL("not a url")
	assert.False(t, ok)
}

func TestIsCommitHash(t *testing.T) {
	assert.True(t, IsCommitHash("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	assert.True(t, IsCommitHash("0123456789abcdef0123456789abcdef01234567"))

	assert.False(t, IsCommitHash("abc123"))
	assert.False(t, IsCommitHash("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"))
	assert.False(t, IsCommitHash("zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"))
	assert.False(t, IsCommitHash(""))
}
