package utils

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/scribehq/scribe-api/internal/config"
)

var (
	repoURLPattern    = regexp.MustCompile(`^https://[A-Za-z0-9.-]+/[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+/?$`)
	commitHashPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)
)

// FormatVersion builds a changelog version string from a timestamp.
// Two changelogs generated within the same minute share a version; the
// version is a label, not an identifier, so collisions are accepted.
func FormatVersion(t time.Time) string {
	return t.Format("2006.01.02-1504")
}

// ValidateRepoURL reports whether url looks like https://host/owner/repo
// (trailing slash allowed)
func ValidateRepoURL(url string) bool {
	return repoURLPattern.MatchString(url)
}

// NormalizeRepoURL strips a trailing slash so .../repo and .../repo/
// resolve to the same project
func NormalizeRepoURL(url string) string {
	return strings.TrimSuffix(url, "/")
}

// ParseRepoURL extracts the owner and repository name from a repository URL.
// Returns ok=false when the URL does not match the expected shape.
func ParseRepoURL(url string) (owner, repo string, ok bool) {
	if !repoURLPattern.MatchString(url) {
		return "", "", false
	}
	parts := strings.Split(NormalizeRepoURL(url), "/")
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[len(parts)-2], parts[len(parts)-1], true
}

// IsCommitHash reports whether s is a full 40-character hex commit hash
func IsCommitHash(s string) bool {
	return commitHashPattern.MatchString(s)
}

// ValidateEmail validates email format using Go's net/mail package
func ValidateEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// GenerateStateToken generates an opaque state parameter for the OAuth flow
func GenerateStateToken() string {
	state, _ := gonanoid.Generate("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", 32)
	return state
}

// GetClientIP extracts client IP from Fiber request
func GetClientIP(c *fiber.Ctx) string {
	// Check X-Forwarded-For header first
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	// Check X-Real-IP header
	if xri := c.Get("X-Real-IP"); xri != "" {
		return xri
	}
	// Fall back to remote address
	return c.IP()
}

// GenerateToken generates a JWT token for authentication
func GenerateToken(userID, email string) (string, error) {
	cfg := config.Get()
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"exp":    time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 days
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
