package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scribehq/scribe-api/internal/config"
)

const (
	// oauthStatePrefix keys pending OAuth state tokens
	oauthStatePrefix = "oauth:state:"
	// publishedListPrefix keys the cached public changelog listing per project
	publishedListPrefix = "changelogs:published:"

	oauthStateTTL    = 5 * time.Minute
	publishedListTTL = 60 * time.Second
)

var (
	client *redis.Client
	once   sync.Once
)

// Initialize sets up the Redis client and tests the connection
func Initialize(cfg *config.Config) error {
	var initErr error
	once.Do(func() {
		client = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
			DB:       0,
		})

		// Test connection
		ctx := context.Background()
		if err := client.Ping(ctx).Err(); err != nil {
			initErr = fmt.Errorf("failed to connect to Redis: %w", err)
		}
	})
	return initErr
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// SetClient sets the Redis client (for testing purposes only)
func SetClient(c *redis.Client) {
	client = c
}

// SaveOAuthState stores a pending OAuth state token with a short TTL
func SaveOAuthState(ctx context.Context, state string) error {
	return client.Set(ctx, oauthStatePrefix+state, "1", oauthStateTTL).Err()
}

// ConsumeOAuthState checks and deletes an OAuth state token. Returns false
// if the state was never issued or already used.
func ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	deleted, err := client.Del(ctx, oauthStatePrefix+state).Result()
	if err != nil {
		return false, fmt.Errorf("failed to consume oauth state: %w", err)
	}
	return deleted == 1, nil
}

// GetPublishedList returns the cached published-changelog listing for a
// project, unmarshalled into target. Returns false on a cache miss.
func GetPublishedList(ctx context.Context, projectID string, target interface{}) (bool, error) {
	data, err := client.Get(ctx, publishedListPrefix+projectID).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read published list cache: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("failed to decode published list cache: %w", err)
	}
	return true, nil
}

// SetPublishedList caches the published-changelog listing for a project
func SetPublishedList(ctx context.Context, projectID string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode published list cache: %w", err)
	}
	return client.Set(ctx, publishedListPrefix+projectID, data, publishedListTTL).Err()
}

// InvalidatePublishedList drops the cached listing after a publish or delete
func InvalidatePublishedList(ctx context.Context, projectID string) error {
	return client.Del(ctx, publishedListPrefix+projectID).Err()
}
