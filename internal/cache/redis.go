package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const threadKeyFmt = "thread:%s:posts"

var client *redis.Client

// Init initializes the Redis connection. The cache is optional; every
// helper degrades to a no-op when the client is nil.
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (string, bool) {
	if client == nil {
		return "", false
	}
	key := hashCredentials(email, password)
	memberID, err := client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return memberID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password, memberID string) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Set(ctx, key, memberID, 15*time.Minute)
}

// InvalidateAuth removes cached auth for a member (on password change/suspension)
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Del(ctx, key)
}

// GetCachedThreadPosts returns a cached rendered thread page if available
func GetCachedThreadPosts(ctx context.Context, threadID string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(threadKeyFmt, threadID)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheThreadPosts caches a rendered thread page for 2 minutes
func CacheThreadPosts(ctx context.Context, threadID string, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(threadKeyFmt, threadID), data, 2*time.Minute)
}

// InvalidateThreadPosts drops the cached page after a write to the thread
func InvalidateThreadPosts(ctx context.Context, threadID string) {
	if client == nil {
		return
	}
	client.Del(ctx, fmt.Sprintf(threadKeyFmt, threadID))
}
