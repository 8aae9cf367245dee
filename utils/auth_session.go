package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	sessionPrefix      = "session:"
	userSessionsPrefix = "userSessions:"
)

// SessionRecord is the server-side state behind a cookie session. A login
// creates one; logout deletes it; logout-all deletes every record for the
// user. The JWT alone is not enough — the record must still exist.
type SessionRecord struct {
	SessionID     string    `json:"sessionId"`
	UserID        string    `json:"userId"`
	TokenHash     string    `json:"tokenHash"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// SaveSessionRecord saves the session record in Redis with a TTL and tracks
// it in the owner's session set.
func SaveSessionRecord(client *redis.Client, record SessionRecord, ttl time.Duration) error {
	record.LastUpdatedAt = time.Now()
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, sessionPrefix+record.SessionID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session record: %w", err)
	}
	if err := client.SAdd(ctx, userSessionsPrefix+record.UserID, record.SessionID).Err(); err != nil {
		return fmt.Errorf("failed to track session for user: %w", err)
	}
	return nil
}

// GetSessionRecord retrieves a session record from Redis.
func GetSessionRecord(client *redis.Client, sessionID string) (*SessionRecord, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, sessionPrefix+sessionID).Result()
	if err != nil {
		return nil, err
	}
	var record SessionRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session record: %w", err)
	}
	return &record, nil
}

// DeleteSessionRecord removes one session record.
func DeleteSessionRecord(client *redis.Client, sessionID string) error {
	ctx := context.Background()
	record, err := GetSessionRecord(client, sessionID)
	if err == nil {
		_ = client.SRem(ctx, userSessionsPrefix+record.UserID, sessionID).Err()
	}
	return client.Del(ctx, sessionPrefix+sessionID).Err()
}

// DeleteAllUserSessions removes every session record belonging to the user.
func DeleteAllUserSessions(client *redis.Client, userID string) error {
	ctx := context.Background()
	sessionIDs, err := client.SMembers(ctx, userSessionsPrefix+userID).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to list user sessions: %w", err)
	}
	for _, sid := range sessionIDs {
		if err := client.Del(ctx, sessionPrefix+sid).Err(); err != nil {
			return fmt.Errorf("failed to delete session %s: %w", sid, err)
		}
	}
	return client.Del(ctx, userSessionsPrefix+userID).Err()
}
