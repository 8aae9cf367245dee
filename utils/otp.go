package utils

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// GenerateNumericOTP generates a secure random numeric code of the given length.
func GenerateNumericOTP(length int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}
	return fmt.Sprintf("%0*d", length, n), nil
}

// SaveOTP stores a verification code under the given key with a TTL. Key
// presence is the pending state for the verification step.
func SaveOTP(client *redis.Client, key, code string, ttl time.Duration) error {
	ctx := context.Background()
	if err := client.Set(ctx, key, code, ttl).Err(); err != nil {
		GetLogger().Error("Failed to cache verification code", zap.Error(err))
		return fmt.Errorf("failed to save verification code: %w", err)
	}
	return nil
}

// GetOTP retrieves a pending verification code. An empty result with a nil
// error means the code expired or was never issued.
func GetOTP(client *redis.Client, key string) (string, error) {
	ctx := context.Background()
	code, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

// DeleteOTP consumes a pending verification code.
func DeleteOTP(client *redis.Client, key string) error {
	ctx := context.Background()
	return client.Del(ctx, key).Err()
}
