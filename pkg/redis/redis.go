package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lacreme/bakery-backend/config"
	"github.com/lacreme/bakery-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) (*redis.Client, error) {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return client, nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

const checkoutKeyPrefix = "checkout:lock:"

// releaseScript deletes the lock only while it still holds our token, so an
// expired lock re-acquired by another request is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// CheckoutLock is a per-customer SET NX lock held for the duration of one
// checkout.
type CheckoutLock struct {
	rdb *redis.Client
}

func NewCheckoutLock(rdb *redis.Client) *CheckoutLock {
	return &CheckoutLock{rdb: rdb}
}

// Acquire returns ok=false without error when another checkout of the same
// customer holds the lock.
func (l *CheckoutLock) Acquire(ctx context.Context, userID uint, ttl time.Duration) (func(), bool, error) {
	key := fmt.Sprintf("%s%d", checkoutKeyPrefix, userID)
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		logger.Error("Failed to acquire checkout lock", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, false, err
	}
	if !ok {
		logger.Warn("Checkout lock already held", map[string]interface{}{
			"user_id": userID,
		})
		return nil, false, nil
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.rdb, []string{key}, token).Err(); err != nil {
			logger.Warn("Failed to release checkout lock", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}
	return release, true, nil
}
