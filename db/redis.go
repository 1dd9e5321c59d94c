package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const redisConnectTimeout = 5 * time.Second

// ConnectRedis initializes the Redis client used as the fast idempotency
// backstop for likes. Redis being down degrades likes to Mongo-only; it
// never blocks the service from starting requests.
func ConnectRedis(addr, password string, database int) error {
	opt := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	RedisClient = client
	return nil
}
