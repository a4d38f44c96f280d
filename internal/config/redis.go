package config

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// ConnectRedis returns nil without error when no URL is configured; the board
// cache then reads straight from the database.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		log.Info("REDIS_URL not set, board cache disabled")
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	rc := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx).Err(); err != nil {
		_ = rc.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	log.Info("redis connected")
	return rc, nil
}
