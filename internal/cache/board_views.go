// Package cache keeps board read views in Redis and fans out invalidations.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"planify-backend/internal/models"
	"planify-backend/internal/repo"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// BoardViews wraps a board repository with Redis-backed caching for the
// aggregate view and the per-organization board list. Writes pass through
// untouched; stale entries are dropped through Invalidate.
type BoardViews struct {
	repo.BoardRepoInterface
	redis *redis.Client
	ttl   time.Duration
}

func NewBoardViews(base repo.BoardRepoInterface, client *redis.Client, ttl time.Duration) *BoardViews {
	if base == nil {
		panic("cache.NewBoardViews: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &BoardViews{BoardRepoInterface: base, redis: client, ttl: ttl}
}

func (c *BoardViews) GetBoardView(ctx context.Context, orgID string, boardID uuid.UUID) (*models.Board, error) {
	var cached models.Board
	if c.load(ctx, boardKey(boardID), &cached) {
		if cached.OrgID != orgID {
			return nil, repo.ErrNotFound
		}
		return &cached, nil
	}

	board, err := c.BoardRepoInterface.GetBoardView(ctx, orgID, boardID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, boardKey(boardID), board)
	return board, nil
}

func (c *BoardViews) GetBoardsByOrg(ctx context.Context, orgID string) ([]models.Board, error) {
	var cached []models.Board
	if c.load(ctx, orgBoardsKey(orgID), &cached) {
		return cached, nil
	}

	boards, err := c.BoardRepoInterface.GetBoardsByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, orgBoardsKey(orgID), boards)
	return boards, nil
}

// Invalidate evicts the key behind a board or organization path.
func (c *BoardViews) Invalidate(ctx context.Context, path string) {
	if c.redis == nil {
		return
	}
	var key string
	if id, ok := ParseBoardPath(path); ok {
		key = boardKey(id)
	} else if orgID, ok := ParseOrgPath(path); ok {
		key = orgBoardsKey(orgID)
	} else {
		return
	}
	if err := c.redis.Del(ctx, key).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache eviction failed")
	}
}

func (c *BoardViews) load(ctx context.Context, key string, dst any) bool {
	if c.redis == nil {
		return false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the database without failing.
			_ = c.redis.Del(ctx, key).Err()
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		_ = c.redis.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *BoardViews) store(ctx context.Context, key string, v any) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}

func boardKey(boardID uuid.UUID) string {
	return "board:" + boardID.String()
}

func orgBoardsKey(orgID string) string {
	return "boards:" + orgID
}
