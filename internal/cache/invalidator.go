package cache

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

const (
	boardPathPrefix = "/board/"
	orgPathPrefix   = "/organization/"
)

// Invalidator is told which read path went stale after a successful write.
type Invalidator interface {
	Invalidate(ctx context.Context, path string)
}

func BoardPath(boardID uuid.UUID) string { return boardPathPrefix + boardID.String() }

func OrgPath(orgID string) string { return orgPathPrefix + orgID }

// Chain fans an invalidation out to every member in order.
type Chain []Invalidator

func (c Chain) Invalidate(ctx context.Context, path string) {
	for _, inv := range c {
		if inv != nil {
			inv.Invalidate(ctx, path)
		}
	}
}

// ParseBoardPath returns the board id of a /board/<id> path.
func ParseBoardPath(path string) (uuid.UUID, bool) {
	rest, ok := strings.CutPrefix(path, boardPathPrefix)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(rest)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ParseOrgPath returns the organization id of an /organization/<id> path.
func ParseOrgPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, orgPathPrefix)
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}
