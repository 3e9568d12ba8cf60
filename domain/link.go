package domain

import (
	"context"
	"time"
)

const (
	DefaultCodeLength  = 6
	FallbackCodeLength = 8
	MaxCodeLength      = 8
	LinkCacheTTL       = 24 * time.Hour
)

type Link struct {
	ID        int64
	Code      string
	Target    string
	CreatedAt time.Time
}

type Resolution struct {
	Code   string
	Target string
	Cached bool
}

type LinkRepo interface {
	// Create returns ErrDuplicate when the code is already taken.
	Create(ctx context.Context, code, target string) (*Link, error)
	// Get returns ErrNoData when the code is unknown.
	Get(ctx context.Context, code string) (*Link, error)
	Exists(ctx context.Context, code string) (bool, error)
	Ping(ctx context.Context) error
}

type LinkCacheRepo interface {
	Get(ctx context.Context, code string) (target string, exists bool, err error)
	Set(ctx context.Context, code, target string) error
	Ping(ctx context.Context) error
}

type LinkUseCase interface {
	Shorten(ctx context.Context, target string) (shortURL string, err error)
	Resolve(ctx context.Context, code string) (*Resolution, error)
}
