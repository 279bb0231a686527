package repository

import (
	"context"
	"errors"
)

// ErrStoreUnavailable signals that no persistent store is configured. Callers
// fall back to cache-only behavior for the process lifetime.
var ErrStoreUnavailable = errors.New("persistent store is not available")

type VerifiedRepository interface {
	GetVerified(ctx context.Context, userID string) (bool, error)
	PutVerified(ctx context.Context, userID string) error
	ListVerified(ctx context.Context) ([]string, error)
}

type StoryRepository interface {
	GetStory(ctx context.Context, userID string) (*StoryRecord, error)
	EnableStory(ctx context.Context, userID string) error
	SetProgression(ctx context.Context, userID string, progression int) error
}

type Repository interface {
	VerifiedRepository
	StoryRepository
}
