package repository

import (
	"context"

	"github.com/starfieldlab/cosmobot/internal/repository"
)

// unavailableRepository stands in when no database is configured. Every
// method reports ErrStoreUnavailable so callers fall back to cache-only
// behavior instead of crashing.
type unavailableRepository struct{}

func NewUnavailableRepository() repository.Repository {
	return unavailableRepository{}
}

func (unavailableRepository) GetVerified(context.Context, string) (bool, error) {
	return false, repository.ErrStoreUnavailable
}

func (unavailableRepository) PutVerified(context.Context, string) error {
	return repository.ErrStoreUnavailable
}

func (unavailableRepository) ListVerified(context.Context) ([]string, error) {
	return nil, repository.ErrStoreUnavailable
}

func (unavailableRepository) GetStory(context.Context, string) (*repository.StoryRecord, error) {
	return nil, repository.ErrStoreUnavailable
}

func (unavailableRepository) EnableStory(context.Context, string) error {
	return repository.ErrStoreUnavailable
}

func (unavailableRepository) SetProgression(context.Context, string, int) error {
	return repository.ErrStoreUnavailable
}
