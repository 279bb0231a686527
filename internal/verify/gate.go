package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/starfieldlab/cosmobot/internal/repository"
)

// NotVerifiedError is a check failure, not a fault: the top-level handler
// recovers it by running the verification ritual.
type NotVerifiedError struct {
	UserID string
}

func (e *NotVerifiedError) Error() string {
	return fmt.Sprintf("user %s is not verified", e.UserID)
}

type cacheEntry struct {
	verified    bool
	progression int // 0 means story mode not started
}

// Cache is the process-wide user-state cache, keyed by user id. It is an
// explicitly constructed object handed to command handlers at startup, lives
// for the process lifetime, and is never evicted.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	locks   map[string]*sync.Mutex
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		locks:   make(map[string]*sync.Mutex),
	}
}

// userLock returns the per-user mutex, creating it on first use. All
// read-check-then-write sequences for one user serialize on it so two
// concurrent verifications cannot double-insert a store record.
func (c *Cache) userLock(userID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[userID] = l
	}
	return l
}

func (c *Cache) get(userID string) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[userID]
	return e, ok
}

func (c *Cache) setVerified(userID string, verified bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[userID]
	e.verified = verified
	c.entries[userID] = e
}

func (c *Cache) setProgression(userID string, progression int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[userID]
	e.progression = progression
	c.entries[userID] = e
}

// Gate is the verification pre-check plus the story-progression lookups that
// share its cache. All store writes are write-through: persisted first, then
// applied in memory. A missing store degrades every operation to cache-only.
type Gate struct {
	cache *Cache
	repo  repository.Repository
}

func NewGate(cache *Cache, repo repository.Repository) *Gate {
	return &Gate{cache: cache, repo: repo}
}

// Check allows verified users through and fails everyone else with
// NotVerifiedError. A definitive store answer is memoized either way; a
// memoized negative never blocks a later VerifyUser from overwriting it.
func (g *Gate) Check(ctx context.Context, userID string) error {
	lock := g.cache.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if e, ok := g.cache.get(userID); ok {
		if e.verified {
			return nil
		}
		return &NotVerifiedError{UserID: userID}
	}

	verified, err := g.repo.GetVerified(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreUnavailable) {
			slog.Warn("store unavailable; verification check is cache-only", "user_id", userID)
			return &NotVerifiedError{UserID: userID}
		}
		return fmt.Errorf("verification lookup failed: %w", err)
	}
	g.cache.setVerified(userID, verified)
	if verified {
		return nil
	}
	return &NotVerifiedError{UserID: userID}
}

// VerifyUser records consent: the verified record is persisted before the
// cache entry flips to true.
func (g *Gate) VerifyUser(ctx context.Context, userID string) error {
	lock := g.cache.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := g.repo.PutVerified(ctx, userID); err != nil {
		if !errors.Is(err, repository.ErrStoreUnavailable) {
			return fmt.Errorf("failed to persist verification: %w", err)
		}
		slog.Warn("store unavailable; verification is cache-only for this process", "user_id", userID)
	}
	g.cache.setVerified(userID, true)
	return nil
}

// Prefill loads every persisted verification into the cache at startup.
func (g *Gate) Prefill(ctx context.Context) error {
	ids, err := g.repo.ListVerified(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrStoreUnavailable) {
			slog.Warn("store unavailable; starting with an empty verification cache")
			return nil
		}
		return fmt.Errorf("failed to prefill verification cache: %w", err)
	}
	for _, id := range ids {
		g.cache.setVerified(id, true)
	}
	slog.Info("verification cache prefilled", "users", len(ids))
	return nil
}

// EnableStory activates story mode for the user, starting at mission 1.
func (g *Gate) EnableStory(ctx context.Context, userID string) error {
	lock := g.cache.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := g.repo.EnableStory(ctx, userID); err != nil {
		if !errors.Is(err, repository.ErrStoreUnavailable) {
			return fmt.Errorf("failed to persist story activation: %w", err)
		}
		slog.Warn("store unavailable; story activation is cache-only", "user_id", userID)
	}
	g.cache.setProgression(userID, 1)
	return nil
}

// Progression returns the user's current mission number, or 0 when story
// mode has not been started. The lookup always uses the target user's id.
func (g *Gate) Progression(ctx context.Context, userID string) (int, error) {
	lock := g.cache.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if e, ok := g.cache.get(userID); ok && e.progression > 0 {
		return e.progression, nil
	}

	record, err := g.repo.GetStory(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreUnavailable) {
			slog.Warn("store unavailable; story progression is cache-only", "user_id", userID)
			return 0, nil
		}
		return 0, fmt.Errorf("story lookup failed: %w", err)
	}
	if record == nil || !record.Enabled {
		return 0, nil
	}
	g.cache.setProgression(userID, record.Progression)
	return record.Progression, nil
}

// Advance moves the user to the next mission, write-through.
func (g *Gate) Advance(ctx context.Context, userID string) (int, error) {
	lock := g.cache.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	e, ok := g.cache.get(userID)
	if !ok || e.progression == 0 {
		return 0, fmt.Errorf("story mode is not active for user %s", userID)
	}
	next := e.progression + 1
	if err := g.repo.SetProgression(ctx, userID, next); err != nil {
		if !errors.Is(err, repository.ErrStoreUnavailable) {
			return 0, fmt.Errorf("failed to persist story progression: %w", err)
		}
		slog.Warn("store unavailable; story progression is cache-only", "user_id", userID)
	}
	g.cache.setProgression(userID, next)
	return next, nil
}
