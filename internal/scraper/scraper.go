package scraper

import (
	"context"
	"errors"
)

// ErrFetchFailed is surfaced to the user as a failure notice for the single
// affected command; it is never retried automatically.
var ErrFetchFailed = errors.New("fact source fetch failed")

type Fetcher interface {
	FetchFact(ctx context.Context) (string, error)
}
