package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	internalscraper "github.com/starfieldlab/cosmobot/internal/scraper"
)

func TestFetchFact_ParsesHeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a user agent header")
		}
		_, _ = w.Write([]byte(`<html><body>
			<h2 class="other">Not this one</h2>
			<div><h2 class="wow animated">  A day on Venus is longer than its year.  </h2></div>
		</body></html>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL)
	fact, err := f.FetchFact(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fact != "A day on Venus is longer than its year." {
		t.Fatalf("unexpected fact: %q", fact)
	}
}

func TestFetchFact_NonSuccessStatusFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL)
	_, err := f.FetchFact(context.Background())
	if !errors.Is(err, internalscraper.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestFetchFact_MissingHeadingFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>no heading here</p></body></html>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL)
	_, err := f.FetchFact(context.Background())
	if !errors.Is(err, internalscraper.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestFetchFact_ConnectionErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	f := NewHTTPFetcher(srv.URL)
	_, err := f.FetchFact(context.Background())
	if !errors.Is(err, internalscraper.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}
