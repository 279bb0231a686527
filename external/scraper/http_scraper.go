package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	internalscraper "github.com/starfieldlab/cosmobot/internal/scraper"
	"golang.org/x/net/html"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/81.0.4044.138 Safari/537.36"

type HTTPFetcher struct {
	sourceURL string
	client    *http.Client
}

func NewHTTPFetcher(sourceURL string) internalscraper.Fetcher {
	return &HTTPFetcher{
		sourceURL: sourceURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchFact downloads the fact page and returns the text of its headline
// element (an h2 with the "wow" class).
func (f *HTTPFetcher) FetchFact(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", internalscraper.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", internalscraper.ErrFetchFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: source returned status %d", internalscraper.ErrFetchFailed, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", internalscraper.ErrFetchFailed, err)
	}
	fact := findFactHeading(doc)
	if fact == "" {
		return "", fmt.Errorf("%w: fact heading not found in page", internalscraper.ErrFetchFailed)
	}
	return fact, nil
}

func findFactHeading(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "h2" && hasClass(n, "wow") {
		return strings.TrimSpace(nodeText(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if fact := findFactHeading(c); fact != "" {
			return fact
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}
