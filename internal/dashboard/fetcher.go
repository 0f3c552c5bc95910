package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/vdavid/chatlens/internal/models"
)

// SummaryPath is the endpoint serving the latest summary.
const SummaryPath = "/api/summary"

// maxSummaryBytes bounds the summary response body.
const maxSummaryBytes = 8 << 20

// Fetcher obtains the summary for one render pass. A nil result means there
// is nothing to render; it is not an error for the caller.
type Fetcher interface {
	Fetch(ctx context.Context) *models.Summary
}

// HTTPFetcher issues a single GET to a summary endpoint. It does not retry
// or cache.
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher creates a fetcher for url. A nil client means http.DefaultClient.
func NewHTTPFetcher(url string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{url: url, client: client}
}

// Fetch returns the decoded summary, or nil on a transport error, a non-2xx
// status, or an undecodable body.
func (f *HTTPFetcher) Fetch(ctx context.Context) *models.Summary {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		log.Printf("Fetcher: Failed to build request for %s: %v", f.url, err)
		return nil
	}

	resp, err := f.client.Do(req)
	if err != nil {
		log.Printf("Fetcher: Failed to fetch summary: %v", err)
		return nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Fetcher: Summary endpoint returned %s", resp.Status)
		return nil
	}

	var summary models.Summary
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxSummaryBytes)).Decode(&summary); err != nil {
		log.Printf("Fetcher: Failed to decode summary: %v", err)
		return nil
	}

	return &summary
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) *models.Summary

func (f FetcherFunc) Fetch(ctx context.Context) *models.Summary {
	return f(ctx)
}
