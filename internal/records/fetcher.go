package records

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

// Fetcher retrieves a user's raw expense and income records from the
// remote record source. It is fetch-only: no retry, no caching.
type Fetcher struct {
	baseURL string
	client  *http.Client
}

// NewFetcher builds a fetcher for the given base URL.
func NewFetcher(baseURL string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchAll retrieves both record lists for one user. Both requests run
// concurrently; if either fails the whole fetch fails and both returned
// lists are empty, so callers never observe a partial view.
func (f *Fetcher) FetchAll(ctx context.Context, userID string) ([]Expense, []Income, error) {
	var (
		expenses []Expense
		income   []Income
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return f.getJSON(ctx, "/expenses/"+url.PathEscape(userID), &expenses)
	})
	g.Go(func() error {
		return f.getJSON(ctx, "/income/"+url.PathEscape(userID), &income)
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return expenses, income, nil
}

func (f *Fetcher) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
