package fetcher

import "context"

// Fetcher interface defines the contract for fetching implementations
type Fetcher interface {
	// Fetch retrieves the raw body of the page at url.
	// Any status outside 2xx is returned as a *StatusError.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
