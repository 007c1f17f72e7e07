package collector

import "context"

// CollyCrawler fetches pages as static HTML, without running scripts.
type CollyCrawler interface {
	FetchHTML(ctx context.Context, url, readySelector string) (string, error)
}
