package catalog

import (
	"context"
	"strings"

	"medley/models"
)

// Query carries the cross-source filter set for a catalog fetch. Not every
// source supports every field; unsupported filters are either pushed upstream
// where the API allows it or enforced by post-filtering the mapped results.
type Query struct {
	Search     string
	Genre      string
	Region     string
	Categories []string
	Limit      int
}

// searchTerm returns the trimmed search text, or "" when the query should run
// in discovery mode. Single characters are treated as noise, not a search.
func (q Query) searchTerm() string {
	s := strings.TrimSpace(q.Search)
	if len(s) < 2 {
		return ""
	}
	return s
}

// Source fetches and normalizes items from one upstream catalog. Fetch returns
// an *UpstreamError once retries are exhausted; it never panics and never
// returns partially-mapped items.
type Source interface {
	Type() models.MediaType
	Fetch(ctx context.Context, q Query) ([]models.Item, error)
}
