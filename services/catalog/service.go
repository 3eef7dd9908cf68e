package catalog

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"medley/models"
)

// SourceFailure records one source's error during a fan-out so callers can
// log or expose partial-failure detail instead of silently dropping it.
type SourceFailure struct {
	Type models.MediaType
	Err  error
}

func (f SourceFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Type, f.Err)
}

// Service owns the registered catalog sources and runs cross-source queries.
type Service struct {
	sources map[models.MediaType]Source
	order   []models.MediaType
}

// NewService registers the given sources. Aggregation output follows the
// canonical type order regardless of registration order.
func NewService(sources ...Source) *Service {
	s := &Service{sources: make(map[models.MediaType]Source)}
	for _, src := range sources {
		s.sources[src.Type()] = src
	}
	for _, t := range models.AllMediaTypes() {
		if _, ok := s.sources[t]; ok {
			s.order = append(s.order, t)
		}
	}
	return s
}

// FetchType queries a single source. Upstream failures propagate to the
// caller: the user explicitly asked for this one type and deserves the error.
func (s *Service) FetchType(ctx context.Context, mediaType models.MediaType, q Query) ([]models.Item, error) {
	src, ok := s.sources[mediaType]
	if !ok {
		return nil, fmt.Errorf("no source registered for type %q", mediaType)
	}
	items, err := src.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// FetchAll fans out to every registered source concurrently and waits for all
// of them. Each source is fault-isolated: a failure contributes an empty
// slice and a SourceFailure, never an error for the whole call. Results are
// concatenated in canonical type order so output is deterministic.
func (s *Service) FetchAll(ctx context.Context, q Query) ([]models.Item, []SourceFailure) {
	if len(s.order) == 0 {
		return []models.Item{}, nil
	}
	results := make([][]models.Item, len(s.order))
	var (
		failMu   sync.Mutex
		failures []SourceFailure
	)

	p := pool.New().WithMaxGoroutines(len(s.order))
	for i, t := range s.order {
		i, t := i, t
		src := s.sources[t]
		p.Go(func() {
			items, err := src.Fetch(ctx, q)
			if err != nil {
				failMu.Lock()
				failures = append(failures, SourceFailure{Type: t, Err: err})
				failMu.Unlock()
				return
			}
			results[i] = items
		})
	}
	p.Wait()

	merged := []models.Item{}
	for _, items := range results {
		merged = append(merged, items...)
	}
	for _, f := range failures {
		log.Printf("[catalog] source failed during aggregation: %s", f)
	}
	return merged, failures
}

// Types returns the media types with a registered source, in canonical order.
func (s *Service) Types() []models.MediaType {
	out := make([]models.MediaType, len(s.order))
	copy(out, s.order)
	return out
}
