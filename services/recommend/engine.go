package recommend

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"medley/models"
	"medley/services/catalog"
)

const (
	defaultLimit = 24
	maxLimit     = 100

	// Free-text seeds shorter than this are ignored in favor of the mood's
	// default seed.
	minSeedQueryLen = 3
)

// listProvider exposes a user's saved list for building the exclusion set.
type listProvider interface {
	ListItems(userID string) ([]models.ListItem, error)
}

// Engine ranks mood-driven catalog picks, excluding what the user already has
// on their list.
type Engine struct {
	catalog  *catalog.Service
	profiles listProvider
}

// NewEngine builds a recommendation engine over the catalog service. profiles
// may be nil, in which case no exclusions are applied.
func NewEngine(catalogSvc *catalog.Service, profiles listProvider) *Engine {
	return &Engine{catalog: catalogSvc, profiles: profiles}
}

// Request carries the parameters of one recommendation call.
type Request struct {
	Mood   string
	Types  []models.MediaType
	Limit  int
	UserID string
	Query  string
}

// Recommend resolves the mood to per-type queries, fans out, filters the
// user's saved items, scores and truncates. Every source failure is absorbed:
// a total upstream outage yields an empty slice, never an error.
func (e *Engine) Recommend(ctx context.Context, req Request) []models.Item {
	seed := seedForMood(req.Mood)

	types := req.Types
	if len(types) == 0 {
		types = e.catalog.Types()
	}
	if len(types) == 0 {
		return []models.Item{}
	}

	results := make([][]models.Item, len(types))
	p := pool.New().WithMaxGoroutines(len(types))
	for i, t := range types {
		i, t := i, t
		p.Go(func() {
			items, err := e.catalog.FetchType(ctx, t, e.queryFor(t, seed, req.Query))
			if err != nil {
				log.Printf("[recommend] source %s failed: %v", t, err)
				return
			}
			results[i] = items
		})
	}
	p.Wait()

	excluded := e.exclusionSet(req.UserID)

	candidates := []models.Item{}
	for _, items := range results {
		for _, item := range items {
			if excluded[exclusionKeyID(item.ID)] ||
				excluded[exclusionKeyName(item.Title, string(item.Type))] {
				continue
			}
			candidates = append(candidates, item)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return score(candidates[i]) > score(candidates[j])
	})

	// Limit 0 means the caller did not ask for one; anything else is
	// clamped into [1, maxLimit].
	limit := req.Limit
	switch {
	case limit == 0:
		limit = defaultLimit
	case limit < 1:
		limit = 1
	case limit > maxLimit:
		limit = maxLimit
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// queryFor builds the per-type catalog query. Genre-filterable sources always
// use the mood's genre and a neutral search term, so the query means "discover
// by mood" rather than "find the literal mood word". An explicit free-text
// seed only overrides the text-searchable sources.
func (e *Engine) queryFor(t models.MediaType, seed moodSeed, freeText string) catalog.Query {
	freeText = strings.TrimSpace(freeText)
	if len(freeText) < minSeedQueryLen {
		freeText = ""
	}
	switch t {
	case models.MediaMovies:
		return catalog.Query{Genre: seed.MovieGenre}
	case models.MediaSeries, models.MediaAnime:
		return catalog.Query{Genre: seed.TVGenre}
	case models.MediaBooks:
		if freeText != "" {
			return catalog.Query{Search: freeText}
		}
		return catalog.Query{Search: seed.BookQuery}
	case models.MediaMusic:
		if freeText != "" {
			return catalog.Query{Search: freeText}
		}
		return catalog.Query{Search: seed.MusicQuery}
	}
	return catalog.Query{}
}

func (e *Engine) exclusionSet(userID string) map[string]bool {
	set := make(map[string]bool)
	if userID == "" || e.profiles == nil {
		return set
	}
	items, err := e.profiles.ListItems(userID)
	if err != nil {
		log.Printf("[recommend] failed to load list for user %s: %v", userID, err)
		return set
	}
	for _, li := range items {
		if li.ExternalID != "" {
			set[exclusionKeyID(li.ExternalID)] = true
			continue
		}
		set[exclusionKeyName(li.Name, li.Type)] = true
	}
	return set
}

func exclusionKeyID(id string) string {
	return "id|" + id
}

func exclusionKeyName(name, mediaType string) string {
	return "name|" + strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(mediaType))
}

// score ranks an item for the merged sort: the upstream rating when present,
// otherwise popularity divided by ten, otherwise zero.
func score(item models.Item) float64 {
	if item.Rating != 0 {
		return item.Rating
	}
	if item.Popularity != 0 {
		return item.Popularity / 10
	}
	return 0
}
