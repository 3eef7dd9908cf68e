package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"medley/models"
	"medley/services/catalog"
)

type fakeSource struct {
	mediaType models.MediaType
	items     []models.Item
	err       error
	lastQuery catalog.Query
}

func (f *fakeSource) Type() models.MediaType { return f.mediaType }

func (f *fakeSource) Fetch(_ context.Context, q catalog.Query) ([]models.Item, error) {
	f.lastQuery = q
	return f.items, f.err
}

type fakeLists struct {
	items []models.ListItem
	err   error
}

func (f *fakeLists) ListItems(string) ([]models.ListItem, error) { return f.items, f.err }

func newTestEngine(lists *fakeLists, sources ...*fakeSource) *Engine {
	srcs := make([]catalog.Source, len(sources))
	for i, s := range sources {
		srcs[i] = s
	}
	var provider listProvider
	if lists != nil {
		provider = lists
	}
	return NewEngine(catalog.NewService(srcs...), provider)
}

func TestMoodFallbackToDefault(t *testing.T) {
	movies := &fakeSource{mediaType: models.MediaMovies}
	engine := newTestEngine(nil, movies)

	engine.Recommend(context.Background(), Request{Mood: "unknownvalue", Types: []models.MediaType{models.MediaMovies}})
	fallbackGenre := movies.lastQuery.Genre

	engine.Recommend(context.Background(), Request{Mood: "chill", Types: []models.MediaType{models.MediaMovies}})
	if movies.lastQuery.Genre != fallbackGenre {
		t.Fatalf("unknown mood should behave like chill: %q vs %q", fallbackGenre, movies.lastQuery.Genre)
	}
	if fallbackGenre == "" {
		t.Fatal("mood must resolve to a genre for movies")
	}
}

func TestMoodSeedsPerType(t *testing.T) {
	movies := &fakeSource{mediaType: models.MediaMovies}
	series := &fakeSource{mediaType: models.MediaSeries}
	books := &fakeSource{mediaType: models.MediaBooks}
	music := &fakeSource{mediaType: models.MediaMusic}
	engine := newTestEngine(nil, movies, series, books, music)

	engine.Recommend(context.Background(), Request{Mood: "dark"})

	if movies.lastQuery.Genre != "Horror" || movies.lastQuery.Search != "" {
		t.Fatalf("movies query: %+v", movies.lastQuery)
	}
	if series.lastQuery.Genre != "Mystery" {
		t.Fatalf("series query: %+v", series.lastQuery)
	}
	if books.lastQuery.Search != "horror" || books.lastQuery.Genre != "" {
		t.Fatalf("books query: %+v", books.lastQuery)
	}
	if music.lastQuery.Search != "dark ambient" {
		t.Fatalf("music query: %+v", music.lastQuery)
	}
}

func TestFreeTextSeedOverridesTextSources(t *testing.T) {
	movies := &fakeSource{mediaType: models.MediaMovies}
	books := &fakeSource{mediaType: models.MediaBooks}
	music := &fakeSource{mediaType: models.MediaMusic}
	engine := newTestEngine(nil, movies, books, music)

	engine.Recommend(context.Background(), Request{Mood: "chill", Query: "jazz age"})

	if books.lastQuery.Search != "jazz age" || music.lastQuery.Search != "jazz age" {
		t.Fatalf("free text must override text sources: books %q music %q", books.lastQuery.Search, music.lastQuery.Search)
	}
	// Genre-filterable sources keep the mood genre.
	if movies.lastQuery.Genre != "Comedy" || movies.lastQuery.Search != "" {
		t.Fatalf("movies must ignore free text: %+v", movies.lastQuery)
	}
}

func TestShortFreeTextIgnored(t *testing.T) {
	music := &fakeSource{mediaType: models.MediaMusic}
	engine := newTestEngine(nil, music)

	engine.Recommend(context.Background(), Request{Mood: "chill", Query: "ab"})
	if music.lastQuery.Search != "lofi chill" {
		t.Fatalf("two-character seed should be ignored, got %q", music.lastQuery.Search)
	}
}

func TestExclusionByExternalID(t *testing.T) {
	movies := &fakeSource{
		mediaType: models.MediaMovies,
		items: []models.Item{
			{ID: "X", Type: models.MediaMovies, Title: "Top Pick", Rating: 9.9},
			{ID: "Y", Type: models.MediaMovies, Title: "Second", Rating: 5},
		},
	}
	lists := &fakeLists{items: []models.ListItem{{ExternalID: "X", Name: "Top Pick", Type: "movies"}}}
	engine := newTestEngine(lists, movies)

	got := engine.Recommend(context.Background(), Request{UserID: "u1", Types: []models.MediaType{models.MediaMovies}})
	if len(got) != 1 || got[0].ID != "Y" {
		t.Fatalf("saved item must be excluded even when top-scored: %+v", got)
	}
}

func TestExclusionByNameAndType(t *testing.T) {
	books := &fakeSource{
		mediaType: models.MediaBooks,
		items: []models.Item{
			{ID: "b1", Type: models.MediaBooks, Title: "Dune", Rating: 4.5},
			{ID: "b2", Type: models.MediaBooks, Title: "Hyperion", Rating: 4.2},
		},
	}
	lists := &fakeLists{items: []models.ListItem{{Name: "DUNE", Type: "Books"}}}
	engine := newTestEngine(lists, books)

	got := engine.Recommend(context.Background(), Request{UserID: "u1", Types: []models.MediaType{models.MediaBooks}})
	if len(got) != 1 || got[0].ID != "b2" {
		t.Fatalf("name/type exclusion should be case-insensitive: %+v", got)
	}
}

func TestScoringAndStableOrder(t *testing.T) {
	movies := &fakeSource{
		mediaType: models.MediaMovies,
		items: []models.Item{
			{ID: "rated", Type: models.MediaMovies, Title: "Rated", Rating: 8},
			{ID: "tie-a", Type: models.MediaMovies, Title: "Tie A", Rating: 6},
			{ID: "tie-b", Type: models.MediaMovies, Title: "Tie B", Rating: 6},
		},
	}
	music := &fakeSource{
		mediaType: models.MediaMusic,
		items: []models.Item{
			// No rating: scored as popularity/10 = 9, outranking the 8.
			{ID: "popular", Type: models.MediaMusic, Title: "Popular", Popularity: 90},
		},
	}
	engine := newTestEngine(nil, movies, music)

	got := engine.Recommend(context.Background(), Request{})
	want := []string{"popular", "rated", "tie-a", "tie-b"}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestLimitClamping(t *testing.T) {
	items := make([]models.Item, 0, 120)
	for i := 0; i < 120; i++ {
		items = append(items, models.Item{ID: fmt.Sprintf("m%d", i), Type: models.MediaMovies, Rating: 5})
	}
	movies := &fakeSource{mediaType: models.MediaMovies, items: items}
	engine := newTestEngine(nil, movies)

	if got := engine.Recommend(context.Background(), Request{Limit: 1000}); len(got) != 100 {
		t.Fatalf("limit should clamp to 100, got %d", len(got))
	}
	if got := engine.Recommend(context.Background(), Request{}); len(got) != 24 {
		t.Fatalf("default limit should be 24, got %d", len(got))
	}
	if got := engine.Recommend(context.Background(), Request{Limit: 3}); len(got) != 3 {
		t.Fatalf("explicit limit, got %d", len(got))
	}
	if got := engine.Recommend(context.Background(), Request{Limit: -5}); len(got) != 1 {
		t.Fatalf("negative limit should clamp to 1, got %d", len(got))
	}
}

func TestTotalUpstreamFailureYieldsEmpty(t *testing.T) {
	movies := &fakeSource{mediaType: models.MediaMovies, err: errors.New("down")}
	music := &fakeSource{mediaType: models.MediaMusic, err: errors.New("down")}
	engine := newTestEngine(nil, movies, music)

	got := engine.Recommend(context.Background(), Request{})
	if len(got) != 0 {
		t.Fatalf("expected empty result on total failure, got %+v", got)
	}
}

func TestListLoadFailureFailsOpen(t *testing.T) {
	movies := &fakeSource{
		mediaType: models.MediaMovies,
		items:     []models.Item{{ID: "m1", Type: models.MediaMovies, Rating: 7}},
	}
	lists := &fakeLists{err: errors.New("db down")}
	engine := newTestEngine(lists, movies)

	got := engine.Recommend(context.Background(), Request{UserID: "u1"})
	if len(got) != 1 {
		t.Fatalf("a failing list load must not exclude anything: %+v", got)
	}
}
