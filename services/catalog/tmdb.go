package catalog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"medley/models"
)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p/w500"

	// Items above this TMDB popularity score are flagged as trending.
	tmdbTrendingPopularity = 50
)

// Anime discover is constrained to these origin countries unless the caller
// picked a region, since TMDB has no first-class anime category.
var animeDefaultOrigins = []string{"JP", "KR", "CN"}

type tmdbClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	cache   Cache
	policy  fetchPolicy
}

func newTMDBClient(apiKey string, httpc *http.Client, cache Cache) *tmdbClient {
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &tmdbClient{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: tmdbBaseURL,
		httpc:   httpc,
		cache:   cache,
		policy:  fetchPolicy{Retries: 1, Timeout: 8 * time.Second},
	}
}

type tmdbResult struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	OriginalTitle    string  `json:"original_title"`
	OriginalName     string  `json:"original_name"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	VoteAverage      float64 `json:"vote_average"`
	Popularity       float64 `json:"popularity"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginCountry    []string `json:"origin_country"`
	OriginalLanguage string  `json:"original_language"`
}

type tmdbPage struct {
	Results []tmdbResult `json:"results"`
}

func (c *tmdbClient) get(ctx context.Context, source, path string, params url.Values) (*tmdbPage, error) {
	params.Set("api_key", c.apiKey)
	var page tmdbPage
	if err := fetchJSON(ctx, c.httpc, source, c.baseURL+path+"?"+params.Encode(), nil, c.policy, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// mapTMDBResult converts one TMDB payload entry into the canonical shape.
// fallbackRegion is the canonical region label of an upstream origin-country
// filter, when one was applied: every result is then known to satisfy it, so
// results whose payload carries no explicit origin take that label even when
// the original-language heuristic would guess a different one (movie payloads
// in particular have a language but no origin_country array).
func mapTMDBResult(r tmdbResult, mediaType models.MediaType, table map[int]string, fallbackRegion string) models.Item {
	title := r.Title
	if title == "" {
		title = r.Name
	}
	if title == "" {
		title = r.OriginalTitle
	}
	if title == "" {
		title = r.OriginalName
	}
	if title == "" {
		title = "Unknown Title"
	}

	origin := ""
	if len(r.OriginCountry) > 0 {
		origin = r.OriginCountry[0]
	}
	region, country := resolveRegion(origin, r.OriginalLanguage)
	if fallbackRegion != "" && origin == "" && region != fallbackRegion {
		region = fallbackRegion
		country = "Unknown"
	}

	genres := genreNamesForIDs(r.GenreIDs, table)
	genre := "Unknown"
	if len(genres) > 0 {
		genre = genres[0]
	}

	thumbnail := ""
	if r.PosterPath != "" {
		thumbnail = tmdbImageBaseURL + r.PosterPath
	}

	return models.Item{
		ID:          strconv.FormatInt(r.ID, 10),
		Type:        mediaType,
		Title:       title,
		Rating:      r.VoteAverage,
		Genre:       genre,
		Genres:      genres,
		Region:      region,
		Country:     country,
		Trending:    r.Popularity > tmdbTrendingPopularity,
		Thumbnail:   thumbnail,
		Description: r.Overview,
		Language:    r.OriginalLanguage,
		Popularity:  r.Popularity,
	}
}

func containsGenreID(ids []int, id int) bool {
	for _, g := range ids {
		if g == id {
			return true
		}
	}
	return false
}

func containsCountry(codes []string, code string) bool {
	for _, c := range codes {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

// NewTMDBSources returns the three TMDB-backed sources (movies, series,
// anime) sharing one client and cache.
func NewTMDBSources(apiKey string, httpc *http.Client, cache Cache) (movies, series, anime Source) {
	client := newTMDBClient(apiKey, httpc, cache)
	return &movieSource{client: client}, &seriesSource{client: client}, &animeSource{client: client}
}

// movieSource serves the movies type from TMDB.
type movieSource struct {
	client *tmdbClient
}

func (s *movieSource) Type() models.MediaType { return models.MediaMovies }

func (s *movieSource) Fetch(ctx context.Context, q Query) ([]models.Item, error) {
	key := cacheKey("tmdb-movies", q.Search, q.Genre, q.Region)
	if items, ok := s.client.cache.Get(key); ok {
		return items, nil
	}

	genreID, hasGenre := resolveGenreID(q.Genre, movieGenreIDs, movieGenreSynonyms)
	search := q.searchTerm()

	var (
		raw []tmdbResult
		// canonical label of an upstream origin filter, "" when none applied
		upstreamRegion string
		err            error
	)
	if search != "" {
		// TMDB's search endpoint has no origin-country or genre parameters;
		// both filters are enforced on the mapped results below so upstream
		// relevance ranking is preserved.
		params := url.Values{"query": {search}}
		page, ferr := s.client.get(ctx, "tmdb-movies", "/search/movie", params)
		if ferr != nil {
			err = ferr
		} else {
			raw = page.Results
		}
	} else {
		params := url.Values{"sort_by": {"popularity.desc"}}
		if hasGenre {
			params.Set("with_genres", strconv.Itoa(genreID))
		}
		if codes := regionLabelToCountryCodes(q.Region); len(codes) > 0 {
			params.Set("with_origin_country", strings.Join(codes, "|"))
			upstreamRegion = canonicalRegionLabel(q.Region)
		}
		page, ferr := s.client.get(ctx, "tmdb-movies", "/discover/movie", params)
		if ferr != nil {
			err = ferr
		} else {
			raw = page.Results
		}
	}
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(raw))
	for _, r := range raw {
		if search != "" && hasGenre && !containsGenreID(r.GenreIDs, genreID) {
			continue
		}
		item := mapTMDBResult(r, models.MediaMovies, movieGenreIDs, upstreamRegion)
		if upstreamRegion == "" && !matchesRegion(item, q.Region) {
			continue
		}
		items = append(items, item)
	}

	s.client.cache.Set(key, items)
	return items, nil
}

// seriesSource serves the series type from TMDB TV.
type seriesSource struct {
	client *tmdbClient
}

func (s *seriesSource) Type() models.MediaType { return models.MediaSeries }

func (s *seriesSource) Fetch(ctx context.Context, q Query) ([]models.Item, error) {
	key := cacheKey("tmdb-series", q.Search, q.Genre, q.Region)
	if items, ok := s.client.cache.Get(key); ok {
		return items, nil
	}

	genreID, hasGenre := resolveGenreID(q.Genre, tvGenreIDs, tvGenreSynonyms)
	search := q.searchTerm()

	var (
		raw            []tmdbResult
		upstreamRegion string
	)
	if search != "" {
		page, err := s.client.get(ctx, "tmdb-series", "/search/tv", url.Values{"query": {search}})
		if err != nil {
			return nil, err
		}
		raw = page.Results
	} else {
		params := url.Values{"sort_by": {"popularity.desc"}}
		if hasGenre {
			params.Set("with_genres", strconv.Itoa(genreID))
		}
		if codes := regionLabelToCountryCodes(q.Region); len(codes) > 0 {
			params.Set("with_origin_country", strings.Join(codes, "|"))
			upstreamRegion = canonicalRegionLabel(q.Region)
		}
		page, err := s.client.get(ctx, "tmdb-series", "/discover/tv", params)
		if err != nil {
			return nil, err
		}
		raw = page.Results
	}

	items := make([]models.Item, 0, len(raw))
	for _, r := range raw {
		if search != "" && hasGenre && !containsGenreID(r.GenreIDs, genreID) {
			continue
		}
		item := mapTMDBResult(r, models.MediaSeries, tvGenreIDs, upstreamRegion)
		if upstreamRegion == "" && !matchesRegion(item, q.Region) {
			continue
		}
		items = append(items, item)
	}

	s.client.cache.Set(key, items)
	return items, nil
}

// animeSource serves the anime type. TMDB has no anime category, so it rides
// the TV endpoints with the Animation genre always ANDed in and, in discover
// mode, origin constrained to JP/KR/CN (or the caller's region).
type animeSource struct {
	client *tmdbClient
}

func (s *animeSource) Type() models.MediaType { return models.MediaAnime }

func (s *animeSource) Fetch(ctx context.Context, q Query) ([]models.Item, error) {
	key := cacheKey("tmdb-anime", q.Search, q.Genre, q.Region)
	if items, ok := s.client.cache.Get(key); ok {
		return items, nil
	}

	genreID, hasGenre := resolveGenreID(q.Genre, tvGenreIDs, tvGenreSynonyms)
	search := q.searchTerm()

	var (
		raw            []tmdbResult
		upstreamRegion string
	)
	if search != "" {
		page, err := s.client.get(ctx, "tmdb-anime", "/search/tv", url.Values{"query": {search}})
		if err != nil {
			return nil, err
		}
		// A plain title search over TMDB TV is not anime-scoped; keep only
		// results that are animated or of Japanese origin/language.
		for _, r := range page.Results {
			if containsGenreID(r.GenreIDs, animationGenreID) ||
				containsCountry(r.OriginCountry, "JP") ||
				strings.EqualFold(r.OriginalLanguage, "ja") {
				raw = append(raw, r)
			}
		}
	} else {
		withGenres := strconv.Itoa(animationGenreID)
		if hasGenre && genreID != animationGenreID {
			withGenres += "," + strconv.Itoa(genreID)
		}
		params := url.Values{
			"sort_by":     {"popularity.desc"},
			"with_genres": {withGenres},
		}
		origins := animeDefaultOrigins
		if codes := regionLabelToCountryCodes(q.Region); len(codes) > 0 {
			origins = codes
			upstreamRegion = canonicalRegionLabel(q.Region)
		}
		params.Set("with_origin_country", strings.Join(origins, "|"))
		page, err := s.client.get(ctx, "tmdb-anime", "/discover/tv", params)
		if err != nil {
			return nil, err
		}
		raw = page.Results
	}

	items := make([]models.Item, 0, len(raw))
	for _, r := range raw {
		if search != "" && hasGenre && !containsGenreID(r.GenreIDs, genreID) {
			continue
		}
		item := mapTMDBResult(r, models.MediaAnime, tvGenreIDs, upstreamRegion)
		if upstreamRegion == "" && !matchesRegion(item, q.Region) {
			continue
		}
		items = append(items, item)
	}

	s.client.cache.Set(key, items)
	return items, nil
}
