package models

import "strings"

// MediaType identifies one of the supported catalog types.
type MediaType string

const (
	MediaMovies MediaType = "movies"
	MediaSeries MediaType = "series"
	MediaAnime  MediaType = "anime"
	MediaBooks  MediaType = "books"
	MediaMusic  MediaType = "music"
)

// AllMediaTypes returns the supported types in canonical aggregation order.
// The order is fixed so that equal-score items sort deterministically downstream.
func AllMediaTypes() []MediaType {
	return []MediaType{MediaMovies, MediaSeries, MediaBooks, MediaAnime, MediaMusic}
}

// ParseMediaType normalizes a user-supplied type string. The second return is
// false for anything outside the supported set.
func ParseMediaType(s string) (MediaType, bool) {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case MediaMovies:
		return MediaMovies, true
	case MediaSeries:
		return MediaSeries, true
	case MediaAnime:
		return MediaAnime, true
	case MediaBooks:
		return MediaBooks, true
	case MediaMusic:
		return MediaMusic, true
	}
	return "", false
}

// Region labels shown in the UI. Derived from ISO country codes; a code that is
// present but unmapped resolves to RegionOther, an absent code to RegionUnknown.
const (
	RegionHollywood = "Hollywood"
	RegionBollywood = "Bollywood"
	RegionBritish   = "British"
	RegionKorean    = "Korean"
	RegionJapanese  = "Japanese"
	RegionEuropean  = "European"
	RegionAsian     = "Asian"
	RegionAfrica    = "Africa"
	RegionOceania   = "Oceania"
	RegionGlobal    = "Global"
	RegionOther     = "Other"
	RegionUnknown   = "Unknown"
)

// Item is the canonical shape every catalog source maps into. Title, Genre,
// Region, Country, Thumbnail and Description are never empty-for-null: absent
// upstream data is replaced by "Unknown Title", "Unknown" or "" so clients
// never have to null-check.
//
// Rating deliberately keeps the upstream unit: vote average 0-10 for video,
// average rating 0-5 for books, popularity 0-100 for music.
type Item struct {
	ID          string    `json:"id"`
	Type        MediaType `json:"type"`
	Title       string    `json:"title"`
	Rating      float64   `json:"rating"`
	Genre       string    `json:"genre"`
	Genres      []string  `json:"genres,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
	Region      string    `json:"region"`
	Country     string    `json:"country"`
	Trending    bool      `json:"trending"`
	Thumbnail   string    `json:"thumbnail"`
	Description string    `json:"description"`
	Language    string    `json:"language,omitempty"`

	// Type-specific extras. Only the owning source populates these.
	Authors     []string `json:"authors,omitempty"`
	Artists     []string `json:"artists,omitempty"`
	Album       string   `json:"album,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	PreviewURL  string   `json:"preview_url,omitempty"`
	SpotifyURL  string   `json:"spotifyUrl,omitempty"`
	Popularity  float64  `json:"popularity,omitempty"`
}
