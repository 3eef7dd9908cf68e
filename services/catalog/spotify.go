package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"medley/models"
)

const (
	spotifyAPIBaseURL   = "https://api.spotify.com/v1"
	spotifyTokenURL     = "https://accounts.spotify.com/api/token"
	spotifySearchLimit  = 20
	spotifyTrendingPop  = 70
	spotifyDefaultQuery = "Alan Walker"
)

// spotifySource serves the music type from the Spotify track search API.
// Genre and region filtering are not attempted: Spotify models genre at the
// artist level, and fetching artists per track would turn every search into
// an N+1 call pattern.
type spotifySource struct {
	clientID     string
	clientSecret string
	apiBaseURL   string
	tokenURL     string
	httpc        *http.Client
	cache        Cache
	policy       fetchPolicy

	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewMusicSource returns the Spotify-backed music source.
func NewMusicSource(clientID, clientSecret string, httpc *http.Client, cache Cache) Source {
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &spotifySource{
		clientID:     strings.TrimSpace(clientID),
		clientSecret: strings.TrimSpace(clientSecret),
		apiBaseURL:   spotifyAPIBaseURL,
		tokenURL:     spotifyTokenURL,
		httpc:        httpc,
		cache:        cache,
		policy:       fetchPolicy{Retries: 1, Timeout: 8 * time.Second},
	}
}

func (s *spotifySource) Type() models.MediaType { return models.MediaMusic }

type spotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns a cached client-credentials access token, refreshing it one
// minute before expiry.
func (s *spotifySource) token(ctx context.Context) (string, error) {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()

	if s.accessToken != "" && time.Now().Before(s.tokenExpiry) {
		return s.accessToken, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return "", &UpstreamError{Source: "spotify", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Source: "spotify", Status: resp.StatusCode}
	}

	var token spotifyTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", &UpstreamError{Source: "spotify", Err: fmt.Errorf("decode token: %w", err)}
	}

	s.accessToken = token.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)
	return s.accessToken, nil
}

type spotifyTrack struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Popularity int    `json:"popularity"`
	PreviewURL string `json:"preview_url"`
	Artists    []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name        string `json:"name"`
		ReleaseDate string `json:"release_date"`
		Images      []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

type spotifySearchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

func (s *spotifySource) Fetch(ctx context.Context, q Query) ([]models.Item, error) {
	term := q.searchTerm()
	if term == "" {
		// Spotify has no trending-tracks endpoint; fall back to a fixed
		// artist query so discovery mode still returns something.
		term = spotifyDefaultQuery
	}

	key := cacheKey("spotify", term)
	if items, ok := s.cache.Get(key); ok {
		return items, nil
	}

	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"q":     {term},
		"type":  {"track"},
		"limit": {fmt.Sprintf("%d", spotifySearchLimit)},
	}
	header := http.Header{"Authorization": {"Bearer " + token}}

	var resp spotifySearchResponse
	if err := fetchJSON(ctx, s.httpc, "spotify", s.apiBaseURL+"/search?"+params.Encode(), header, s.policy, &resp); err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(resp.Tracks.Items))
	for _, track := range resp.Tracks.Items {
		items = append(items, mapSpotifyTrack(track))
	}

	s.cache.Set(key, items)
	return items, nil
}

func mapSpotifyTrack(track spotifyTrack) models.Item {
	title := track.Name
	if title == "" {
		title = "Unknown Title"
	}

	artists := make([]string, 0, len(track.Artists))
	for _, a := range track.Artists {
		artists = append(artists, a.Name)
	}

	thumbnail := ""
	if len(track.Album.Images) > 0 {
		thumbnail = track.Album.Images[0].URL
	}

	return models.Item{
		ID:          track.ID,
		Type:        models.MediaMusic,
		Title:       title,
		Rating:      float64(track.Popularity),
		Genre:       "Unknown",
		Region:      models.RegionGlobal,
		Country:     "Unknown",
		Trending:    track.Popularity > spotifyTrendingPop,
		Thumbnail:   thumbnail,
		Description: "",
		Artists:     artists,
		Album:       track.Album.Name,
		ReleaseDate: track.Album.ReleaseDate,
		PreviewURL:  track.PreviewURL,
		SpotifyURL:  track.ExternalURLs.Spotify,
		Popularity:  float64(track.Popularity),
	}
}
