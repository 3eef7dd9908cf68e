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
	googleBooksBaseURL = "https://www.googleapis.com/books/v1"

	// Google Books caps maxResults at 40 per call; larger requests are
	// satisfied by sequential pages, bounded to keep latency predictable.
	booksPageSize = 40
	booksMaxPages = 3

	booksDefaultQuery = "bestseller"
)

// booksSource serves the books type from the Google Books volumes API.
type booksSource struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	cache   Cache
	policy  fetchPolicy
}

// NewBooksSource returns the Google Books backed source.
func NewBooksSource(apiKey string, httpc *http.Client, cache Cache) Source {
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &booksSource{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: googleBooksBaseURL,
		httpc:   httpc,
		cache:   cache,
		policy:  fetchPolicy{Retries: 1, Timeout: 7 * time.Second},
	}
}

func (s *booksSource) Type() models.MediaType { return models.MediaBooks }

type booksVolume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title         string   `json:"title"`
		Authors       []string `json:"authors"`
		Description   string   `json:"description"`
		Categories    []string `json:"categories"`
		AverageRating float64  `json:"averageRating"`
		PublishedDate string   `json:"publishedDate"`
		ImageLinks    struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
	SaleInfo struct {
		Country string `json:"country"`
	} `json:"saleInfo"`
}

type booksPage struct {
	Items []booksVolume `json:"items"`
}

func (s *booksSource) Fetch(ctx context.Context, q Query) ([]models.Item, error) {
	key := cacheKey("googlebooks", q.Search, strings.Join(q.Categories, ","), q.Region, strconv.Itoa(q.Limit))
	if items, ok := s.cache.Get(key); ok {
		return items, nil
	}

	term := q.searchTerm()
	if term == "" {
		term = booksDefaultQuery
	}
	// The subject qualifier only supports a single category; with exactly one
	// selected it narrows the upstream query, and the post-filter below covers
	// multi-category selections and upstream subject imprecision either way.
	if len(q.Categories) == 1 && q.Categories[0] != "" && !strings.EqualFold(q.Categories[0], "all") {
		term += " subject:" + q.Categories[0]
	}

	desired := q.Limit
	if desired <= 0 {
		desired = booksPageSize
	}
	pages := (desired + booksPageSize - 1) / booksPageSize
	if pages > booksMaxPages {
		pages = booksMaxPages
	}

	seen := make(map[string]bool)
	var items []models.Item
	for page := 0; page < pages; page++ {
		params := url.Values{
			"q":          {term},
			"maxResults": {strconv.Itoa(booksPageSize)},
			"startIndex": {strconv.Itoa(page * booksPageSize)},
		}
		if s.apiKey != "" {
			params.Set("key", s.apiKey)
		}
		var resp booksPage
		err := fetchJSON(ctx, s.httpc, "googlebooks", s.baseURL+"/volumes?"+params.Encode(), nil, s.policy, &resp)
		if err != nil {
			// Surface a first-page failure; later pages are best-effort.
			if page == 0 {
				return nil, err
			}
			break
		}
		if len(resp.Items) == 0 {
			break
		}
		for _, vol := range resp.Items {
			if vol.ID == "" || seen[vol.ID] {
				continue
			}
			seen[vol.ID] = true
			item := mapBooksVolume(vol)
			if !matchesCategory(item.Categories, q.Categories) {
				continue
			}
			if !matchesRegion(item, q.Region) {
				continue
			}
			items = append(items, item)
		}
	}

	if len(items) > desired {
		items = items[:desired]
	}
	if items == nil {
		items = []models.Item{}
	}

	s.cache.Set(key, items)
	return items, nil
}

func mapBooksVolume(vol booksVolume) models.Item {
	info := vol.VolumeInfo

	title := info.Title
	if title == "" {
		title = "Unknown Title"
	}

	genre := "Unknown"
	if len(info.Categories) > 0 {
		genre = info.Categories[0]
	}

	region, country := resolveRegion(vol.SaleInfo.Country, "")

	return models.Item{
		ID:          vol.ID,
		Type:        models.MediaBooks,
		Title:       title,
		Rating:      info.AverageRating,
		Genre:       genre,
		Categories:  info.Categories,
		Region:      region,
		Country:     country,
		Thumbnail:   info.ImageLinks.Thumbnail,
		Description: info.Description,
		Authors:     info.Authors,
		ReleaseDate: info.PublishedDate,
	}
}
