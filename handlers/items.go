package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"medley/models"
	"medley/services/catalog"
)

type catalogService interface {
	FetchType(ctx context.Context, mediaType models.MediaType, q catalog.Query) ([]models.Item, error)
	FetchAll(ctx context.Context, q catalog.Query) ([]models.Item, []catalog.SourceFailure)
}

var _ catalogService = (*catalog.Service)(nil)

// ItemsHandler serves the catalog search/discover endpoint.
type ItemsHandler struct {
	Catalog catalogService
}

func NewItemsHandler(svc catalogService) *ItemsHandler {
	return &ItemsHandler{Catalog: svc}
}

// GetItems handles GET /api/items. type=all (or no type) aggregates across
// every source fail-soft; a single-type request surfaces upstream failures as
// a 500 since the caller explicitly asked for that source.
func (h *ItemsHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := catalog.Query{
		Search: strings.TrimSpace(params.Get("search")),
		Genre:  strings.TrimSpace(params.Get("genre")),
		Region: strings.TrimSpace(params.Get("region")),
	}
	if cats := strings.TrimSpace(params.Get("categories")); cats != "" {
		for _, c := range strings.Split(cats, ",") {
			if c = strings.TrimSpace(c); c != "" {
				q.Categories = append(q.Categories, c)
			}
		}
	}
	if limitStr := params.Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			q.Limit = parsed
		}
	}

	typeParam := strings.ToLower(strings.TrimSpace(params.Get("type")))
	if typeParam == "" || typeParam == "all" {
		items, failures := h.Catalog.FetchAll(r.Context(), q)
		if len(failures) > 0 {
			log.Printf("[items] aggregation completed with %d source failure(s)", len(failures))
		}
		items = truncateItems(items, q.Limit)
		writeJSON(w, http.StatusOK, items)
		return
	}

	mediaType, ok := models.ParseMediaType(typeParam)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid or unsupported type")
		return
	}

	items, err := h.Catalog.FetchType(r.Context(), mediaType, q)
	if err != nil {
		log.Printf("[items] %s fetch failed: %v", mediaType, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	items = truncateItems(items, q.Limit)
	writeJSON(w, http.StatusOK, items)
}

func truncateItems(items []models.Item, limit int) []models.Item {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
