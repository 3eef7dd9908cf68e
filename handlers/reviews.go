package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"medley/internal/database"
	"medley/services/reviews"
)

type reviewsService interface {
	ForItem(q database.ReviewQuery) (*reviews.Feed, error)
}

var _ reviewsService = (*reviews.Service)(nil)

// ReviewsHandler serves the public review feed for a catalog item.
type ReviewsHandler struct {
	Service reviewsService
}

func NewReviewsHandler(svc reviewsService) *ReviewsHandler {
	return &ReviewsHandler{Service: svc}
}

// GetReviews handles GET /api/reviews. The item may be identified by
// externalId, url, or a (name, type) pair; with none of those the request is
// a 400. An item nobody reviewed returns an empty feed with a 200.
func (h *ReviewsHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := database.ReviewQuery{
		ExternalID: strings.TrimSpace(params.Get("externalId")),
		URL:        strings.TrimSpace(params.Get("url")),
		Name:       strings.TrimSpace(params.Get("name")),
		Type:       strings.ToLower(strings.TrimSpace(params.Get("type"))),
	}

	feed, err := h.Service.ForItem(q)
	if err != nil {
		if errors.Is(err, reviews.ErrMissingIdentity) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[reviews] feed lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load reviews")
		return
	}
	writeJSON(w, http.StatusOK, feed)
}
