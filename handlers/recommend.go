package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"medley/models"
	"medley/services/recommend"
)

type recommender interface {
	Recommend(ctx context.Context, req recommend.Request) []models.Item
}

var _ recommender = (*recommend.Engine)(nil)

// RecommendHandler serves mood-based recommendations.
type RecommendHandler struct {
	Engine recommender
}

func NewRecommendHandler(engine recommender) *RecommendHandler {
	return &RecommendHandler{Engine: engine}
}

// GetRecommendations handles GET /api/recommendations. The response is always
// a 200 item array: unknown moods fall back to the default, unknown types are
// skipped and upstream failures shrink the pool instead of erroring.
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	req := recommend.Request{
		Mood:   strings.TrimSpace(params.Get("mood")),
		UserID: strings.TrimSpace(params.Get("userId")),
		Query:  strings.TrimSpace(params.Get("q")),
	}
	if typesParam := strings.TrimSpace(params.Get("types")); typesParam != "" {
		for _, t := range strings.Split(typesParam, ",") {
			if mediaType, ok := models.ParseMediaType(t); ok {
				req.Types = append(req.Types, mediaType)
			}
		}
	}
	if limitStr := params.Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			req.Limit = parsed
		}
	}

	writeJSON(w, http.StatusOK, h.Engine.Recommend(r.Context(), req))
}
