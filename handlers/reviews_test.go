package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medley/internal/database"
	"medley/models"
	"medley/services/reviews"
)

type fakeReviews struct {
	feed      *reviews.Feed
	err       error
	lastQuery database.ReviewQuery
}

func (f *fakeReviews) ForItem(q database.ReviewQuery) (*reviews.Feed, error) {
	f.lastQuery = q
	return f.feed, f.err
}

func TestGetReviews_MissingIdentity(t *testing.T) {
	handler := NewReviewsHandler(&fakeReviews{err: reviews.ErrMissingIdentity})

	req := httptest.NewRequest(http.MethodGet, "/api/reviews?type=movies", nil)
	rec := httptest.NewRecorder()
	handler.GetReviews(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestGetReviews_EmptyFeed(t *testing.T) {
	handler := NewReviewsHandler(&fakeReviews{
		feed: &reviews.Feed{Count: 0, Reviews: []models.Review{}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reviews?externalId=550", nil)
	rec := httptest.NewRecorder()
	handler.GetReviews(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var feed reviews.Feed
	if err := json.Unmarshal(rec.Body.Bytes(), &feed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if feed.Count != 0 || feed.Reviews == nil {
		t.Fatalf("expected empty feed, got %+v", feed)
	}
}

func TestGetReviews_QueryNormalized(t *testing.T) {
	svc := &fakeReviews{feed: &reviews.Feed{Reviews: []models.Review{}}}
	handler := NewReviewsHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews?name=Dune&type=Books", nil)
	rec := httptest.NewRecorder()
	handler.GetReviews(rec, req)

	if svc.lastQuery.Name != "Dune" {
		t.Fatalf("name = %q", svc.lastQuery.Name)
	}
	if svc.lastQuery.Type != "books" {
		t.Fatalf("type should be lowercased, got %q", svc.lastQuery.Type)
	}
}

func TestGetReviews_RepoFailure(t *testing.T) {
	handler := NewReviewsHandler(&fakeReviews{err: errors.New("db locked")})

	req := httptest.NewRequest(http.MethodGet, "/api/reviews?externalId=550", nil)
	rec := httptest.NewRecorder()
	handler.GetReviews(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}
