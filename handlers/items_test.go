package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medley/models"
	"medley/services/catalog"
)

type fakeCatalog struct {
	typed     map[models.MediaType][]models.Item
	typedErr  error
	all       []models.Item
	failures  []catalog.SourceFailure
	lastQuery catalog.Query
	lastType  models.MediaType
}

func (f *fakeCatalog) FetchType(_ context.Context, mediaType models.MediaType, q catalog.Query) ([]models.Item, error) {
	f.lastType = mediaType
	f.lastQuery = q
	if f.typedErr != nil {
		return nil, f.typedErr
	}
	return f.typed[mediaType], nil
}

func (f *fakeCatalog) FetchAll(_ context.Context, q catalog.Query) ([]models.Item, []catalog.SourceFailure) {
	f.lastQuery = q
	return f.all, f.failures
}

func TestGetItems_InvalidType(t *testing.T) {
	handler := NewItemsHandler(&fakeCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/api/items?type=podcasts", nil)
	rec := httptest.NewRecorder()
	handler.GetItems(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] == "" {
		t.Fatal("expected an error message")
	}
}

func TestGetItems_SingleTypeError(t *testing.T) {
	handler := NewItemsHandler(&fakeCatalog{typedErr: errors.New("tmdb unreachable")})

	req := httptest.NewRequest(http.MethodGet, "/api/items?type=movies", nil)
	rec := httptest.NewRecorder()
	handler.GetItems(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}

func TestGetItems_SingleTypeSuccess(t *testing.T) {
	svc := &fakeCatalog{typed: map[models.MediaType][]models.Item{
		models.MediaBooks: {{ID: "b1", Title: "Dune", Type: models.MediaBooks}},
	}}
	handler := NewItemsHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/items?type=books&search=dune&categories=Fiction,Drama", nil)
	rec := httptest.NewRecorder()
	handler.GetItems(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if svc.lastType != models.MediaBooks {
		t.Fatalf("wrong type forwarded: %s", svc.lastType)
	}
	if svc.lastQuery.Search != "dune" {
		t.Fatalf("search not forwarded: %q", svc.lastQuery.Search)
	}
	if len(svc.lastQuery.Categories) != 2 || svc.lastQuery.Categories[0] != "Fiction" {
		t.Fatalf("categories not parsed: %v", svc.lastQuery.Categories)
	}

	var items []models.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Dune" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestGetItems_AggregateToleratesFailures(t *testing.T) {
	svc := &fakeCatalog{
		all: []models.Item{
			{ID: "m1", Title: "A Movie", Type: models.MediaMovies},
			{ID: "s1", Title: "A Series", Type: models.MediaSeries},
		},
		failures: []catalog.SourceFailure{{Type: models.MediaMusic, Err: errors.New("spotify down")}},
	}
	handler := NewItemsHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/items?type=all", nil)
	rec := httptest.NewRecorder()
	handler.GetItems(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("aggregate with partial failures should be 200, got %d", rec.Code)
	}
	var items []models.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestGetItems_NoTypeDefaultsToAll(t *testing.T) {
	svc := &fakeCatalog{all: []models.Item{{ID: "m1", Type: models.MediaMovies}}}
	handler := NewItemsHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	rec := httptest.NewRecorder()
	handler.GetItems(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var items []models.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected aggregate result, got %d items", len(items))
	}
}

func TestGetItems_LimitTruncates(t *testing.T) {
	svc := &fakeCatalog{all: []models.Item{
		{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"},
	}}
	handler := NewItemsHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/items?limit=2", nil)
	rec := httptest.NewRecorder()
	handler.GetItems(rec, req)

	var items []models.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items after limit, got %d", len(items))
	}
}
