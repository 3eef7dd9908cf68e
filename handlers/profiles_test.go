package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"medley/internal/database"
	"medley/models"
	"medley/services/profiles"
)

type fakeProfiles struct {
	profile *models.Profile
	getErr  error
	upErr   error
	saved   *models.Profile
}

func (f *fakeProfiles) Get(userID string) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.profile, nil
}

func (f *fakeProfiles) Upsert(p *models.Profile) error {
	f.saved = p
	return f.upErr
}

// profileRouter routes through mux so path variables resolve like production.
func profileRouter(h *ProfilesHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/profile/{userId}", h.GetProfile).Methods(http.MethodGet)
	r.HandleFunc("/api/profile/{userId}", h.UpdateProfile).Methods(http.MethodPut)
	return r
}

func TestGetProfile_NotFound(t *testing.T) {
	handler := NewProfilesHandler(&fakeProfiles{getErr: database.ErrProfileNotFound})
	router := profileRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/profile/nobody", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestGetProfile_Success(t *testing.T) {
	handler := NewProfilesHandler(&fakeProfiles{
		profile: &models.Profile{UserID: "u1", Username: "ana", Lists: []models.ListItem{}},
	})
	router := profileRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/profile/u1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var got models.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Username != "ana" {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestUpdateProfile_ForcesPathUserID(t *testing.T) {
	svc := &fakeProfiles{}
	handler := NewProfilesHandler(svc)
	router := profileRouter(handler)

	body, _ := json.Marshal(models.Profile{UserID: "spoofed", Username: "ana"})
	req := httptest.NewRequest(http.MethodPut, "/api/profile/u1", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if svc.saved == nil || svc.saved.UserID != "u1" {
		t.Fatalf("user id must come from the path, got %+v", svc.saved)
	}
}

func TestUpdateProfile_InvalidJSON(t *testing.T) {
	handler := NewProfilesHandler(&fakeProfiles{})
	router := profileRouter(handler)

	req := httptest.NewRequest(http.MethodPut, "/api/profile/u1", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestUpdateProfile_ValidationError(t *testing.T) {
	handler := NewProfilesHandler(&fakeProfiles{
		upErr: fmt.Errorf("list item 0: %w", profiles.ErrInvalidProfile),
	})
	router := profileRouter(handler)

	body, _ := json.Marshal(models.Profile{Username: "ana"})
	req := httptest.NewRequest(http.MethodPut, "/api/profile/u1", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestUpdateProfile_StorageError(t *testing.T) {
	handler := NewProfilesHandler(&fakeProfiles{upErr: errors.New("disk full")})
	router := profileRouter(handler)

	body, _ := json.Marshal(models.Profile{Username: "ana"})
	req := httptest.NewRequest(http.MethodPut, "/api/profile/u1", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}
