package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"medley/internal/database"
	"medley/models"
	"medley/services/profiles"
)

type profilesService interface {
	Get(userID string) (*models.Profile, error)
	Upsert(p *models.Profile) error
}

var _ profilesService = (*profiles.Service)(nil)

// ProfilesHandler serves user profile documents.
type ProfilesHandler struct {
	Service profilesService
}

func NewProfilesHandler(svc profilesService) *ProfilesHandler {
	return &ProfilesHandler{Service: svc}
}

// GetProfile handles GET /api/profile/{userId}.
func (h *ProfilesHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	profile, err := h.Service.Get(userID)
	if err != nil {
		if errors.Is(err, database.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		log.Printf("[profiles] get %s failed: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/profile/{userId} as an upsert.
func (h *ProfilesHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile payload")
		return
	}
	profile.UserID = userID

	if err := h.Service.Upsert(&profile); err != nil {
		if errors.Is(err, profiles.ErrInvalidProfile) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[profiles] upsert %s failed: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
