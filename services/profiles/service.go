package profiles

import (
	"errors"
	"fmt"

	"medley/models"
)

// ErrInvalidProfile marks validation failures on an incoming document.
var ErrInvalidProfile = errors.New("invalid profile")

// repository is implemented by database.ProfileRepository.
type repository interface {
	GetProfile(userID string) (*models.Profile, error)
	UpsertProfile(p *models.Profile) error
	ListItems(userID string) ([]models.ListItem, error)
}

// Service fronts the profile store with input validation.
type Service struct {
	repo repository
}

func NewService(repo repository) *Service {
	return &Service{repo: repo}
}

// Get returns one user's profile (database.ErrProfileNotFound when absent).
func (s *Service) Get(userID string) (*models.Profile, error) {
	return s.repo.GetProfile(userID)
}

// Upsert validates and persists a profile document, replacing its list.
func (s *Service) Upsert(p *models.Profile) error {
	for i, li := range p.Lists {
		if li.Name == "" {
			return fmt.Errorf("%w: list item %d: name required", ErrInvalidProfile, i)
		}
		switch li.Status {
		case "", models.StatusWatched, models.StatusUnwatched, models.StatusHold:
		default:
			return fmt.Errorf("%w: list item %d: invalid status %q", ErrInvalidProfile, i, li.Status)
		}
	}
	return s.repo.UpsertProfile(p)
}

// ListItems returns a user's saved list; a missing profile yields an empty
// list, not an error.
func (s *Service) ListItems(userID string) ([]models.ListItem, error) {
	return s.repo.ListItems(userID)
}
