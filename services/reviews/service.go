package reviews

import (
	"errors"

	"medley/internal/database"
	"medley/models"
)

// ErrMissingIdentity is returned when a feed request names no item identity.
var ErrMissingIdentity = errors.New("identify the item by externalId, url, or name")

// repository is implemented by database.ProfileRepository.
type repository interface {
	FindReviews(q database.ReviewQuery) ([]models.Review, error)
}

// Service assembles public review feeds from persisted user lists.
type Service struct {
	repo repository
}

func NewService(repo repository) *Service {
	return &Service{repo: repo}
}

// Feed is the public review response for one catalog item.
type Feed struct {
	Count   int             `json:"count"`
	Reviews []models.Review `json:"reviews"`
}

// ForItem returns all public reviews matching the item identity. An item
// nobody has reviewed yields an empty feed, not an error.
func (s *Service) ForItem(q database.ReviewQuery) (*Feed, error) {
	if q.ExternalID == "" && q.URL == "" && q.Name == "" {
		return nil, ErrMissingIdentity
	}
	reviews, err := s.repo.FindReviews(q)
	if err != nil {
		return nil, err
	}
	return &Feed{Count: len(reviews), Reviews: reviews}, nil
}
