package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"medley/models"
)

// ErrProfileNotFound is returned when no profile exists for a user id.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository persists user profiles and their saved lists.
type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetProfile loads one profile with its list items. Returns
// ErrProfileNotFound when the user has no profile document.
func (r *ProfileRepository) GetProfile(userID string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.QueryRow(`
		SELECT user_id, username, name, bio, location, website, avatar_url, join_date
		FROM profiles WHERE user_id = ?`, userID).
		Scan(&p.UserID, &p.Username, &p.Name, &p.Bio, &p.Location, &p.Website, &p.AvatarURL, &p.JoinDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}

	items, err := r.ListItems(userID)
	if err != nil {
		return nil, err
	}
	p.Lists = items
	return &p, nil
}

// UpsertProfile creates or replaces a profile document, including its list.
// A new profile with no username gets a generated one.
func (r *ProfileRepository) UpsertProfile(p *models.Profile) error {
	if p.UserID == "" {
		return errors.New("user id required")
	}
	if p.Username == "" {
		p.Username = "user-" + uuid.NewString()[:8]
	}
	if p.JoinDate.IsZero() {
		p.JoinDate = time.Now().UTC()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO profiles (user_id, username, name, bio, location, website, avatar_url, join_date, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			username = excluded.username,
			name = excluded.name,
			bio = excluded.bio,
			location = excluded.location,
			website = excluded.website,
			avatar_url = excluded.avatar_url,
			updated_at = CURRENT_TIMESTAMP`,
		p.UserID, p.Username, p.Name, p.Bio, p.Location, p.Website, p.AvatarURL, p.JoinDate)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM list_items WHERE user_id = ?`, p.UserID); err != nil {
		return fmt.Errorf("clear list items: %w", err)
	}
	for _, li := range p.Lists {
		status := li.Status
		if status == "" {
			status = models.StatusUnwatched
		}
		_, err := tx.Exec(`
			INSERT INTO list_items (user_id, external_id, url, name, type, description, status, rating, review, rewatch_count, thumbnail)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.UserID, li.ExternalID, li.URL, li.Name, li.Type, li.Description, status, li.Rating, li.Review, li.RewatchCount, li.Thumbnail)
		if err != nil {
			return fmt.Errorf("insert list item: %w", err)
		}
	}

	return tx.Commit()
}

// ListItems returns the saved list for one user. A user without a profile
// simply has an empty list.
func (r *ProfileRepository) ListItems(userID string) ([]models.ListItem, error) {
	rows, err := r.db.Query(`
		SELECT external_id, url, name, type, description, status, rating, review, rewatch_count, thumbnail
		FROM list_items WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query list items: %w", err)
	}
	defer rows.Close()

	items := []models.ListItem{}
	for rows.Next() {
		var li models.ListItem
		if err := rows.Scan(&li.ExternalID, &li.URL, &li.Name, &li.Type, &li.Description, &li.Status, &li.Rating, &li.Review, &li.RewatchCount, &li.Thumbnail); err != nil {
			return nil, fmt.Errorf("scan list item: %w", err)
		}
		items = append(items, li)
	}
	return items, rows.Err()
}

// ReviewQuery identifies a catalog item for the public review feed. At least
// one of ExternalID, URL or Name must be set.
type ReviewQuery struct {
	ExternalID string
	URL        string
	Name       string
	Type       string
}

// FindReviews scans all profiles for non-empty reviews matching the item
// identity, sorted by rating descending then username ascending.
func (r *ProfileRepository) FindReviews(q ReviewQuery) ([]models.Review, error) {
	var (
		conds []string
		args  []any
	)
	if q.ExternalID != "" {
		conds = append(conds, "li.external_id = ?")
		args = append(args, q.ExternalID)
	}
	if q.URL != "" {
		conds = append(conds, "li.url = ?")
		args = append(args, q.URL)
	}
	if q.Name != "" {
		if q.Type != "" {
			conds = append(conds, "(LOWER(li.name) = LOWER(?) AND li.type = ?)")
			args = append(args, q.Name, q.Type)
		} else {
			conds = append(conds, "LOWER(li.name) = LOWER(?)")
			args = append(args, q.Name)
		}
	}
	if len(conds) == 0 {
		return nil, errors.New("review query requires an identity")
	}

	rows, err := r.db.Query(`
		SELECT p.user_id, p.username, p.name, p.avatar_url,
		       li.rating, li.review, li.rewatch_count, li.status, li.type, li.name
		FROM list_items li
		JOIN profiles p ON p.user_id = li.user_id
		WHERE li.review != '' AND (`+strings.Join(conds, " OR ")+`)
		ORDER BY li.rating DESC, p.username ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.User.ID, &rv.User.Username, &rv.User.Name, &rv.AvatarURL,
			&rv.Rating, &rv.Review, &rv.RewatchCount, &rv.Status, &rv.Type, &rv.Name); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
