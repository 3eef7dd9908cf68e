package models

import "time"

// List item status values.
const (
	StatusWatched   = "watched"
	StatusUnwatched = "unwatched"
	StatusHold      = "hold"
)

// ListItem is one saved entry in a user's watch/read list. Identity for
// cross-referencing against catalog items is ExternalID when present,
// otherwise the lowercased (Name, Type) pair.
type ListItem struct {
	ExternalID   string  `json:"externalId,omitempty"`
	URL          string  `json:"url,omitempty"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Description  string  `json:"description,omitempty"`
	Status       string  `json:"status"`
	Rating       float64 `json:"rating,omitempty"`
	Review       string  `json:"review,omitempty"`
	RewatchCount int     `json:"rewatchCount,omitempty"`
	Thumbnail    string  `json:"thumbnail,omitempty"`
}

// Profile is a user's persisted profile document. The aggregation layer only
// reads Lists; it never mutates a profile it did not receive over PUT.
type Profile struct {
	UserID    string     `json:"userId"`
	Username  string     `json:"username"`
	Name      string     `json:"name,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	Location  string     `json:"location,omitempty"`
	Website   string     `json:"website,omitempty"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	JoinDate  time.Time  `json:"joinDate"`
	Lists     []ListItem `json:"lists"`
}

// ReviewUser identifies the author of a public review.
type ReviewUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// Review is one public review assembled from a profile's list entry.
type Review struct {
	User         ReviewUser `json:"user"`
	AvatarURL    string     `json:"avatarUrl,omitempty"`
	Rating       float64    `json:"rating"`
	Review       string     `json:"review"`
	RewatchCount int        `json:"rewatchCount"`
	Status       string     `json:"status"`
	Type         string     `json:"type"`
	Name         string     `json:"name"`
}
