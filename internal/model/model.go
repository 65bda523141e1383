package model

import (
	"fmt"
	"time"
)

// Kind discriminates the two title collections. Movies and TV shows share
// almost all behavior; everything kind-specific hangs off the descriptor
// returned by Info so the two code paths cannot drift apart.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindTVShow Kind = "tvshow"
)

// ParseKind accepts both the singular path form ("movie") and the plural
// collection form ("movies").
func ParseKind(s string) (Kind, error) {
	switch s {
	case "movie", "movies":
		return KindMovie, nil
	case "tvshow", "tvshows":
		return KindTVShow, nil
	}
	return "", fmt.Errorf("invalid kind %q: must be \"movie\" or \"tvshow\"", s)
}

// Watchlist entry statuses.
const (
	StatusPlanning  = "Planning"
	StatusWatching  = "Watching"
	StatusPaused    = "Paused"
	StatusCompleted = "Completed"
	StatusDropped   = "Dropped"
)

// KindInfo is the descriptor that parameterizes every kind-generic component:
// which tables hold the data, which date column drives year filtering and
// Latest sorting, and which statuses an entry may take.
type KindInfo struct {
	Kind           Kind
	TitleTable     string
	TitleFK        string // watchlist/association column referencing the title
	GenreTable     string
	WatchlistTable string
	DateColumn     string
	Statuses       map[string]struct{}
}

var movieInfo = KindInfo{
	Kind:           KindMovie,
	TitleTable:     "movies",
	TitleFK:        "movie_id",
	GenreTable:     "movie_genres",
	WatchlistTable: "movie_watchlist",
	DateColumn:     "release_date",
	Statuses: map[string]struct{}{
		StatusPlanning:  {},
		StatusCompleted: {},
		StatusDropped:   {},
	},
}

var tvShowInfo = KindInfo{
	Kind:           KindTVShow,
	TitleTable:     "tv_shows",
	TitleFK:        "tv_show_id",
	GenreTable:     "tv_show_genres",
	WatchlistTable: "tv_show_watchlist",
	DateColumn:     "start_date",
	Statuses: map[string]struct{}{
		StatusPlanning:  {},
		StatusWatching:  {},
		StatusPaused:    {},
		StatusCompleted: {},
		StatusDropped:   {},
	},
}

// Info returns the descriptor for a kind. Callers must have validated the
// kind via ParseKind.
func (k Kind) Info() KindInfo {
	if k == KindTVShow {
		return tvShowInfo
	}
	return movieInfo
}

// ValidStatus reports whether s is an allowed watchlist status for the kind.
func (k Kind) ValidStatus(s string) bool {
	_, ok := k.Info().Statuses[s]
	return ok
}

// ValidRating reports whether r is an acceptable watchlist rating: nil
// (not rated) or an integer between 1 and 10.
func ValidRating(r *int) bool {
	return r == nil || (*r >= 1 && *r <= 10)
}

// Title is a Movie or TVShow catalog record. Rating is the derived aggregate
// (mean of all users' watchlist ratings, 1 decimal) and is only ever written
// by the rating recalculation; nil means no ratings yet. The temporal fields
// are populated per kind: release date + duration for movies, start + finish
// dates for TV shows.
type Title struct {
	ID              int64      `json:"_id"`
	Kind            Kind       `json:"kind"`
	Name            string     `json:"title"`
	Description     string     `json:"description"`
	Rating          *float64   `json:"rating"`
	PosterURL       string     `json:"poster_url"`
	ReleaseDate     *time.Time `json:"release_date,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	FinishDate      *time.Time `json:"finish_date,omitempty"`
	Genres          []string   `json:"genres"`
}

// Date returns the kind-appropriate temporal field (release date for movies,
// start date for TV shows).
func (t Title) Date() *time.Time {
	if t.Kind == KindTVShow {
		return t.StartDate
	}
	return t.ReleaseDate
}

type Genre struct {
	ID   int64  `json:"_id"`
	Name string `json:"name"`
}

// WatchlistEntry is one user's tracking record for one title. Rating nil
// means unrated. There is at most one entry per (user, title).
type WatchlistEntry struct {
	UserID  int64     `json:"user_id"`
	TitleID int64     `json:"title_id"`
	Status  string    `json:"status"`
	Rating  *int      `json:"rating"`
	AddedAt time.Time `json:"added_at"`
}

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                int64     `json:"_id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	ProfilePictureURL string    `json:"profilePictureUrl"`
	Description       string    `json:"description"`
	Role              string    `json:"role"`
	CreatedAt         time.Time `json:"created_at"`
}

// WatchlistStats summarizes one user's list for one kind: how many titles it
// holds and the mean of that user's own non-nil ratings (nil if none).
type WatchlistStats struct {
	Total     int64    `json:"total"`
	AvgRating *float64 `json:"avgRating"`
}
