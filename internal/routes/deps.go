package routes

import (
	"context"
	"time"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
	"github.com/AdamicaAlexander/Cinemite/internal/query"
	"github.com/AdamicaAlexander/Cinemite/pkg/auth"
	"github.com/AdamicaAlexander/Cinemite/pkg/cache"
)

// Store lists the repository methods the handlers rely on.
// *repos.Repository satisfies this interface.
type Store interface {
	QueryWatchlist(ctx context.Context, userID int64, kind model.Kind, f query.Filters, s query.Sort, page, pageSize int) ([]query.Row, error)
	BrowseCatalog(ctx context.Context, kind model.Kind, f query.Filters, s query.Sort, page, pageSize int) ([]query.Row, error)

	GetTitleByName(ctx context.Context, kind model.Kind, name string) (model.Title, error)
	QuickSearchTitles(ctx context.Context, kind model.Kind, term string, limit int32) ([]model.Title, error)
	CreateTitle(ctx context.Context, t model.Title) (int64, error)
	UpdateTitle(ctx context.Context, t model.Title) error
	DeleteTitle(ctx context.Context, kind model.Kind, id int64) error

	ListGenres(ctx context.Context) ([]model.Genre, error)
	GenreNamesByTitle(ctx context.Context, kind model.Kind, titleID int64) ([]string, error)
	SetTitleGenres(ctx context.Context, kind model.Kind, titleID int64, names []string) error

	GetWatchlistEntry(ctx context.Context, kind model.Kind, userID, titleID int64) (model.WatchlistEntry, error)
	AddToWatchlist(ctx context.Context, kind model.Kind, userID, titleID int64) (model.WatchlistEntry, bool, error)
	SetWatchlistStatus(ctx context.Context, kind model.Kind, userID, titleID int64, status string) error
	SetWatchlistRating(ctx context.Context, kind model.Kind, userID, titleID int64, rating *int) error
	RemoveFromWatchlist(ctx context.Context, kind model.Kind, userID, titleID int64) error
	ClearWatchlist(ctx context.Context, kind model.Kind, userID int64) (int64, error)
	WatchlistStats(ctx context.Context, kind model.Kind, userID int64) (model.WatchlistStats, error)

	RecalculateRating(ctx context.Context, kind model.Kind, titleID int64) (*float64, error)

	CreateUser(ctx context.Context, username, email, passwordHash, role string) (model.User, error)
	GetUserByID(ctx context.Context, id int64) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	UpdateUserDescription(ctx context.Context, userID int64, description string) error
	DeleteUser(ctx context.Context, userID int64) error
}

// Deps holds the dependencies required by the route handlers.
type Deps struct {
	Repo      Store
	Cache     cache.Cache
	Auth      *auth.Manager
	Name      string
	StartedAt time.Time
}
