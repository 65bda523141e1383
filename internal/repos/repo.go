package repos

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
	"github.com/AdamicaAlexander/Cinemite/internal/query"
	"github.com/AdamicaAlexander/Cinemite/pkg/tmdb"
)

// Repository bundles the per-entity repos over one pgx pool and implements
// the store interface the route handlers depend on.
type Repository struct {
	db *pgxpool.Pool

	Titles    *TitlesRepo
	Genres    *GenresRepo
	Watchlist *WatchlistRepo
	Ratings   *RatingsRepo
	Users     *UsersRepo
}

func New(db *pgxpool.Pool) *Repository {
	r := &Repository{db: db}
	r.Titles = &TitlesRepo{db: db}
	r.Genres = &GenresRepo{db: db}
	r.Watchlist = &WatchlistRepo{db: db}
	r.Users = &UsersRepo{db: db}
	r.Ratings = &RatingsRepo{db: db, titles: r.Titles, watchlist: r.Watchlist}
	return r
}

// QueryWatchlist runs the watchlist aggregation: load the user's entries and
// the titles they reference, then join, filter, sort and paginate through
// the pure pipeline.
func (r *Repository) QueryWatchlist(ctx context.Context, userID int64, kind model.Kind, f query.Filters, s query.Sort, page, pageSize int) ([]query.Row, error) {
	entries, err := r.Watchlist.ListByUser(ctx, kind, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.TitleID)
	}
	titles, err := r.Titles.GetByIDs(ctx, kind, ids)
	if err != nil {
		return nil, err
	}
	return query.Run(entries, titles, f, s, page, pageSize), nil
}

// BrowseCatalog is the catalog-wide variant without the per-user join.
func (r *Repository) BrowseCatalog(ctx context.Context, kind model.Kind, f query.Filters, s query.Sort, page, pageSize int) ([]query.Row, error) {
	titles, err := r.Titles.ListAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	return query.RunBrowse(titles, f, s, page, pageSize), nil
}

// Forwarders so *Repository satisfies routes.Store.

func (r *Repository) GetTitleByName(ctx context.Context, kind model.Kind, name string) (model.Title, error) {
	return r.Titles.GetByName(ctx, kind, name)
}
func (r *Repository) QuickSearchTitles(ctx context.Context, kind model.Kind, term string, limit int32) ([]model.Title, error) {
	return r.Titles.QuickSearch(ctx, kind, term, limit)
}
func (r *Repository) CreateTitle(ctx context.Context, t model.Title) (int64, error) {
	return r.Titles.Create(ctx, t)
}
func (r *Repository) UpdateTitle(ctx context.Context, t model.Title) error {
	return r.Titles.Update(ctx, t)
}
func (r *Repository) DeleteTitle(ctx context.Context, kind model.Kind, id int64) error {
	return r.Titles.Delete(ctx, kind, id)
}
func (r *Repository) HasTitles(ctx context.Context, kind model.Kind) (bool, error) {
	return r.Titles.HasTitles(ctx, kind)
}
func (r *Repository) ImportMovies(ctx context.Context, movies []tmdb.Movie) (int, error) {
	return r.Titles.ImportMovies(ctx, movies)
}

func (r *Repository) ListGenres(ctx context.Context) ([]model.Genre, error) {
	return r.Genres.ListGenres(ctx)
}
func (r *Repository) UpsertGenre(ctx context.Context, name string) (int64, error) {
	return r.Genres.UpsertGenre(ctx, name)
}
func (r *Repository) GenreNamesByTitle(ctx context.Context, kind model.Kind, titleID int64) ([]string, error) {
	return r.Genres.NamesByTitle(ctx, kind, titleID)
}
func (r *Repository) SetTitleGenres(ctx context.Context, kind model.Kind, titleID int64, names []string) error {
	return r.Genres.SetTitleGenres(ctx, kind, titleID, names)
}

func (r *Repository) GetWatchlistEntry(ctx context.Context, kind model.Kind, userID, titleID int64) (model.WatchlistEntry, error) {
	return r.Watchlist.Get(ctx, kind, userID, titleID)
}
func (r *Repository) AddToWatchlist(ctx context.Context, kind model.Kind, userID, titleID int64) (model.WatchlistEntry, bool, error) {
	return r.Watchlist.Add(ctx, kind, userID, titleID)
}
func (r *Repository) SetWatchlistStatus(ctx context.Context, kind model.Kind, userID, titleID int64, status string) error {
	return r.Watchlist.SetStatus(ctx, kind, userID, titleID, status)
}
func (r *Repository) SetWatchlistRating(ctx context.Context, kind model.Kind, userID, titleID int64, rating *int) error {
	return r.Watchlist.SetRating(ctx, kind, userID, titleID, rating)
}
func (r *Repository) RemoveFromWatchlist(ctx context.Context, kind model.Kind, userID, titleID int64) error {
	return r.Watchlist.Remove(ctx, kind, userID, titleID)
}
func (r *Repository) ClearWatchlist(ctx context.Context, kind model.Kind, userID int64) (int64, error) {
	return r.Watchlist.Clear(ctx, kind, userID)
}
func (r *Repository) WatchlistStats(ctx context.Context, kind model.Kind, userID int64) (model.WatchlistStats, error) {
	return r.Watchlist.Stats(ctx, kind, userID)
}

func (r *Repository) RecalculateRating(ctx context.Context, kind model.Kind, titleID int64) (*float64, error) {
	return r.Ratings.Recalculate(ctx, kind, titleID)
}

func (r *Repository) CreateUser(ctx context.Context, username, email, passwordHash, role string) (model.User, error) {
	return r.Users.Create(ctx, username, email, passwordHash, role)
}
func (r *Repository) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	return r.Users.GetByID(ctx, id)
}
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return r.Users.GetByEmail(ctx, email)
}
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return r.Users.GetByUsername(ctx, username)
}
func (r *Repository) UpdateUserDescription(ctx context.Context, userID int64, description string) error {
	return r.Users.UpdateDescription(ctx, userID, description)
}
func (r *Repository) DeleteUser(ctx context.Context, userID int64) error {
	return r.Users.Delete(ctx, userID)
}
