package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
	"github.com/AdamicaAlexander/Cinemite/pkg/tmdb"
)

type TitlesRepo struct {
	db *pgxpool.Pool
}

// dateCols returns the kind-specific column pair. The descriptor's date
// column comes first (it drives year filtering and Latest sorting), followed
// by the kind's remaining temporal column.
func dateCols(info model.KindInfo) string {
	if info.Kind == model.KindTVShow {
		return "t." + info.DateColumn + ", t.finish_date"
	}
	return "t." + info.DateColumn + ", t.duration_minutes"
}

// titleSelect builds the enriched select: one row per title with its genre
// names aggregated. Table names come from the kind descriptor, never from
// user input.
func titleSelect(info model.KindInfo, where, tail string) string {
	return fmt.Sprintf(`
		SELECT t.id, t.title, t.description, t.rating, t.poster_url, %s,
		       COALESCE(array_agg(g.name ORDER BY g.name) FILTER (WHERE g.name IS NOT NULL), '{}')
		FROM %s t
		LEFT JOIN %s a ON a.%s = t.id
		LEFT JOIN genres g ON g.id = a.genre_id
		%s
		GROUP BY t.id
		%s`,
		dateCols(info), info.TitleTable, info.GenreTable, info.TitleFK, where, tail)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTitle(kind model.Kind, row rowScanner) (model.Title, error) {
	t := model.Title{Kind: kind, Genres: []string{}}
	var rating pgtype.Float8
	var genres []string
	var err error
	if kind == model.KindTVShow {
		var start, finish pgtype.Date
		err = row.Scan(&t.ID, &t.Name, &t.Description, &rating, &t.PosterURL, &start, &finish, &genres)
		t.StartDate = datePtr(start)
		t.FinishDate = datePtr(finish)
	} else {
		var release pgtype.Date
		var duration pgtype.Int4
		err = row.Scan(&t.ID, &t.Name, &t.Description, &rating, &t.PosterURL, &release, &duration, &genres)
		t.ReleaseDate = datePtr(release)
		t.DurationMinutes = int4Ptr(duration)
	}
	if err != nil {
		return model.Title{}, err
	}
	t.Rating = float8Ptr(rating)
	if genres != nil {
		t.Genres = genres
	}
	return t, nil
}

// GetByName fetches one title with its genres. Title names are unique per
// kind collection.
func (r *TitlesRepo) GetByName(ctx context.Context, kind model.Kind, name string) (model.Title, error) {
	info := kind.Info()
	row := r.db.QueryRow(ctx, titleSelect(info, "WHERE t.title = $1", ""), name)
	t, err := scanTitle(kind, row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Title{}, ErrTitleNotFound
	}
	return t, err
}

// Exists reports whether a title id resolves to a stored title of this kind.
func (r *TitlesRepo) Exists(ctx context.Context, kind model.Kind, id int64) (bool, error) {
	info := kind.Info()
	var ok bool
	q := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)", info.TitleTable)
	err := r.db.QueryRow(ctx, q, id).Scan(&ok)
	return ok, err
}

// ListAll returns every title of the kind, genres included, for the browse
// pipeline.
func (r *TitlesRepo) ListAll(ctx context.Context, kind model.Kind) ([]model.Title, error) {
	info := kind.Info()
	rows, err := r.db.Query(ctx, titleSelect(info, "", ""))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Title
	for rows.Next() {
		t, err := scanTitle(kind, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetByIDs returns the titles for the given ids keyed by id, for the
// watchlist join stage. Missing ids are simply absent from the map.
func (r *TitlesRepo) GetByIDs(ctx context.Context, kind model.Kind, ids []int64) (map[int64]model.Title, error) {
	out := make(map[int64]model.Title, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	info := kind.Info()
	rows, err := r.db.Query(ctx, titleSelect(info, "WHERE t.id = ANY($1)", ""), ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		t, err := scanTitle(kind, rows)
		if err != nil {
			return nil, err
		}
		out[t.ID] = t
	}
	return out, rows.Err()
}

// QuickSearch returns up to limit titles whose name contains term, ordered
// by name. Used by the cross-kind search box.
func (r *TitlesRepo) QuickSearch(ctx context.Context, kind model.Kind, term string, limit int32) ([]model.Title, error) {
	info := kind.Info()
	q := fmt.Sprintf("SELECT id, title, poster_url FROM %s WHERE title ILIKE '%%' || $1 || '%%' ORDER BY lower(title), id LIMIT $2", info.TitleTable)
	rows, err := r.db.Query(ctx, q, term, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Title
	for rows.Next() {
		t := model.Title{Kind: kind, Genres: []string{}}
		if err := rows.Scan(&t.ID, &t.Name, &t.PosterURL); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create inserts a new title. The aggregate rating always starts NULL; only
// the rating recalculation writes it.
func (r *TitlesRepo) Create(ctx context.Context, t model.Title) (int64, error) {
	info := t.Kind.Info()
	var q string
	var args []any
	if t.Kind == model.KindTVShow {
		q = fmt.Sprintf(`INSERT INTO %s (title, description, poster_url, start_date, finish_date)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`, info.TitleTable)
		args = []any{t.Name, t.Description, t.PosterURL, dateVal(t.StartDate), dateVal(t.FinishDate)}
	} else {
		q = fmt.Sprintf(`INSERT INTO %s (title, description, poster_url, release_date, duration_minutes)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`, info.TitleTable)
		args = []any{t.Name, t.Description, t.PosterURL, dateVal(t.ReleaseDate), int4Val(t.DurationMinutes)}
	}
	var id int64
	if err := r.db.QueryRow(ctx, q, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateTitle
		}
		return 0, err
	}
	return id, nil
}

// Update rewrites the descriptive fields of an existing title. The derived
// rating column is deliberately left untouched.
func (r *TitlesRepo) Update(ctx context.Context, t model.Title) error {
	info := t.Kind.Info()
	var q string
	var args []any
	if t.Kind == model.KindTVShow {
		q = fmt.Sprintf(`UPDATE %s SET title = $1, description = $2, poster_url = $3,
			start_date = $4, finish_date = $5 WHERE id = $6`, info.TitleTable)
		args = []any{t.Name, t.Description, t.PosterURL, dateVal(t.StartDate), dateVal(t.FinishDate), t.ID}
	} else {
		q = fmt.Sprintf(`UPDATE %s SET title = $1, description = $2, poster_url = $3,
			release_date = $4, duration_minutes = $5 WHERE id = $6`, info.TitleTable)
		args = []any{t.Name, t.Description, t.PosterURL, dateVal(t.ReleaseDate), int4Val(t.DurationMinutes), t.ID}
	}
	ct, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateTitle
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrTitleNotFound
	}
	return nil
}

// Delete removes a title; genre associations and watchlist entries cascade.
func (r *TitlesRepo) Delete(ctx context.Context, kind model.Kind, id int64) error {
	info := kind.Info()
	ct, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", info.TitleTable), id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrTitleNotFound
	}
	return nil
}

// HasTitles reports whether any title of the kind exists (seed guard).
func (r *TitlesRepo) HasTitles(ctx context.Context, kind model.Kind) (bool, error) {
	info := kind.Info()
	var ok bool
	err := r.db.QueryRow(ctx, fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s)", info.TitleTable)).Scan(&ok)
	return ok, err
}

// ImportMovies inserts discovered TMDb movies that are not yet in the
// catalog, keyed by title. Returns the number inserted.
func (r *TitlesRepo) ImportMovies(ctx context.Context, movies []tmdb.Movie) (int, error) {
	count := 0
	for _, m := range movies {
		ct, err := r.db.Exec(ctx, `
			INSERT INTO movies (title, description, poster_url, release_date)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (title) DO NOTHING`,
			m.Title, m.Overview, m.PosterPath, pgtype.Date{Time: m.ReleaseDate, Valid: true})
		if err != nil {
			return count, err
		}
		count += int(ct.RowsAffected())
	}
	return count, nil
}
