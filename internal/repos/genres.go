package repos

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
)

type GenresRepo struct {
	db *pgxpool.Pool
}

func (r *GenresRepo) ListGenres(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.db.Query(ctx, "SELECT id, name FROM genres ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Genre
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// UpsertGenre inserts the genre if missing and returns its id either way.
func (r *GenresRepo) UpsertGenre(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO genres (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name).Scan(&id)
	return id, err
}

// NamesByTitle returns the genre names associated with one title.
func (r *GenresRepo) NamesByTitle(ctx context.Context, kind model.Kind, titleID int64) ([]string, error) {
	info := kind.Info()
	q := fmt.Sprintf(`
		SELECT g.name FROM %s a
		JOIN genres g ON g.id = a.genre_id
		WHERE a.%s = $1
		ORDER BY g.name`, info.GenreTable, info.TitleFK)
	rows, err := r.db.Query(ctx, q, titleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// SetTitleGenres replaces a title's genre set wholesale: all existing
// association rows are deleted and one row per named genre recreated.
// Unknown genre names are skipped, matching the catalog-editing workflow.
func (r *GenresRepo) SetTitleGenres(ctx context.Context, kind model.Kind, titleID int64, names []string) error {
	info := kind.Info()
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = $1", info.GenreTable, info.TitleFK), titleID); err != nil {
		return err
	}
	for _, name := range names {
		_, err := tx.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s (%s, genre_id)
			SELECT $1, id FROM genres WHERE name = $2
			ON CONFLICT DO NOTHING`, info.GenreTable, info.TitleFK), titleID, name)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
