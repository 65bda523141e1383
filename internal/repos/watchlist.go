package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
)

type WatchlistRepo struct {
	db *pgxpool.Pool
}

func scanEntry(row rowScanner) (model.WatchlistEntry, error) {
	var e model.WatchlistEntry
	var rating pgtype.Int4
	if err := row.Scan(&e.UserID, &e.TitleID, &e.Status, &rating, &e.AddedAt); err != nil {
		return model.WatchlistEntry{}, err
	}
	e.Rating = int4Ptr(rating)
	return e, nil
}

// Get fetches the caller's entry for one title.
func (r *WatchlistRepo) Get(ctx context.Context, kind model.Kind, userID, titleID int64) (model.WatchlistEntry, error) {
	info := kind.Info()
	q := fmt.Sprintf("SELECT user_id, %s, status, rating, added_at FROM %s WHERE user_id = $1 AND %s = $2",
		info.TitleFK, info.WatchlistTable, info.TitleFK)
	e, err := scanEntry(r.db.QueryRow(ctx, q, userID, titleID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.WatchlistEntry{}, ErrEntryNotFound
	}
	return e, err
}

// Add creates an entry at status Planning with no rating. Adding a title
// already on the list is not an error: the existing entry is returned
// unchanged and created is false.
func (r *WatchlistRepo) Add(ctx context.Context, kind model.Kind, userID, titleID int64) (model.WatchlistEntry, bool, error) {
	info := kind.Info()
	q := fmt.Sprintf(`
		INSERT INTO %s (user_id, %s, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, %s) DO NOTHING
		RETURNING user_id, %s, status, rating, added_at`,
		info.WatchlistTable, info.TitleFK, info.TitleFK, info.TitleFK)
	e, err := scanEntry(r.db.QueryRow(ctx, q, userID, titleID, model.StatusPlanning))
	if err == nil {
		return e, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.WatchlistEntry{}, false, err
	}
	// Conflict: the entry already exists, report its current state.
	existing, err := r.Get(ctx, kind, userID, titleID)
	return existing, false, err
}

// SetStatus moves an existing entry to a new status. Status validity per
// kind is checked by the caller.
func (r *WatchlistRepo) SetStatus(ctx context.Context, kind model.Kind, userID, titleID int64, status string) error {
	info := kind.Info()
	q := fmt.Sprintf("UPDATE %s SET status = $1 WHERE user_id = $2 AND %s = $3", info.WatchlistTable, info.TitleFK)
	ct, err := r.db.Exec(ctx, q, status, userID, titleID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// SetRating sets or clears (nil) an existing entry's rating. The caller is
// responsible for triggering the rating recalculation afterwards.
func (r *WatchlistRepo) SetRating(ctx context.Context, kind model.Kind, userID, titleID int64, rating *int) error {
	info := kind.Info()
	q := fmt.Sprintf("UPDATE %s SET rating = $1 WHERE user_id = $2 AND %s = $3", info.WatchlistTable, info.TitleFK)
	ct, err := r.db.Exec(ctx, q, int4Val(rating), userID, titleID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Remove deletes the caller's entry for one title.
func (r *WatchlistRepo) Remove(ctx context.Context, kind model.Kind, userID, titleID int64) error {
	info := kind.Info()
	q := fmt.Sprintf("DELETE FROM %s WHERE user_id = $1 AND %s = $2", info.WatchlistTable, info.TitleFK)
	ct, err := r.db.Exec(ctx, q, userID, titleID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Clear removes every entry of the kind for the user and returns how many
// were deleted.
func (r *WatchlistRepo) Clear(ctx context.Context, kind model.Kind, userID int64) (int64, error) {
	info := kind.Info()
	ct, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE user_id = $1", info.WatchlistTable), userID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// ListByUser returns all of the user's entries for the kind, unfiltered; the
// aggregation pipeline does the rest.
func (r *WatchlistRepo) ListByUser(ctx context.Context, kind model.Kind, userID int64) ([]model.WatchlistEntry, error) {
	info := kind.Info()
	q := fmt.Sprintf("SELECT user_id, %s, status, rating, added_at FROM %s WHERE user_id = $1",
		info.TitleFK, info.WatchlistTable)
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.WatchlistEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// RatingsByTitle returns every non-nil rating currently referencing the
// title, across all users. Input to the rating recalculation.
func (r *WatchlistRepo) RatingsByTitle(ctx context.Context, kind model.Kind, titleID int64) ([]int, error) {
	info := kind.Info()
	q := fmt.Sprintf("SELECT rating FROM %s WHERE %s = $1 AND rating IS NOT NULL", info.WatchlistTable, info.TitleFK)
	rows, err := r.db.Query(ctx, q, titleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Stats reports the size of the user's list and the mean of their own
// ratings for the profile page.
func (r *WatchlistRepo) Stats(ctx context.Context, kind model.Kind, userID int64) (model.WatchlistStats, error) {
	info := kind.Info()
	q := fmt.Sprintf("SELECT COUNT(*), AVG(rating) FROM %s WHERE user_id = $1", info.WatchlistTable)
	var s model.WatchlistStats
	var avg pgtype.Float8
	if err := r.db.QueryRow(ctx, q, userID).Scan(&s.Total, &avg); err != nil {
		return model.WatchlistStats{}, err
	}
	s.AvgRating = float8Ptr(avg)
	return s, nil
}
