package repos

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
)

// RatingsRepo keeps Title.rating consistent with the watchlist ratings
// referencing the title. It is the only writer of that column.
type RatingsRepo struct {
	db        *pgxpool.Pool
	titles    *TitlesRepo
	watchlist *WatchlistRepo
}

// AverageRating computes the aggregate for a set of user ratings: nil when
// the set is empty, else the arithmetic mean rounded half-up to 1 decimal.
func AverageRating(ratings []int) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := roundHalfUp1(float64(sum) / float64(len(ratings)))
	return &avg
}

// roundHalfUp1 rounds to 1 decimal place with ties away from zero upward,
// e.g. 7.25 -> 7.3.
func roundHalfUp1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// Recalculate recomputes the title's aggregate from the non-nil watchlist
// ratings visible at read time and writes it back. The read and the write
// are two statements: two concurrent recalculations of the same title can
// race and the later commit wins, which is accepted for this data. Returns
// the new aggregate (nil when no ratings remain).
func (r *RatingsRepo) Recalculate(ctx context.Context, kind model.Kind, titleID int64) (*float64, error) {
	exists, err := r.titles.Exists(ctx, kind, titleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTitleNotFound
	}
	ratings, err := r.watchlist.RatingsByTitle(ctx, kind, titleID)
	if err != nil {
		return nil, err
	}
	avg := AverageRating(ratings)
	info := kind.Info()
	q := fmt.Sprintf("UPDATE %s SET rating = $1 WHERE id = $2", info.TitleTable)
	if _, err := r.db.Exec(ctx, q, float8Val(avg), titleID); err != nil {
		return nil, err
	}
	return avg, nil
}
