package jobs

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
	"github.com/AdamicaAlexander/Cinemite/internal/repos"
	"github.com/AdamicaAlexander/Cinemite/pkg/auth"

	pkgtmdb "github.com/AdamicaAlexander/Cinemite/pkg/tmdb"
)

// baseGenres is the fixed vocabulary titles can be tagged with.
var baseGenres = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime", "Documentary",
	"Drama", "Family", "Fantasy", "History", "Horror", "Music", "Mystery",
	"Romance", "Science Fiction", "Thriller", "War", "Western", "Reality",
	"Short",
}

// SeedGenres makes sure every base genre row exists. Safe to run on every
// startup.
func SeedGenres(ctx context.Context, r *repos.Repository) error {
	for _, name := range baseGenres {
		if _, err := r.UpsertGenre(ctx, name); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(baseGenres)).Msg("genre vocabulary ensured")
	return nil
}

// SeedAdmin creates the bootstrap admin account from configuration if it
// does not exist yet. No-op when credentials are not configured.
func SeedAdmin(ctx context.Context, r *repos.Repository, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		log.Warn().Msg("admin credentials not configured; skipping admin bootstrap")
		return nil
	}
	if _, err := r.GetUserByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, repos.ErrUserNotFound) {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := r.CreateUser(ctx, username, email, hash, model.RoleAdmin); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("admin account created")
	return nil
}

// SeedTMDBIfEmpty populates the movie catalog from TMDb's popular listings
// if the table is empty. Intended for testing/dev convenience; no-op if
// client is nil or movies already exist.
func SeedTMDBIfEmpty(ctx context.Context, r *repos.Repository, c *pkgtmdb.Client, language string) error {
	if c == nil {
		return nil
	}
	has, err := r.HasTitles(ctx, model.KindMovie)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	movies, err := c.DiscoverPopular(language, 5)
	if err != nil {
		return err
	}
	n, err := r.ImportMovies(ctx, movies)
	if err != nil {
		return err
	}
	log.Info().Int("count", n).Msg("seeded movies from TMDb as catalog was empty")
	return nil
}
