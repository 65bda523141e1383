package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/AdamicaAlexander/Cinemite/internal/config"
	"github.com/AdamicaAlexander/Cinemite/internal/jobs"
	"github.com/AdamicaAlexander/Cinemite/internal/migrate"
	"github.com/AdamicaAlexander/Cinemite/internal/repos"
	"github.com/AdamicaAlexander/Cinemite/internal/server"
	"github.com/AdamicaAlexander/Cinemite/pkg/auth"
	"github.com/AdamicaAlexander/Cinemite/pkg/cache"
	pkgdb "github.com/AdamicaAlexander/Cinemite/pkg/db"
	"github.com/AdamicaAlexander/Cinemite/pkg/tmdb"
)

func main() {
	_ = godotenv.Load() // best-effort
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pkgdb.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer pool.Close()

	if err := migrate.Up(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	var c cache.Cache
	if addr := cfg.ValkeyAddr; addr != "" {
		vc, err := cache.NewValkey(addr, cfg.ValkeyPassword)
		if err != nil {
			log.Error().Err(err).Msg("valkey connect failed, using in-memory cache")
			c = cache.NewInMemory()
		} else {
			c = vc
		}
	} else {
		c = cache.NewInMemory()
	}

	repository := repos.New(pool)
	tokens := auth.NewManager(cfg.JWTSecret, 0)
	api := server.New(repository, c, tokens, "cinemite-api", cfg.CORSAllowedOrigins)

	if err := jobs.SeedGenres(ctx, repository); err != nil {
		log.Fatal().Err(err).Msg("genre seed failed")
	}
	if err := jobs.SeedAdmin(ctx, repository, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	// Seed movies once if the catalog is empty (useful for testing/dev)
	var tmdbClient *tmdb.Client
	if cfg.TMDBAPIKey != "" {
		tmdbClient = tmdb.New(cfg.TMDBAPIKey)
	}
	if err := jobs.SeedTMDBIfEmpty(ctx, repository, tmdbClient, cfg.TMDBLanguage); err != nil {
		log.Error().Err(err).Msg("seed from TMDb failed")
	}

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := server.StartHTTP(ctx, addr, api.Router()); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	_, _ = fmt.Fprintln(os.Stderr, "shutting down...")
	time.Sleep(200 * time.Millisecond)
}
