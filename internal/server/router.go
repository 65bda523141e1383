package server

import (
	"net/http"
	"time"

	"github.com/AdamicaAlexander/Cinemite/internal/routes"
	"github.com/AdamicaAlexander/Cinemite/pkg/auth"
	"github.com/AdamicaAlexander/Cinemite/pkg/cache"
)

type Server struct {
	routes.Deps
	allowedOrigins []string
}

func New(r routes.Store, c cache.Cache, a *auth.Manager, name string, allowedOrigins []string) *Server {
	return &Server{
		Deps: routes.Deps{
			Repo:      r,
			Cache:     c,
			Auth:      a,
			Name:      name,
			StartedAt: time.Now(),
		},
		allowedOrigins: allowedOrigins,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	d := s.Deps

	// Endpoints declared here for easy scanning
	mux.HandleFunc("GET /health", routes.Health(d))

	mux.HandleFunc("POST /auth/registration", routes.Register(d))
	mux.HandleFunc("POST /auth/login", routes.Login(d))

	mux.HandleFunc("GET /browse", routes.QuickSearch(d))
	mux.HandleFunc("GET /browse/{kind}", routes.Browse(d))
	mux.HandleFunc("GET /titles/{kind}/{titleName}", routes.TitleDetail(d))
	mux.HandleFunc("GET /genres", routes.GenresList(d))
	mux.HandleFunc("GET /genres/{kind}/{titleName}", routes.TitleGenres(d))
	mux.HandleFunc("GET /profiles/{username}", routes.Profile(d))

	authed := func(h http.HandlerFunc) http.Handler { return s.withAuth(h) }
	mux.Handle("GET /watchlist/{kind}", authed(routes.WatchlistList(d)))
	mux.Handle("DELETE /watchlist/{kind}", authed(routes.WatchlistClear(d)))
	mux.Handle("POST /watchlist/{kind}/{titleName}", authed(routes.WatchlistAdd(d)))
	mux.Handle("GET /watchlist/{kind}/{titleName}", authed(routes.WatchlistGet(d)))
	mux.Handle("PUT /watchlist/{kind}/{titleName}", authed(routes.WatchlistUpdate(d)))
	mux.Handle("DELETE /watchlist/{kind}/{titleName}", authed(routes.WatchlistRemove(d)))

	mux.Handle("GET /users/me", authed(routes.Me(d)))
	mux.Handle("PUT /users/me/description", authed(routes.UpdateDescription(d)))
	mux.Handle("DELETE /users/me", authed(routes.DeleteAccount(d)))

	admin := func(h http.HandlerFunc) http.Handler { return s.withAuth(s.withAdmin(h)) }
	mux.Handle("POST /admin/titles/{kind}", admin(routes.AdminTitleCreate(d)))
	mux.Handle("GET /admin/titles/{kind}/{titleName}", admin(routes.AdminTitleGet(d)))
	mux.Handle("PUT /admin/titles/{kind}/{titleName}", admin(routes.AdminTitleUpdate(d)))
	mux.Handle("DELETE /admin/titles/{kind}/{titleName}", admin(routes.AdminTitleDelete(d)))

	var h http.Handler = mux
	h = withSecurityHeaders(h)
	h = withCORS(s.allowedOrigins)(h)
	h = withLogging(h)
	h = withCorrelationID(h)
	return h
}
