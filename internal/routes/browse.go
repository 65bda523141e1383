package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
	pkghttpx "github.com/AdamicaAlexander/Cinemite/pkg/httpx"
)

func browseCachePrefix(kind model.Kind) string {
	return "browse:" + string(kind) + ":"
}

type quickMatch struct {
	ID        int64  `json:"_id"`
	Title     string `json:"title"`
	PosterURL string `json:"poster_url"`
}

// QuickSearch handles GET /browse?term=, the search-box endpoint returning
// the top title matches of both kinds.
func QuickSearch(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		term := r.URL.Query().Get("term")
		if term == "" {
			pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
				"movies":  []quickMatch{},
				"tvshows": []quickMatch{},
			})
			return
		}
		movies, err := d.Repo.QuickSearchTitles(ctx, model.KindMovie, term, 10)
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "search failed"))
			return
		}
		tvshows, err := d.Repo.QuickSearchTitles(ctx, model.KindTVShow, term, 10)
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "search failed"))
			return
		}
		toMatches := func(ts []model.Title) []quickMatch {
			out := make([]quickMatch, 0, len(ts))
			for _, t := range ts {
				out = append(out, quickMatch{ID: t.ID, Title: t.Name, PosterURL: t.PosterURL})
			}
			return out
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"movies":  toMatches(movies),
			"tvshows": toMatches(tvshows),
		})
	}
}

// Browse handles GET /browse/{kind}: the catalog-wide listing with the same
// filter/sort/pagination surface as the watchlist, minus the per-user join.
// Pages are cached per query and invalidated by catalog and rating writes.
func Browse(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, he := kindParam(r, "kind")
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		f, sortKey, page, limit, he := listParams(r)
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		// Status is a watchlist attribute; the catalog has none.
		f.Status = ""
		cacheKey := browseCachePrefix(kind) + r.URL.RawQuery
		if cached, ok := d.Cache.Get(ctx, cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
		rows, err := d.Repo.BrowseCatalog(ctx, kind, f, sortKey, page, limit)
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to browse catalog"))
			return
		}
		b, _ := json.Marshal(toListRows(kind, rows))
		_ = d.Cache.Set(ctx, cacheKey, string(b), 2*time.Minute)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}
