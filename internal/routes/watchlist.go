package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
	"github.com/AdamicaAlexander/Cinemite/internal/repos"
	pkghttpx "github.com/AdamicaAlexander/Cinemite/pkg/httpx"
	pkgrequestctx "github.com/AdamicaAlexander/Cinemite/pkg/requestctx"
)

// watchlistCachePrefix keys all cached list pages for one user and kind so a
// single mutation can invalidate them together.
func watchlistCachePrefix(userID int64, kind model.Kind) string {
	return "watchlist:" + strconv.FormatInt(userID, 10) + ":" + string(kind) + ":"
}

// resolveTitle takes the {titleName} path segment (the mux already
// unescapes it) and resolves it to a stored title of the kind.
func resolveTitle(d Deps, r *http.Request, kind model.Kind) (model.Title, *pkghttpx.HTTPError) {
	t, err := d.Repo.GetTitleByName(r.Context(), kind, r.PathValue("titleName"))
	if err != nil {
		return model.Title{}, storeError(err, "failed to load title")
	}
	return t, nil
}

// WatchlistAdd handles POST /watchlist/{kind}/{titleName}. Adding a title
// that is already listed succeeds and reports the existing status.
func WatchlistAdd(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := pkgrequestctx.UserID(ctx)
		kind, he := kindParam(r, "kind")
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		title, he := resolveTitle(d, r, kind)
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		entry, created, err := d.Repo.AddToWatchlist(ctx, kind, userID, title.ID)
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to add to watchlist"))
			return
		}
		_ = d.Cache.DeletePrefix(ctx, watchlistCachePrefix(userID, kind))
		if !created {
			pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
				"message": "Title already in watchlist",
				"status":  entry.Status,
			})
			return
		}
		pkghttpx.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": "Title added to watchlist",
			"status":  entry.Status,
		})
	}
}

// WatchlistGet handles GET /watchlist/{kind}/{titleName}; status is null
// when the title is not on the caller's list.
func WatchlistGet(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := pkgrequestctx.UserID(ctx)
		kind, he := kindParam(r, "kind")
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		title, he := resolveTitle(d, r, kind)
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		entry, err := d.Repo.GetWatchlistEntry(ctx, kind, userID, title.ID)
		if errors.Is(err, repos.ErrEntryNotFound) {
			pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"status": nil})
			return
		}
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to load watchlist item"))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"status": entry.Status,
			"rating": entry.Rating,
		})
	}
}

// WatchlistUpdate handles PUT /watchlist/{kind}/{titleName}. Status and
// rating are independently optional; a rating key present in the body (even
// as null) changes the rating and triggers the aggregate recalculation
// after the entry write commits.
func WatchlistUpdate(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Rating is a raw message, not a pointer: decoding JSON null into a
		// *RawMessage leaves the pointer nil, which would be indistinguishable
		// from an absent key. With the non-pointer form nil means absent and
		// the literal "null" bytes mean an explicit clear.
		type updateReq struct {
			Status *string         `json:"status"`
			Rating json.RawMessage `json:"rating"`
		}
		ctx := r.Context()
		userID := pkgrequestctx.UserID(ctx)
		kind, he := kindParam(r, "kind")
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		var req updateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		var rating *int
		ratingPresent := req.Rating != nil
		if ratingPresent && string(req.Rating) != "null" {
			var v int
			if err := json.Unmarshal(req.Rating, &v); err != nil {
				pkghttpx.WriteError(w, r, pkghttpx.BadRequest("rating must be an integer from 1 to 10 or null", err))
				return
			}
			rating = &v
		}
		if !model.ValidRating(rating) {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("rating must be an integer from 1 to 10 or null", nil))
			return
		}
		if req.Status != nil && !kind.ValidStatus(*req.Status) {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid status for "+string(kind), nil))
			return
		}
		title, he := resolveTitle(d, r, kind)
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		if req.Status != nil {
			if err := d.Repo.SetWatchlistStatus(ctx, kind, userID, title.ID, *req.Status); err != nil {
				pkghttpx.WriteError(w, r, storeError(err, "failed to update watchlist item"))
				return
			}
		}
		if ratingPresent {
			if err := d.Repo.SetWatchlistRating(ctx, kind, userID, title.ID, rating); err != nil {
				pkghttpx.WriteError(w, r, storeError(err, "failed to update watchlist item"))
				return
			}
			// The entry write is committed; recompute the title aggregate.
			if _, err := d.Repo.RecalculateRating(ctx, kind, title.ID); err != nil {
				pkghttpx.WriteError(w, r, storeError(err, "failed to recalculate rating"))
				return
			}
			// Other users' cached watchlist pages keep the old aggregate
			// until their TTL expires; only browse pages are dropped here.
			_ = d.Cache.DeletePrefix(ctx, browseCachePrefix(kind))
		}
		_ = d.Cache.DeletePrefix(ctx, watchlistCachePrefix(userID, kind))
		entry, err := d.Repo.GetWatchlistEntry(ctx, kind, userID, title.ID)
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to load watchlist item"))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "Watchlist item updated",
			"status":  entry.Status,
			"rating":  entry.Rating,
		})
	}
}

// WatchlistRemove handles DELETE /watchlist/{kind}/{titleName}. Removing an
// entry discards its rating, so the title aggregate is recomputed.
func WatchlistRemove(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := pkgrequestctx.UserID(ctx)
		kind, he := kindParam(r, "kind")
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		title, he := resolveTitle(d, r, kind)
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		entry, err := d.Repo.GetWatchlistEntry(ctx, kind, userID, title.ID)
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to load watchlist item"))
			return
		}
		if err := d.Repo.RemoveFromWatchlist(ctx, kind, userID, title.ID); err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to remove from watchlist"))
			return
		}
		if entry.Rating != nil {
			if _, err := d.Repo.RecalculateRating(ctx, kind, title.ID); err != nil {
				pkghttpx.WriteError(w, r, storeError(err, "failed to recalculate rating"))
				return
			}
			_ = d.Cache.DeletePrefix(ctx, browseCachePrefix(kind))
		}
		_ = d.Cache.DeletePrefix(ctx, watchlistCachePrefix(userID, kind))
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"message": "Removed from watchlist"})
	}
}

// WatchlistClear handles DELETE /watchlist/{kind}, emptying the caller's
// list for that kind. Aggregates of the affected titles keep their last
// value until the next rating write touches them; clearing is a bulk
// maintenance action, not a rating change.
func WatchlistClear(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := pkgrequestctx.UserID(ctx)
		kind, he := kindParam(r, "kind")
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		n, err := d.Repo.ClearWatchlist(ctx, kind, userID)
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to clear watchlist"))
			return
		}
		_ = d.Cache.DeletePrefix(ctx, watchlistCachePrefix(userID, kind))
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "Watchlist cleared",
			"removed": n,
		})
	}
}

// WatchlistList handles GET /watchlist/{kind} with search, genre, year,
// status, sort and pagination. Responses are cached per user and query and
// dropped on any mutation of that user's list.
func WatchlistList(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := pkgrequestctx.UserID(ctx)
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
		cacheKey := watchlistCachePrefix(userID, kind) + r.URL.RawQuery
		if cached, ok := d.Cache.Get(ctx, cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
		rows, err := d.Repo.QueryWatchlist(ctx, userID, kind, f, sortKey, page, limit)
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to query watchlist"))
			return
		}
		b, _ := json.Marshal(toListRows(kind, rows))
		_ = d.Cache.Set(ctx, cacheKey, string(b), time.Minute)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}
