package routes

import (
	"net/http"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
	pkghttpx "github.com/AdamicaAlexander/Cinemite/pkg/httpx"
)

// Profile handles GET /profiles/{username}. Profiles are public; the stats
// block carries per-kind list sizes and the user's own average rating.
func Profile(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		username := r.PathValue("username")
		user, err := d.Repo.GetUserByUsername(ctx, username)
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to load profile"))
			return
		}
		stats := make(map[string]model.WatchlistStats, 2)
		for _, kind := range []model.Kind{model.KindMovie, model.KindTVShow} {
			s, err := d.Repo.WatchlistStats(ctx, kind, user.ID)
			if err != nil {
				pkghttpx.WriteError(w, r, storeError(err, "failed to load profile stats"))
				return
			}
			stats[string(kind)] = s
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"username":          user.Username,
			"profilePictureUrl": user.ProfilePictureURL,
			"description":       user.Description,
			"created_at":        user.CreatedAt,
			"stats":             stats,
		})
	}
}
