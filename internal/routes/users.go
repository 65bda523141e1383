package routes

import (
	"encoding/json"
	"net/http"

	pkghttpx "github.com/AdamicaAlexander/Cinemite/pkg/httpx"
	"github.com/AdamicaAlexander/Cinemite/pkg/requestctx"
)

const maxDescriptionLen = 500

// Me handles GET /users/me.
func Me(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user, err := d.Repo.GetUserByID(ctx, requestctx.UserID(ctx))
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to load account"))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, user)
	}
}

// UpdateDescription handles PUT /users/me/description.
func UpdateDescription(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req struct {
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if len(req.Description) > maxDescriptionLen {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("description too long", nil))
			return
		}
		if err := d.Repo.UpdateUserDescription(ctx, requestctx.UserID(ctx), req.Description); err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to update description"))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"message": "Description updated successfully"})
	}
}

// DeleteAccount handles DELETE /users/me. Watchlist entries go with the
// account; title aggregates are left to drift until their next write.
func DeleteAccount(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := requestctx.UserID(ctx)
		if err := d.Repo.DeleteUser(ctx, userID); err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to delete account"))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"message": "Account deleted successfully"})
	}
}
