package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AdamicaAlexander/Cinemite/pkg/auth"
	pkghttpx "github.com/AdamicaAlexander/Cinemite/pkg/httpx"
)

const (
	maxUsernameLen = 50
	maxEmailLen    = 100
)

type userResp struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Register handles POST /auth/registration.
func Register(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type registerReq struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		var req registerReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)
		if req.Username == "" || req.Email == "" || req.Password == "" {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("username, email and password are required", nil))
			return
		}
		if len(req.Username) > maxUsernameLen || len(req.Email) > maxEmailLen {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("username or email too long", nil))
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to hash password", err))
			return
		}
		u, err := d.Repo.CreateUser(r.Context(), req.Username, req.Email, hash, "user")
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "registration failed"))
			return
		}
		token, err := d.Auth.IssueToken(u.ID)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to issue token", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": "User registered successfully",
			"token":   token,
			"user":    userResp{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role},
		})
	}
}

// Login handles POST /auth/login.
func Login(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type loginReq struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		u, err := d.Repo.GetUserByEmail(r.Context(), req.Email)
		if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
			// Same response for unknown email and bad password.
			pkghttpx.WriteError(w, r, pkghttpx.Unauthorized("invalid credentials", nil))
			return
		}
		token, err := d.Auth.IssueToken(u.ID)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to issue token", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"token":   token,
			"user":    userResp{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role},
		})
	}
}
