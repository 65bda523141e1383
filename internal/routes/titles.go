package routes

import (
	"net/http"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
	pkghttpx "github.com/AdamicaAlexander/Cinemite/pkg/httpx"
)

// TitleDetail handles GET /titles/{kind}/{titleName}: the full public record
// for one title, genres included.
func TitleDetail(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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
		pkghttpx.WriteJSON(w, http.StatusOK, title)
	}
}

// GenresList handles GET /genres.
func GenresList(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		genres, err := d.Repo.ListGenres(r.Context())
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to list genres"))
			return
		}
		if genres == nil {
			genres = []model.Genre{}
		}
		pkghttpx.WriteJSON(w, http.StatusOK, genres)
	}
}

// TitleGenres handles GET /genres/{kind}/{titleName}: the genre names
// associated with one title.
func TitleGenres(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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
		names, err := d.Repo.GenreNamesByTitle(r.Context(), kind, title.ID)
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to list title genres"))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, names)
	}
}
