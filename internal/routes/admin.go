package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
	pkghttpx "github.com/AdamicaAlexander/Cinemite/pkg/httpx"
)

const maxTitleNameLen = 255

// titleReq is the admin create/update payload. Poster stays a reference
// string; the upload flow lives outside this API. The date pair is
// interpreted per kind: release date + duration for movies, start + finish
// date for TV shows.
type titleReq struct {
	TitleName       string   `json:"titleName"`
	Description     string   `json:"description"`
	PosterURL       string   `json:"poster_url"`
	ReleaseDate     *string  `json:"release_date"`
	DurationMinutes *int     `json:"duration_minutes"`
	StartDate       *string  `json:"start_date"`
	FinishDate      *string  `json:"finish_date"`
	Genres          []string `json:"genres"`
}

func parseDate(s *string) (*time.Time, *pkghttpx.HTTPError) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, pkghttpx.BadRequest("invalid date, expected YYYY-MM-DD", err)
	}
	return &t, nil
}

func (req titleReq) toTitle(kind model.Kind) (model.Title, *pkghttpx.HTTPError) {
	t := model.Title{
		Kind:        kind,
		Name:        req.TitleName,
		Description: req.Description,
		PosterURL:   req.PosterURL,
	}
	if t.Name == "" {
		return t, pkghttpx.BadRequest("titleName is required", nil)
	}
	if len(t.Name) > maxTitleNameLen {
		return t, pkghttpx.BadRequest("titleName too long", nil)
	}
	var he *pkghttpx.HTTPError
	if kind == model.KindTVShow {
		if t.StartDate, he = parseDate(req.StartDate); he != nil {
			return t, he
		}
		if t.FinishDate, he = parseDate(req.FinishDate); he != nil {
			return t, he
		}
	} else {
		if t.ReleaseDate, he = parseDate(req.ReleaseDate); he != nil {
			return t, he
		}
		t.DurationMinutes = req.DurationMinutes
	}
	return t, nil
}

// AdminTitleGet handles GET /admin/titles/{kind}/{titleName}.
func AdminTitleGet(d Deps) http.HandlerFunc {
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

// AdminTitleCreate handles POST /admin/titles/{kind}. The genre list, when
// present, becomes the title's association set.
func AdminTitleCreate(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, he := kindParam(r, "kind")
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		var req titleReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		title, he := req.toTitle(kind)
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		id, err := d.Repo.CreateTitle(ctx, title)
		if err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to create title"))
			return
		}
		if len(req.Genres) > 0 {
			if err := d.Repo.SetTitleGenres(ctx, kind, id, req.Genres); err != nil {
				pkghttpx.WriteError(w, r, storeError(err, "failed to set title genres"))
				return
			}
		}
		_ = d.Cache.DeletePrefix(ctx, browseCachePrefix(kind))
		pkghttpx.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": "Title added successfully",
			"title":   title.Name,
			"_id":     id,
		})
	}
}

// AdminTitleUpdate handles PUT /admin/titles/{kind}/{titleName}. A genres
// key in the body replaces the association set wholesale.
func AdminTitleUpdate(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, he := kindParam(r, "kind")
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		existing, he := resolveTitle(d, r, kind)
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		var req titleReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if req.TitleName == "" {
			req.TitleName = existing.Name
		}
		title, he := req.toTitle(kind)
		if he != nil {
			pkghttpx.WriteError(w, r, he)
			return
		}
		title.ID = existing.ID
		if title.PosterURL == "" {
			title.PosterURL = existing.PosterURL
		}
		if err := d.Repo.UpdateTitle(ctx, title); err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to update title"))
			return
		}
		if req.Genres != nil {
			if err := d.Repo.SetTitleGenres(ctx, kind, existing.ID, req.Genres); err != nil {
				pkghttpx.WriteError(w, r, storeError(err, "failed to set title genres"))
				return
			}
		}
		_ = d.Cache.DeletePrefix(ctx, browseCachePrefix(kind))
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "Title updated successfully",
			"title":   title.Name,
			"_id":     existing.ID,
		})
	}
}

// AdminTitleDelete handles DELETE /admin/titles/{kind}/{titleName}. Genre
// associations and watchlist entries referencing the title go with it.
func AdminTitleDelete(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
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
		if err := d.Repo.DeleteTitle(ctx, kind, title.ID); err != nil {
			pkghttpx.WriteError(w, r, storeError(err, "failed to delete title"))
			return
		}
		_ = d.Cache.DeletePrefix(ctx, browseCachePrefix(kind))
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"message": "Title deleted successfully"})
	}
}
