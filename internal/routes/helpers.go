package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
	"github.com/AdamicaAlexander/Cinemite/internal/query"
	"github.com/AdamicaAlexander/Cinemite/internal/repos"
	pkghttpx "github.com/AdamicaAlexander/Cinemite/pkg/httpx"
)

// kindParam parses the {kind} or {kinds} path segment.
func kindParam(r *http.Request, name string) (model.Kind, *pkghttpx.HTTPError) {
	kind, err := model.ParseKind(r.PathValue(name))
	if err != nil {
		return "", pkghttpx.BadRequest(err.Error(), nil)
	}
	return kind, nil
}

// storeError maps repository sentinel errors onto the API taxonomy; anything
// unrecognized is an internal failure whose detail stays out of the response.
func storeError(err error, internalMsg string) *pkghttpx.HTTPError {
	switch {
	case errors.Is(err, repos.ErrTitleNotFound),
		errors.Is(err, repos.ErrEntryNotFound),
		errors.Is(err, repos.ErrUserNotFound),
		errors.Is(err, repos.ErrGenreNotFound):
		return pkghttpx.NotFound(err.Error(), err)
	case errors.Is(err, repos.ErrDuplicateTitle),
		errors.Is(err, repos.ErrDuplicateUser):
		return pkghttpx.Conflict(err.Error(), err)
	}
	return pkghttpx.Internal(internalMsg, err)
}

// listParams extracts the shared browse/watchlist list query: filters, sort
// and pagination. limit is clamped to 1..100 and defaults to the page size
// the infinite-scroll clients expect.
func listParams(r *http.Request) (query.Filters, query.Sort, int, int, *pkghttpx.HTTPError) {
	q := r.URL.Query()
	f := query.Filters{
		Search: q.Get("search"),
		Genre:  q.Get("genre"),
		Status: q.Get("status"),
	}
	if y := q.Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return query.Filters{}, "", 0, 0, pkghttpx.BadRequest("invalid year", err)
		}
		f.Year = year
	}
	page := 1
	if p := q.Get("page"); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil || v < 1 {
			return query.Filters{}, "", 0, 0, pkghttpx.BadRequest("invalid page", err)
		}
		page = v
	}
	limit := query.DefaultPageSize
	if l := q.Get("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v < 1 || v > 100 {
			return query.Filters{}, "", 0, 0, pkghttpx.BadRequest("invalid limit", err)
		}
		limit = v
	}
	return f, query.ParseSort(q.Get("sort")), page, limit, nil
}

// listRow is the JSON shape of one enriched list result.
type listRow struct {
	ID        int64    `json:"_id"`
	TitleName string   `json:"titleName"`
	PosterURL string   `json:"poster_url"`
	Rating    *float64 `json:"rating"`
	Genres    []string `json:"genres"`

	MyRating *int    `json:"myRating,omitempty"`
	Status   string  `json:"status,omitempty"`
	Date     *string `json:"release_date,omitempty"`
	StartDt  *string `json:"start_date,omitempty"`
}

func toListRows(kind model.Kind, rows []query.Row) []listRow {
	out := make([]listRow, 0, len(rows))
	for _, r := range rows {
		lr := listRow{
			ID:        r.TitleID,
			TitleName: r.TitleName,
			PosterURL: r.PosterURL,
			Rating:    r.Rating,
			Genres:    r.Genres,
			MyRating:  r.MyRating,
			Status:    r.Status,
		}
		if lr.Genres == nil {
			lr.Genres = []string{}
		}
		if r.Date != nil {
			d := r.Date.Format("2006-01-02")
			if kind == model.KindTVShow {
				lr.StartDt = &d
			} else {
				lr.Date = &d
			}
		}
		out = append(out, lr)
	}
	return out
}
