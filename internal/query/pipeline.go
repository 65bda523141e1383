// Package query implements the watchlist/browse aggregation pipeline as an
// explicit sequence of pure steps: Join, then Filter, then Sort, then
// Paginate. Each step is side-effect free and operates on plain slices, so
// the stages compose and test independently. The repos layer loads rows from
// the store and feeds them through here.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
)

// Row is one denormalized result row: a title enriched with its genre names
// and, for watchlist queries, the caller's own entry. Browse queries leave
// the entry fields zero.
type Row struct {
	TitleID     int64
	TitleName   string
	PosterURL   string
	Description string
	Rating      *float64 // title aggregate rating
	Date        *time.Time
	Genres      []string

	// Watchlist-only fields.
	Status   string
	MyRating *int
	AddedAt  time.Time
}

// Filters narrows rows after the join; zero values mean "no filter".
type Filters struct {
	Search string // case-insensitive substring of the title name
	Genre  string // exact genre name containment
	Year   int    // kind date field within [year-01-01, year+1-01-01)
	Status string // exact watchlist status
}

// Sort orders supported by watchlist and browse queries.
type Sort string

const (
	SortTitleAsc    Sort = "A-Z"
	SortTitleDesc   Sort = "Z-A"
	SortRatingDesc  Sort = "Rating"
	SortLatestFirst Sort = "Latest"
)

// ParseSort maps a query parameter onto a sort order, defaulting to A-Z.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortTitleDesc, SortRatingDesc, SortLatestFirst:
		return Sort(s)
	}
	return SortTitleAsc
}

// DefaultPageSize matches the page length the infinite-scroll clients expect.
const DefaultPageSize = 20

// Join inner-joins watchlist entries with their titles. Entries whose title
// is missing from the map are dropped rather than failing the whole query;
// referential integrity should prevent that, but a stale cache of entries
// must not crash a listing.
func Join(entries []model.WatchlistEntry, titles map[int64]model.Title) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		t, ok := titles[e.TitleID]
		if !ok {
			continue
		}
		rows = append(rows, Row{
			TitleID:     t.ID,
			TitleName:   t.Name,
			PosterURL:   t.PosterURL,
			Description: t.Description,
			Rating:      t.Rating,
			Date:        t.Date(),
			Genres:      t.Genres,
			Status:      e.Status,
			MyRating:    e.Rating,
			AddedAt:     e.AddedAt,
		})
	}
	return rows
}

// FromTitles lifts plain catalog titles into rows for the browse variant.
func FromTitles(titles []model.Title) []Row {
	rows := make([]Row, 0, len(titles))
	for _, t := range titles {
		rows = append(rows, Row{
			TitleID:     t.ID,
			TitleName:   t.Name,
			PosterURL:   t.PosterURL,
			Description: t.Description,
			Rating:      t.Rating,
			Date:        t.Date(),
			Genres:      t.Genres,
		})
	}
	return rows
}

// Filter keeps rows matching every set filter (conjunction).
func Filter(rows []Row, f Filters) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if matches(r, f) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r Row, f Filters) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(r.TitleName), strings.ToLower(f.Search)) {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Genre != "" && !containsGenre(r.Genres, f.Genre) {
		return false
	}
	if f.Year != 0 {
		if r.Date == nil {
			return false
		}
		start := time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(1, 0, 0)
		if r.Date.Before(start) || !r.Date.Before(end) {
			return false
		}
	}
	return true
}

func containsGenre(genres []string, name string) bool {
	for _, g := range genres {
		if g == name {
			return true
		}
	}
	return false
}

// Apply sorts rows in place. Title orders compare case-insensitively with the
// title id as tiebreak so pagination is deterministic; rating and date orders
// put rows without a value after all rows with one.
func (s Sort) Apply(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return s.less(rows[i], rows[j])
	})
}

func (s Sort) less(a, b Row) bool {
	switch s {
	case SortTitleDesc:
		if c := compareTitles(a, b); c != 0 {
			return c > 0
		}
		return a.TitleID > b.TitleID
	case SortRatingDesc:
		if a.Rating == nil && b.Rating == nil {
			break
		}
		if a.Rating == nil {
			return false
		}
		if b.Rating == nil {
			return true
		}
		if *a.Rating != *b.Rating {
			return *a.Rating > *b.Rating
		}
	case SortLatestFirst:
		if a.Date == nil && b.Date == nil {
			break
		}
		if a.Date == nil {
			return false
		}
		if b.Date == nil {
			return true
		}
		if !a.Date.Equal(*b.Date) {
			return a.Date.After(*b.Date)
		}
	}
	// SortTitleAsc, plus the tiebreak for equal ratings/dates.
	if c := compareTitles(a, b); c != 0 {
		return c < 0
	}
	return a.TitleID < b.TitleID
}

func compareTitles(a, b Row) int {
	return strings.Compare(strings.ToLower(a.TitleName), strings.ToLower(b.TitleName))
}

// Paginate returns the 1-based page of the given size. Pages past the end
// are empty, never an error.
func Paginate(rows []Row, page, pageSize int) []Row {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []Row{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// Run joins entries against titles and applies filter, sort and pagination
// in the fixed order the later stages depend on: genre and year filters need
// the joined fields, and the rating sort needs the title aggregate resolved.
func Run(entries []model.WatchlistEntry, titles map[int64]model.Title, f Filters, s Sort, page, pageSize int) []Row {
	rows := Filter(Join(entries, titles), f)
	s.Apply(rows)
	return Paginate(rows, page, pageSize)
}

// RunBrowse is the catalog-wide variant without the per-user join.
func RunBrowse(titles []model.Title, f Filters, s Sort, page, pageSize int) []Row {
	rows := Filter(FromTitles(titles), f)
	s.Apply(rows)
	return Paginate(rows, page, pageSize)
}
