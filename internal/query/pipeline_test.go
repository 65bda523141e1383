package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
	"github.com/AdamicaAlexander/Cinemite/internal/query"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }
func dp(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func names(rows []query.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.TitleName)
	}
	return out
}

func sampleTitles() map[int64]model.Title {
	return map[int64]model.Title{
		1: {ID: 1, Kind: model.KindMovie, Name: "Arrival", Rating: fp(7.9), ReleaseDate: dp(2016, time.November, 11), Genres: []string{"Science Fiction", "Drama"}},
		2: {ID: 2, Kind: model.KindMovie, Name: "Blade Runner 2049", Rating: fp(8.1), ReleaseDate: dp(2017, time.October, 6), Genres: []string{"Science Fiction"}},
		3: {ID: 3, Kind: model.KindMovie, Name: "Coherence", Rating: nil, ReleaseDate: dp(2013, time.August, 16), Genres: []string{"Thriller"}},
		4: {ID: 4, Kind: model.KindMovie, Name: "Dune", Rating: fp(8.1), ReleaseDate: nil, Genres: []string{"Science Fiction", "Adventure"}},
	}
}

func sampleEntries() []model.WatchlistEntry {
	return []model.WatchlistEntry{
		{TitleID: 1, Status: model.StatusCompleted, Rating: ip(8)},
		{TitleID: 2, Status: model.StatusPlanning},
		{TitleID: 3, Status: model.StatusCompleted, Rating: ip(6)},
		{TitleID: 4, Status: model.StatusDropped},
	}
}

func TestJoinDropsEntriesWithMissingTitle(t *testing.T) {
	entries := append(sampleEntries(), model.WatchlistEntry{TitleID: 99, Status: model.StatusPlanning})
	rows := query.Join(entries, sampleTitles())
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.NotEqual(t, int64(99), r.TitleID)
	}
}

func TestJoinCarriesEntryFields(t *testing.T) {
	rows := query.Join(sampleEntries(), sampleTitles())
	require.Len(t, rows, 4)
	byID := map[int64]query.Row{}
	for _, r := range rows {
		byID[r.TitleID] = r
	}
	assert.Equal(t, model.StatusCompleted, byID[1].Status)
	require.NotNil(t, byID[1].MyRating)
	assert.Equal(t, 8, *byID[1].MyRating)
	assert.Nil(t, byID[2].MyRating)
	require.NotNil(t, byID[1].Rating)
	assert.Equal(t, 7.9, *byID[1].Rating)
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	rows := query.Join(sampleEntries(), sampleTitles())
	got := query.Filter(rows, query.Filters{Search: "blade"})
	require.Len(t, got, 1)
	assert.Equal(t, "Blade Runner 2049", got[0].TitleName)

	got = query.Filter(rows, query.Filters{Search: "RUNNER"})
	require.Len(t, got, 1)
	assert.Equal(t, "Blade Runner 2049", got[0].TitleName)
}

func TestFilterGenreExact(t *testing.T) {
	rows := query.Join(sampleEntries(), sampleTitles())
	got := query.Filter(rows, query.Filters{Genre: "Science Fiction"})
	assert.ElementsMatch(t, []string{"Arrival", "Blade Runner 2049", "Dune"}, names(got))

	// Substring of a genre name must not match.
	got = query.Filter(rows, query.Filters{Genre: "Science"})
	assert.Empty(t, got)
}

func TestFilterYearWindow(t *testing.T) {
	rows := query.Join(sampleEntries(), sampleTitles())
	got := query.Filter(rows, query.Filters{Year: 2016})
	require.Len(t, got, 1)
	assert.Equal(t, "Arrival", got[0].TitleName)

	// Rows without a date never match a year filter.
	got = query.Filter(rows, query.Filters{Year: 2021})
	assert.Empty(t, got)
}

func TestFilterStatus(t *testing.T) {
	rows := query.Join(sampleEntries(), sampleTitles())
	got := query.Filter(rows, query.Filters{Status: model.StatusCompleted})
	assert.ElementsMatch(t, []string{"Arrival", "Coherence"}, names(got))
}

func TestFilterConjunction(t *testing.T) {
	rows := query.Join(sampleEntries(), sampleTitles())
	got := query.Filter(rows, query.Filters{
		Search: "a",
		Genre:  "Science Fiction",
		Status: model.StatusCompleted,
	})
	require.Len(t, got, 1)
	assert.Equal(t, "Arrival", got[0].TitleName)
}

func TestSortTitleAscDefault(t *testing.T) {
	rows := query.Join(sampleEntries(), sampleTitles())
	query.ParseSort("").Apply(rows)
	assert.Equal(t, []string{"Arrival", "Blade Runner 2049", "Coherence", "Dune"}, names(rows))
}

func TestSortTitleCaseInsensitive(t *testing.T) {
	rows := []query.Row{
		{TitleID: 1, TitleName: "zodiac"},
		{TitleID: 2, TitleName: "Alien"},
		{TitleID: 3, TitleName: "avatar"},
	}
	query.SortTitleAsc.Apply(rows)
	assert.Equal(t, []string{"Alien", "avatar", "zodiac"}, names(rows))
}

func TestSortTitleDesc(t *testing.T) {
	rows := query.Join(sampleEntries(), sampleTitles())
	query.SortTitleDesc.Apply(rows)
	assert.Equal(t, []string{"Dune", "Coherence", "Blade Runner 2049", "Arrival"}, names(rows))
}

func TestSortRatingDescNullsLast(t *testing.T) {
	rows := query.Join(sampleEntries(), sampleTitles())
	query.SortRatingDesc.Apply(rows)
	// Equal ratings fall back to title order; unrated rows come last.
	assert.Equal(t, []string{"Blade Runner 2049", "Dune", "Arrival", "Coherence"}, names(rows))
}

func TestSortLatestFirstNullsLast(t *testing.T) {
	rows := query.Join(sampleEntries(), sampleTitles())
	query.SortLatestFirst.Apply(rows)
	assert.Equal(t, []string{"Blade Runner 2049", "Arrival", "Coherence", "Dune"}, names(rows))
}

func TestPaginateDisjointContiguous(t *testing.T) {
	rows := make([]query.Row, 0, 45)
	for i := 1; i <= 45; i++ {
		rows = append(rows, query.Row{TitleID: int64(i)})
	}
	p1 := query.Paginate(rows, 1, 20)
	p2 := query.Paginate(rows, 2, 20)
	p3 := query.Paginate(rows, 3, 20)
	require.Len(t, p1, 20)
	require.Len(t, p2, 20)
	require.Len(t, p3, 5)
	assert.Equal(t, int64(1), p1[0].TitleID)
	assert.Equal(t, int64(21), p2[0].TitleID)
	assert.Equal(t, int64(41), p3[0].TitleID)
	assert.Equal(t, int64(45), p3[4].TitleID)
}

func TestPaginatePastEndIsEmpty(t *testing.T) {
	rows := []query.Row{{TitleID: 1}, {TitleID: 2}}
	got := query.Paginate(rows, 5, 20)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPaginateDefaults(t *testing.T) {
	rows := make([]query.Row, 30)
	assert.Len(t, query.Paginate(rows, 0, 0), query.DefaultPageSize)
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, query.SortTitleAsc, query.ParseSort(""))
	assert.Equal(t, query.SortTitleAsc, query.ParseSort("bogus"))
	assert.Equal(t, query.SortTitleDesc, query.ParseSort("Z-A"))
	assert.Equal(t, query.SortRatingDesc, query.ParseSort("Rating"))
	assert.Equal(t, query.SortLatestFirst, query.ParseSort("Latest"))
}

func TestRunFullPipeline(t *testing.T) {
	got := query.Run(sampleEntries(), sampleTitles(),
		query.Filters{Genre: "Science Fiction"}, query.SortRatingDesc, 1, 2)
	assert.Equal(t, []string{"Blade Runner 2049", "Dune"}, names(got))

	got = query.Run(sampleEntries(), sampleTitles(),
		query.Filters{Genre: "Science Fiction"}, query.SortRatingDesc, 2, 2)
	assert.Equal(t, []string{"Arrival"}, names(got))
}

func TestRunBrowseHasNoEntryFields(t *testing.T) {
	titles := []model.Title{
		{ID: 1, Name: "Arrival", Rating: fp(7.9)},
		{ID: 2, Name: "Dune"},
	}
	got := query.RunBrowse(titles, query.Filters{}, query.SortTitleAsc, 1, 20)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Empty(t, r.Status)
		assert.Nil(t, r.MyRating)
	}
}
