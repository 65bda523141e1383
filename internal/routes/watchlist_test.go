package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
	"github.com/AdamicaAlexander/Cinemite/internal/repos"
	"github.com/AdamicaAlexander/Cinemite/internal/routes"
	"github.com/AdamicaAlexander/Cinemite/pkg/auth"
	"github.com/AdamicaAlexander/Cinemite/pkg/cache"
	"github.com/AdamicaAlexander/Cinemite/pkg/requestctx"
)

const testUserID int64 = 42

func newDeps(store *MockStore) routes.Deps {
	return routes.Deps{
		Repo:      store,
		Cache:     cache.NewInMemory(),
		Auth:      auth.NewManager([]byte("test-secret"), time.Hour),
		Name:      "cinemite-test",
		StartedAt: time.Now(),
	}
}

// authedRequest builds a request whose context already carries the caller,
// the way the auth middleware would leave it.
func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return r.WithContext(requestctx.WithUser(r.Context(), testUserID, model.RoleUser))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestWatchlistAddNewEntry(t *testing.T) {
	store := new(MockStore)
	store.On("GetTitleByName", model.KindMovie, "Arrival").
		Return(model.Title{ID: 7, Kind: model.KindMovie, Name: "Arrival"}, nil)
	store.On("AddToWatchlist", model.KindMovie, testUserID, int64(7)).
		Return(model.WatchlistEntry{UserID: testUserID, TitleID: 7, Status: model.StatusPlanning}, true, nil)

	r := authedRequest(http.MethodPost, "/watchlist/movie/Arrival", "")
	r.SetPathValue("kind", "movie")
	r.SetPathValue("titleName", "Arrival")
	w := httptest.NewRecorder()
	routes.WatchlistAdd(newDeps(store))(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, model.StatusPlanning, body["status"])
	store.AssertExpectations(t)
}

func TestWatchlistAddIsIdempotent(t *testing.T) {
	store := new(MockStore)
	store.On("GetTitleByName", model.KindMovie, "Arrival").
		Return(model.Title{ID: 7, Kind: model.KindMovie, Name: "Arrival"}, nil)
	store.On("AddToWatchlist", model.KindMovie, testUserID, int64(7)).
		Return(model.WatchlistEntry{UserID: testUserID, TitleID: 7, Status: model.StatusCompleted}, false, nil)

	r := authedRequest(http.MethodPost, "/watchlist/movie/Arrival", "")
	r.SetPathValue("kind", "movie")
	r.SetPathValue("titleName", "Arrival")
	w := httptest.NewRecorder()
	routes.WatchlistAdd(newDeps(store))(w, r)

	// The second add succeeds with the entry untouched.
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, model.StatusCompleted, body["status"])
	store.AssertExpectations(t)
}

func TestWatchlistAddInvalidKind(t *testing.T) {
	r := authedRequest(http.MethodPost, "/watchlist/film/Arrival", "")
	r.SetPathValue("kind", "film")
	r.SetPathValue("titleName", "Arrival")
	w := httptest.NewRecorder()
	routes.WatchlistAdd(newDeps(new(MockStore)))(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWatchlistGetAbsentEntryIsNullStatus(t *testing.T) {
	store := new(MockStore)
	store.On("GetTitleByName", model.KindMovie, "Arrival").
		Return(model.Title{ID: 7, Kind: model.KindMovie, Name: "Arrival"}, nil)
	store.On("GetWatchlistEntry", model.KindMovie, testUserID, int64(7)).
		Return(model.WatchlistEntry{}, repos.ErrEntryNotFound)

	r := authedRequest(http.MethodGet, "/watchlist/movie/Arrival", "")
	r.SetPathValue("kind", "movie")
	r.SetPathValue("titleName", "Arrival")
	w := httptest.NewRecorder()
	routes.WatchlistGet(newDeps(store))(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	val, present := body["status"]
	assert.True(t, present)
	assert.Nil(t, val)
}

func TestWatchlistUpdateRatingTriggersRecalculation(t *testing.T) {
	store := new(MockStore)
	store.On("GetTitleByName", model.KindMovie, "Arrival").
		Return(model.Title{ID: 7, Kind: model.KindMovie, Name: "Arrival"}, nil)
	store.On("SetWatchlistRating", model.KindMovie, testUserID, int64(7), mock.MatchedBy(func(r *int) bool {
		return r != nil && *r == 8
	})).Return(nil)
	agg := 8.0
	store.On("RecalculateRating", model.KindMovie, int64(7)).Return(&agg, nil)
	rated := 8
	store.On("GetWatchlistEntry", model.KindMovie, testUserID, int64(7)).
		Return(model.WatchlistEntry{UserID: testUserID, TitleID: 7, Status: model.StatusCompleted, Rating: &rated}, nil)

	r := authedRequest(http.MethodPut, "/watchlist/movie/Arrival", `{"rating": 8}`)
	r.SetPathValue("kind", "movie")
	r.SetPathValue("titleName", "Arrival")
	w := httptest.NewRecorder()
	routes.WatchlistUpdate(newDeps(store))(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestWatchlistUpdateNullRatingStillRecalculates(t *testing.T) {
	store := new(MockStore)
	store.On("GetTitleByName", model.KindMovie, "Arrival").
		Return(model.Title{ID: 7, Kind: model.KindMovie, Name: "Arrival"}, nil)
	store.On("SetWatchlistRating", model.KindMovie, testUserID, int64(7), (*int)(nil)).Return(nil)
	store.On("RecalculateRating", model.KindMovie, int64(7)).Return(nil, nil)
	store.On("GetWatchlistEntry", model.KindMovie, testUserID, int64(7)).
		Return(model.WatchlistEntry{UserID: testUserID, TitleID: 7, Status: model.StatusCompleted}, nil)

	// rating key present as explicit null clears the rating.
	r := authedRequest(http.MethodPut, "/watchlist/movie/Arrival", `{"rating": null}`)
	r.SetPathValue("kind", "movie")
	r.SetPathValue("titleName", "Arrival")
	w := httptest.NewRecorder()
	routes.WatchlistUpdate(newDeps(store))(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestWatchlistUpdateStatusOnlySkipsRecalculation(t *testing.T) {
	store := new(MockStore)
	store.On("GetTitleByName", model.KindMovie, "Arrival").
		Return(model.Title{ID: 7, Kind: model.KindMovie, Name: "Arrival"}, nil)
	store.On("SetWatchlistStatus", model.KindMovie, testUserID, int64(7), model.StatusCompleted).Return(nil)
	store.On("GetWatchlistEntry", model.KindMovie, testUserID, int64(7)).
		Return(model.WatchlistEntry{UserID: testUserID, TitleID: 7, Status: model.StatusCompleted}, nil)

	r := authedRequest(http.MethodPut, "/watchlist/movie/Arrival", `{"status": "Completed"}`)
	r.SetPathValue("kind", "movie")
	r.SetPathValue("titleName", "Arrival")
	w := httptest.NewRecorder()
	routes.WatchlistUpdate(newDeps(store))(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	store.AssertNotCalled(t, "RecalculateRating", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestWatchlistUpdateRejectsOutOfRangeRating(t *testing.T) {
	for _, body := range []string{`{"rating": 0}`, `{"rating": 11}`, `{"rating": "eight"}`} {
		r := authedRequest(http.MethodPut, "/watchlist/movie/Arrival", body)
		r.SetPathValue("kind", "movie")
		r.SetPathValue("titleName", "Arrival")
		w := httptest.NewRecorder()
		routes.WatchlistUpdate(newDeps(new(MockStore)))(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestWatchlistUpdateRejectsMovieOnlyStatus(t *testing.T) {
	// Watching exists only for shows.
	r := authedRequest(http.MethodPut, "/watchlist/movie/Arrival", `{"status": "Watching"}`)
	r.SetPathValue("kind", "movie")
	r.SetPathValue("titleName", "Arrival")
	w := httptest.NewRecorder()
	routes.WatchlistUpdate(newDeps(new(MockStore)))(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWatchlistRemoveRatedEntryRecalculates(t *testing.T) {
	store := new(MockStore)
	rated := 6
	store.On("GetTitleByName", model.KindMovie, "Arrival").
		Return(model.Title{ID: 7, Kind: model.KindMovie, Name: "Arrival"}, nil)
	store.On("GetWatchlistEntry", model.KindMovie, testUserID, int64(7)).
		Return(model.WatchlistEntry{UserID: testUserID, TitleID: 7, Status: model.StatusCompleted, Rating: &rated}, nil)
	store.On("RemoveFromWatchlist", model.KindMovie, testUserID, int64(7)).Return(nil)
	agg := 8.0
	store.On("RecalculateRating", model.KindMovie, int64(7)).Return(&agg, nil)

	r := authedRequest(http.MethodDelete, "/watchlist/movie/Arrival", "")
	r.SetPathValue("kind", "movie")
	r.SetPathValue("titleName", "Arrival")
	w := httptest.NewRecorder()
	routes.WatchlistRemove(newDeps(store))(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestWatchlistRemoveUnratedEntrySkipsRecalculation(t *testing.T) {
	store := new(MockStore)
	store.On("GetTitleByName", model.KindMovie, "Arrival").
		Return(model.Title{ID: 7, Kind: model.KindMovie, Name: "Arrival"}, nil)
	store.On("GetWatchlistEntry", model.KindMovie, testUserID, int64(7)).
		Return(model.WatchlistEntry{UserID: testUserID, TitleID: 7, Status: model.StatusPlanning}, nil)
	store.On("RemoveFromWatchlist", model.KindMovie, testUserID, int64(7)).Return(nil)

	r := authedRequest(http.MethodDelete, "/watchlist/movie/Arrival", "")
	r.SetPathValue("kind", "movie")
	r.SetPathValue("titleName", "Arrival")
	w := httptest.NewRecorder()
	routes.WatchlistRemove(newDeps(store))(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	store.AssertNotCalled(t, "RecalculateRating", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestWatchlistClearSkipsRecalculation(t *testing.T) {
	store := new(MockStore)
	store.On("ClearWatchlist", model.KindTVShow, testUserID).Return(int64(3), nil)

	r := authedRequest(http.MethodDelete, "/watchlist/tvshows", "")
	r.SetPathValue("kind", "tvshows")
	w := httptest.NewRecorder()
	routes.WatchlistClear(newDeps(store))(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(3), body["removed"])
	store.AssertNotCalled(t, "RecalculateRating", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}
