package routes_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
	"github.com/AdamicaAlexander/Cinemite/internal/query"
)

// MockStore is a testify mock of the routes.Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) QueryWatchlist(ctx context.Context, userID int64, kind model.Kind, f query.Filters, s query.Sort, page, pageSize int) ([]query.Row, error) {
	args := m.Called(userID, kind, f, s, page, pageSize)
	return args.Get(0).([]query.Row), args.Error(1)
}

func (m *MockStore) BrowseCatalog(ctx context.Context, kind model.Kind, f query.Filters, s query.Sort, page, pageSize int) ([]query.Row, error) {
	args := m.Called(kind, f, s, page, pageSize)
	return args.Get(0).([]query.Row), args.Error(1)
}

func (m *MockStore) GetTitleByName(ctx context.Context, kind model.Kind, name string) (model.Title, error) {
	args := m.Called(kind, name)
	return args.Get(0).(model.Title), args.Error(1)
}

func (m *MockStore) QuickSearchTitles(ctx context.Context, kind model.Kind, term string, limit int32) ([]model.Title, error) {
	args := m.Called(kind, term, limit)
	return args.Get(0).([]model.Title), args.Error(1)
}

func (m *MockStore) CreateTitle(ctx context.Context, t model.Title) (int64, error) {
	args := m.Called(t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) UpdateTitle(ctx context.Context, t model.Title) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockStore) DeleteTitle(ctx context.Context, kind model.Kind, id int64) error {
	args := m.Called(kind, id)
	return args.Error(0)
}

func (m *MockStore) ListGenres(ctx context.Context) ([]model.Genre, error) {
	args := m.Called()
	return args.Get(0).([]model.Genre), args.Error(1)
}

func (m *MockStore) GenreNamesByTitle(ctx context.Context, kind model.Kind, titleID int64) ([]string, error) {
	args := m.Called(kind, titleID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) SetTitleGenres(ctx context.Context, kind model.Kind, titleID int64, names []string) error {
	args := m.Called(kind, titleID, names)
	return args.Error(0)
}

func (m *MockStore) GetWatchlistEntry(ctx context.Context, kind model.Kind, userID, titleID int64) (model.WatchlistEntry, error) {
	args := m.Called(kind, userID, titleID)
	return args.Get(0).(model.WatchlistEntry), args.Error(1)
}

func (m *MockStore) AddToWatchlist(ctx context.Context, kind model.Kind, userID, titleID int64) (model.WatchlistEntry, bool, error) {
	args := m.Called(kind, userID, titleID)
	return args.Get(0).(model.WatchlistEntry), args.Bool(1), args.Error(2)
}

func (m *MockStore) SetWatchlistStatus(ctx context.Context, kind model.Kind, userID, titleID int64, status string) error {
	args := m.Called(kind, userID, titleID, status)
	return args.Error(0)
}

func (m *MockStore) SetWatchlistRating(ctx context.Context, kind model.Kind, userID, titleID int64, rating *int) error {
	args := m.Called(kind, userID, titleID, rating)
	return args.Error(0)
}

func (m *MockStore) RemoveFromWatchlist(ctx context.Context, kind model.Kind, userID, titleID int64) error {
	args := m.Called(kind, userID, titleID)
	return args.Error(0)
}

func (m *MockStore) ClearWatchlist(ctx context.Context, kind model.Kind, userID int64) (int64, error) {
	args := m.Called(kind, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) WatchlistStats(ctx context.Context, kind model.Kind, userID int64) (model.WatchlistStats, error) {
	args := m.Called(kind, userID)
	return args.Get(0).(model.WatchlistStats), args.Error(1)
}

func (m *MockStore) RecalculateRating(ctx context.Context, kind model.Kind, titleID int64) (*float64, error) {
	args := m.Called(kind, titleID)
	if v := args.Get(0); v != nil {
		return v.(*float64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateUser(ctx context.Context, username, email, passwordHash, role string) (model.User, error) {
	args := m.Called(username, email, passwordHash, role)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockStore) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockStore) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockStore) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockStore) UpdateUserDescription(ctx context.Context, userID int64, description string) error {
	args := m.Called(userID, description)
	return args.Error(0)
}

func (m *MockStore) DeleteUser(ctx context.Context, userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}
