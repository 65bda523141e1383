package repos

import "errors"

// Sentinel errors the handlers translate into the API error taxonomy.
var (
	ErrTitleNotFound  = errors.New("title not found")
	ErrEntryNotFound  = errors.New("watchlist item not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrGenreNotFound  = errors.New("genre not found")
	ErrDuplicateTitle = errors.New("title already exists")
	ErrDuplicateUser  = errors.New("user already exists with this email or username")
)
