package repos

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdamicaAlexander/Cinemite/internal/model"
)

type UsersRepo struct {
	db *pgxpool.Pool
}

const userCols = "id, username, email, password_hash, profile_picture_url, description, role, created_at"

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.ProfilePictureURL, &u.Description, &u.Role, &u.CreatedAt)
	return u, err
}

// Create inserts a user with an already-hashed password.
func (r *UsersRepo) Create(ctx context.Context, username, email, passwordHash, role string) (model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userCols, username, email, passwordHash, role))
	if isUniqueViolation(err) {
		return model.User{}, ErrDuplicateUser
	}
	return u, err
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, "SELECT "+userCols+" FROM users WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, "SELECT "+userCols+" FROM users WHERE email = $1", email))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, "SELECT "+userCols+" FROM users WHERE username = $1", username))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *UsersRepo) UpdateDescription(ctx context.Context, userID int64, description string) error {
	ct, err := r.db.Exec(ctx, "UPDATE users SET description = $1 WHERE id = $2", description, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the account; both watchlists cascade with it.
func (r *UsersRepo) Delete(ctx context.Context, userID int64) error {
	ct, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
