package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/studio-site/internal/apperror"
	"github.com/sakif/studio-site/internal/model"
	"github.com/sakif/studio-site/internal/repository"
)

var _ repository.UserRepository = (*DB)(nil)

const userColumns = `id, email, first_name, last_name, profile_image_url, role, password_hash, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var (
		u     model.User
		email sql.NullString
	)
	err := row.Scan(
		&u.ID, &email, &u.FirstName, &u.LastName, &u.ProfileImageURL,
		&u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Email = email.String
	return &u, nil
}

func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	u, err := scanUser(db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}
	return u, nil
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("user", email)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}
	return u, nil
}

// UpsertUser inserts the user or refreshes the profile of an existing one.
// The id is the external identity (set by the auth layer), so conflicts key
// on the primary key. Email is stored as NULL when empty — the UNIQUE
// constraint must not collide on accounts with hidden emails.
func (db *DB) UpsertUser(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.UpdatedAt = now
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, first_name, last_name, profile_image_url, role, password_hash, created_at, updated_at)
		 VALUES (?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			profile_image_url = excluded.profile_image_url,
			role = excluded.role,
			password_hash = excluded.password_hash,
			updated_at = excluded.updated_at`,
		user.ID, user.Email, user.FirstName, user.LastName, user.ProfileImageURL,
		user.Role, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", fmt.Sprintf("email %q already registered", user.Email))
		}
		return fmt.Errorf("sqlite: upserting user %s: %w", user.ID, err)
	}
	return nil
}
