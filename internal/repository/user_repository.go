package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/utils"
)

// UserRepo manages persistence for users.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create hashes the password and inserts a new user.  The email is
// normalized to lower case.  ErrEmailExists is returned on a duplicate
// email so the handler can respond without revealing which part of the
// registration failed.
func (r *UserRepo) Create(ctx context.Context, name, email, password string, roles []string, cost int) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Roles:        roles,
	}
	const q = `INSERT INTO users (id, name, email, password_hash, roles) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, model.JoinRoles(u.Roles)); err != nil {
		// MySQL error 1062: duplicate entry on the unique email index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.  ErrUserNotFound is
// returned when no such user exists.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT id, name, email, password_hash, roles FROM users WHERE email = ? LIMIT 1`
	return r.scanUser(r.db.QueryRowContext(ctx, q, email))
}

// GetByID fetches a user by id.  ErrUserNotFound is returned when no
// such user exists.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT id, name, email, password_hash, roles FROM users WHERE id = ? LIMIT 1`
	return r.scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserRepo) scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	var roles string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &roles); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.Roles = model.SplitRoles(roles)
	return &u, nil
}
