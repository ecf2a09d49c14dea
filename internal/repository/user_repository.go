package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/models"
)

// UserRepository handles user database operations.
type UserRepository struct {
	db database.PGXDB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db database.PGXDB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user row keyed by the identity provider uid.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, name, email, phone, address, profile_picture, created_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, last_login
	`, user.ID, user.Name, user.Email, user.Phone, user.Address, user.ProfilePicture).
		Scan(&user.CreatedAt, &user.LastLogin)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by uid. Returns nil when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, phone, address, profile_picture, created_at, last_login
		FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Address,
		&user.ProfilePicture, &user.CreatedAt, &user.LastLogin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UserUpdate carries the fields a profile update may change.
// Nil fields are left untouched.
type UserUpdate struct {
	Name           *string
	Email          *string
	Phone          *string
	Address        *models.Address
	ProfilePicture *string
}

// Update merges the supplied fields into the user row and refreshes
// last_login, mirroring the original profile-update behavior.
func (r *UserRepository) Update(ctx context.Context, id string, upd UserUpdate) error {
	set := []string{"last_login = NOW()"}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Address != nil {
		add("address", upd.Address)
	}
	if upd.ProfilePicture != nil {
		add("profile_picture", *upd.ProfilePicture)
	}

	query := "UPDATE users SET " + joinSet(set) + " WHERE id = $1"
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// UpdateAddress replaces the user's address and refreshes last_login.
func (r *UserRepository) UpdateAddress(ctx context.Context, id string, address models.Address) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET address = $2, last_login = NOW() WHERE id = $1
	`, id, address)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}
	return nil
}

// TouchLastLogin records a sign-in on an existing user row.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to touch last login: %w", err)
	}
	return nil
}
