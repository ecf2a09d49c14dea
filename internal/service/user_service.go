package service

import (
	"context"

	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/logger"
	"gitlab.com/contasweb/contas-backend/internal/models"
	"gitlab.com/contasweb/contas-backend/internal/repository"
)

// UserService manages profile records and the profile-completeness gate.
type UserService struct {
	users *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(db database.PGXDB) *UserService {
	return &UserService{users: repository.NewUserRepository(db)}
}

// UserInput carries the caller-supplied profile fields at signup.
type UserInput struct {
	Name           string
	Email          string
	Phone          string
	Address        *models.Address
	ProfilePicture string
}

// CreateUser registers the profile row for the signed-in identity.
func (s *UserService) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	id, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:             id.UID,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		ProfilePicture: in.ProfilePicture,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(id.UID)).
		Str("email", logger.SanitizeEmail(in.Email)).
		Msg("User profile created")
	return user, nil
}

// GetCurrentUser returns the caller's profile, or nil when the signup
// form was never completed.
func (s *UserService) GetCurrentUser(ctx context.Context) (*models.User, error) {
	id, ok := identity(ctx)
	if !ok {
		return nil, nil
	}
	return s.users.GetByID(ctx, id)
}

// UpdateCurrentUser merges the supplied fields into the caller's
// profile and refreshes last_login.
func (s *UserService) UpdateCurrentUser(ctx context.Context, upd repository.UserUpdate) error {
	id, err := requireIdentity(ctx)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, id.UID, upd)
}

// UpdateAddress replaces the caller's address.
func (s *UserService) UpdateAddress(ctx context.Context, address models.Address) error {
	id, err := requireIdentity(ctx)
	if err != nil {
		return err
	}
	return s.users.UpdateAddress(ctx, id.UID, address)
}

// RecordLogin stamps last_login for a returning user.
func (s *UserService) RecordLogin(ctx context.Context) error {
	id, err := requireIdentity(ctx)
	if err != nil {
		return err
	}
	return s.users.TouchLastLogin(ctx, id.UID)
}

// IsProfileComplete reports whether the caller finished registration,
// i.e. a profile row exists with a phone number. Always a live lookup:
// the flag must reflect concurrent out-of-band profile edits, so it is
// never cached.
func (s *UserService) IsProfileComplete(ctx context.Context) (bool, error) {
	id, ok := identity(ctx)
	if !ok {
		return false, nil
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user.ProfileComplete(), nil
}
