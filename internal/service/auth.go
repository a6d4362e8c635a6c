package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/wellness-tracker/internal/apperror"
	"github.com/sakif/wellness-tracker/internal/auth"
	"github.com/sakif/wellness-tracker/internal/model"
	"github.com/sakif/wellness-tracker/internal/repository"
)

// AuthService handles registration, login and profile management.
//
//	Handler (HTTP) → AuthService → UserRepository (DB)
//	                             ↘ PasswordService (bcrypt)
//	                             ↘ TokenService (JWT, optional)
//
// tokens may be nil. Login then returns no token and everything else
// works unchanged.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// RegisterInput is the body of POST /api/register.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the body of POST /api/login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate is the body of PUT /api/profile.
//
// Bio is a pointer because an explicit "" clears it. The other fields are
// only applied when non-empty.
type ProfileUpdate struct {
	UserID      *NumericID `json:"user_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	Bio         *string    `json:"bio"`
	AvatarColor string     `json:"avatar_color"`
}

// LoginResult bundles the user with an optional session token.
type LoginResult struct {
	User     *model.User
	Token    string        // empty when tokens are disabled
	TokenTTL time.Duration // zero when Token is empty
}

// normalizeEmail trims and lowercases so "Ada@Example.com " and
// "ada@example.com" are the same account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func userNotFound() *apperror.AppError {
	return &apperror.AppError{Err: apperror.ErrNotFound, Message: "User not found"}
}

// Register creates an account. A taken email is an apperror.ErrConflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.Required("name")
	}
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, apperror.Required("email")
	}
	if in.Password == "" {
		return nil, apperror.Required("password")
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		AvatarColor:  model.DefaultAvatarColor,
	}
	// The UNIQUE constraint on email reports duplicates as ErrConflict.
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// Login checks credentials. Unknown email and wrong password produce the
// same apperror.ErrUnauthorized so callers can't probe for accounts.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, apperror.Required("email")
	}
	if in.Password == "" {
		return nil, apperror.Required("password")
	}

	invalid := apperror.Unauthorized("Invalid credentials")

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, invalid
		}
		return nil, fmt.Errorf("looking up user for login: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, in.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			s.logger.Warn("login failed", slog.Int64("user_id", user.ID))
			return nil, invalid
		}
		return nil, fmt.Errorf("verifying password for user %d: %w", user.ID, err)
	}

	result := &LoginResult{User: user}
	if s.tokens != nil {
		token, err := s.tokens.Generate(user.ID)
		if err != nil {
			return nil, fmt.Errorf("issuing token for user %d: %w", user.ID, err)
		}
		result.Token = token
		result.TokenTTL = s.tokens.TTL()
	}

	s.logger.Info("user logged in", slog.Int64("user_id", user.ID))
	return result, nil
}

// GetProfile returns the user or an ErrNotFound with "User not found".
func (s *AuthService) GetProfile(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, userNotFound()
		}
		return nil, fmt.Errorf("fetching profile %d: %w", id, err)
	}
	return user, nil
}

// UpdateProfile applies a partial update.
//
// callerID is the user id from a verified token, or 0 for anonymous
// requests. A token for a different user is an apperror.ErrForbidden.
func (s *AuthService) UpdateProfile(ctx context.Context, callerID int64, in ProfileUpdate) (*model.User, error) {
	userID, err := requireUserID(in.UserID)
	if err != nil {
		return nil, err
	}
	if callerID != 0 && callerID != userID {
		return nil, apperror.Forbidden("You can only update your own profile")
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Only check uniqueness when the email actually changes; re-sending
	// your own address is fine.
	if email := normalizeEmail(in.Email); email != "" && email != user.Email {
		existing, err := s.users.GetUserByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != user.ID:
			return nil, apperror.Conflict("email", "Email already in use")
		case err != nil && !errors.Is(err, apperror.ErrNotFound):
			return nil, fmt.Errorf("checking email for user %d: %w", userID, err)
		}
		user.Email = email
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if in.Password != "" {
		hash, err := s.passwords.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.AvatarColor != "" {
		user.AvatarColor = in.AvatarColor
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("updating profile %d: %w", userID, err)
	}

	s.logger.Info("profile updated", slog.Int64("user_id", userID))
	return user, nil
}
