package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/wellness-tracker/internal/apperror"
	"github.com/sakif/wellness-tracker/internal/auth"
)

// newTestAuthService wires an AuthService with a fake repository, bcrypt at
// its minimum cost, and (optionally) a token service.
func newTestAuthService(t *testing.T, repo *fakeUserRepo, withTokens bool) *AuthService {
	t.Helper()
	var ts *auth.TokenService
	if withTokens {
		var err error
		ts, err = auth.NewTokenService("test-secret-at-least-16-chars!!")
		if err != nil {
			t.Fatalf("NewTokenService: %v", err)
		}
	}
	ps := auth.NewPasswordServiceWithCost(bcrypt.MinCost)
	return NewAuthService(repo, ts, ps, testLogger())
}

func registerUser(t *testing.T, svc *AuthService, name, email, password string) int64 {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: password})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return user.ID
}

// =========================================================================
// REGISTER TESTS
// =========================================================================

func TestRegister_NormalizesEmailAndHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, false)

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "  Ada  ",
		Email:    "  Ada@Example.COM ",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	stored := repo.users[user.ID]
	if stored.Email != "ada@example.com" {
		t.Errorf("Email = %q, want ada@example.com", stored.Email)
	}
	if stored.Name != "Ada" {
		t.Errorf("Name = %q, want Ada", stored.Name)
	}
	if stored.PasswordHash == "secret-pass" || !strings.HasPrefix(stored.PasswordHash, "$2") {
		t.Errorf("PasswordHash = %q, want a bcrypt hash", stored.PasswordHash)
	}
	if stored.AvatarColor != "blue" || stored.Bio != "" {
		t.Errorf("defaults = (%q, %q), want (blue, \"\")", stored.AvatarColor, stored.Bio)
	}
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo(), false)
	registerUser(t, svc, "Ada", "ada@example.com", "pw")

	// Different case and padding still collide.
	_, err := svc.Register(context.Background(), RegisterInput{Name: "Other", Email: " ADA@example.com", Password: "pw2"})

	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Register() error = %v, want ErrConflict", err)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Message != "Email already registered" {
		t.Errorf("message = %v, want \"Email already registered\"", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo(), false)

	cases := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"no name", RegisterInput{Email: "a@b.c", Password: "x"}, "name"},
		{"blank name", RegisterInput{Name: "   ", Email: "a@b.c", Password: "x"}, "name"},
		{"no email", RegisterInput{Name: "A", Password: "x"}, "email"},
		{"no password", RegisterInput{Name: "A", Email: "a@b.c"}, "password"},
		{"password too long", RegisterInput{Name: "A", Email: "a@b.c", Password: strings.Repeat("x", 73)}, "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.in)
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) || !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("Register() error = %v, want validation error", err)
			}
			if appErr.Field != tc.field {
				t.Errorf("Field = %q, want %q", appErr.Field, tc.field)
			}
		})
	}
}

// =========================================================================
// LOGIN TESTS
// =========================================================================

func TestLogin_Success(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo(), false)
	id := registerUser(t, svc, "Ada", "ada@example.com", "correct")

	result, err := svc.Login(context.Background(), LoginInput{Email: "ADA@example.com", Password: "correct"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != id {
		t.Errorf("User.ID = %d, want %d", result.User.ID, id)
	}
	if result.Token != "" {
		t.Error("Login() issued a token with tokens disabled")
	}
}

func TestLogin_IssuesTokenWhenConfigured(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo(), true)
	id := registerUser(t, svc, "Ada", "ada@example.com", "correct")

	result, err := svc.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "correct"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	subject, err := svc.tokens.Validate(result.Token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if subject != id {
		t.Errorf("token subject = %d, want %d", subject, id)
	}
}

func TestLogin_UnknownEmailAndWrongPasswordLookTheSame(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo(), false)
	registerUser(t, svc, "Ada", "ada@example.com", "correct")

	_, errUnknown := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "correct"})
	_, errWrong := svc.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "wrong"})

	for _, err := range []error{errUnknown, errWrong} {
		if !errors.Is(err, apperror.ErrUnauthorized) {
			t.Errorf("Login() error = %v, want ErrUnauthorized", err)
		}
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Errorf("messages differ: %q vs %q", errUnknown, errWrong)
	}
}

func TestLogin_RepositoryError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = errors.New("database is on fire")
	svc := newTestAuthService(t, repo, false)

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@b.c", Password: "x"})

	if err == nil || errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("Login() error = %v, want a non-auth internal error", err)
	}
}

// =========================================================================
// PROFILE TESTS
// =========================================================================

func TestGetProfile(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo(), false)
	id := registerUser(t, svc, "Ada", "ada@example.com", "pw")

	user, err := svc.GetProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if user.Name != "Ada" {
		t.Errorf("Name = %q, want Ada", user.Name)
	}

	_, err = svc.GetProfile(context.Background(), id+100)
	if !errors.Is(err, apperror.ErrNotFound) || err.Error() != "User not found" {
		t.Errorf("GetProfile(missing) error = %v, want \"User not found\"", err)
	}
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, false)
	id := registerUser(t, svc, "Ada", "ada@example.com", "old-pw")
	repo.users[id].Bio = "old bio"

	// Empty name/email/password/avatar are ignored; empty bio clears.
	user, err := svc.UpdateProfile(context.Background(), 0, ProfileUpdate{
		UserID: ptr(NumericID(id)),
		Bio:    ptr(""),
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if user.Name != "Ada" || user.Email != "ada@example.com" || user.AvatarColor != "blue" {
		t.Errorf("unchanged fields were modified: %+v", user)
	}
	if user.Bio != "" {
		t.Errorf("Bio = %q, want cleared", user.Bio)
	}

	// Omitting bio leaves it alone.
	repo.users[id].Bio = "kept"
	user, err = svc.UpdateProfile(context.Background(), 0, ProfileUpdate{UserID: ptr(NumericID(id)), AvatarColor: "purple"})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if user.Bio != "kept" || user.AvatarColor != "purple" {
		t.Errorf("got bio=%q avatar=%q, want kept/purple", user.Bio, user.AvatarColor)
	}
}

func TestUpdateProfile_PasswordIsRehashed(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo(), false)
	id := registerUser(t, svc, "Ada", "ada@example.com", "old-pw")

	if _, err := svc.UpdateProfile(context.Background(), 0, ProfileUpdate{UserID: ptr(NumericID(id)), Password: "new-pw"}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "new-pw"}); err != nil {
		t.Errorf("Login with new password failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "old-pw"}); err == nil {
		t.Error("Login with old password should fail")
	}
}

func TestUpdateProfile_Email(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo(), false)
	ada := registerUser(t, svc, "Ada", "ada@example.com", "pw")
	registerUser(t, svc, "Bob", "bob@example.com", "pw")

	// Re-sending your own email is not a conflict.
	if _, err := svc.UpdateProfile(context.Background(), 0, ProfileUpdate{UserID: ptr(NumericID(ada)), Email: "ADA@example.com"}); err != nil {
		t.Fatalf("UpdateProfile(same email) error = %v", err)
	}

	_, err := svc.UpdateProfile(context.Background(), 0, ProfileUpdate{UserID: ptr(NumericID(ada)), Email: "bob@example.com"})
	if !errors.Is(err, apperror.ErrConflict) || err.Error() != "Email already in use" {
		t.Errorf("UpdateProfile(taken email) error = %v, want \"Email already in use\"", err)
	}

	user, err := svc.UpdateProfile(context.Background(), 0, ProfileUpdate{UserID: ptr(NumericID(ada)), Email: "ada.l@example.com"})
	if err != nil {
		t.Fatalf("UpdateProfile(new email) error = %v", err)
	}
	if user.Email != "ada.l@example.com" {
		t.Errorf("Email = %q, want ada.l@example.com", user.Email)
	}
}

func TestUpdateProfile_Errors(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo(), false)
	id := registerUser(t, svc, "Ada", "ada@example.com", "pw")

	cases := []struct {
		name     string
		callerID int64
		in       ProfileUpdate
		want     error
	}{
		{"missing user_id", 0, ProfileUpdate{Name: "x"}, apperror.ErrValidation},
		{"unknown user", 0, ProfileUpdate{UserID: ptr(NumericID(999))}, apperror.ErrNotFound},
		{"token for another user", id + 1, ProfileUpdate{UserID: ptr(NumericID(id)), Name: "x"}, apperror.ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateProfile(context.Background(), tc.callerID, tc.in)
			if !errors.Is(err, tc.want) {
				t.Errorf("UpdateProfile() error = %v, want %v", err, tc.want)
			}
		})
	}

	// A token for the same user is fine.
	if _, err := svc.UpdateProfile(context.Background(), id, ProfileUpdate{UserID: ptr(NumericID(id)), Name: "Ada L"}); err != nil {
		t.Errorf("UpdateProfile(own token) error = %v", err)
	}
}
