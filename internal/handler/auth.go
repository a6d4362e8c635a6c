package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/wellness-tracker/internal/auth"
	"github.com/sakif/wellness-tracker/internal/service"
)

// AuthHandler manages accounts: register, login, logout and the profile.
//
// HANDLER RESPONSIBILITIES:
//   - HandleRegister      → create an account
//   - HandleLogin         → check credentials, optionally issue a JWT cookie
//   - HandleLogout        → clear the JWT cookie
//   - HandleGetProfile    → public profile by id
//   - HandleUpdateProfile → partial update
//
// Identity is the caller-supplied user_id. When a JWT is present (see
// auth.OptionalAuth) the profile update additionally checks that it
// belongs to the same user.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// LoginResponse is the body of a successful login. Token is omitted when
// tokens are disabled.
type LoginResponse struct {
	Message     string `json:"message"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
	AvatarColor string `json:"avatar_color"`
	Token       string `json:"token,omitempty"`
}

// ProfileUpdatedResponse is the body of a successful profile update.
type ProfileUpdatedResponse struct {
	Message string      `json:"message"`
	User    ProfileView `json:"user"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/register
// REQUEST BODY: {"name": "Ada", "email": "ada@example.com", "password": "..."}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if _, err := h.auth.Register(r.Context(), in); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "User registered"})
}

// HandleLogin verifies credentials.
//
// HTTP: POST /api/login
//
// When JWT_SECRET is configured the token is returned in the body and also
// set as an HttpOnly cookie. HttpOnly keeps it away from JavaScript;
// SameSite=Lax keeps it off cross-site POSTs.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, h.logger, err)
		return
	}

	result, err := h.auth.Login(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if result.Token != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     auth.CookieName,
			Value:    result.Token,
			Path:     "/",
			MaxAge:   int(result.TokenTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	u := result.User
	writeJSON(w, http.StatusOK, LoginResponse{
		Message:     "Login success",
		UserID:      u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Bio:         u.Bio,
		AvatarColor: u.AvatarColor,
		Token:       result.Token,
	})
}

// HandleLogout clears the JWT cookie.
//
// HTTP: POST /api/logout
//
// Tokens are stateless, so this only removes the browser's copy. A token
// that was copied elsewhere stays valid until it expires.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}

// HandleGetProfile returns a user's public profile.
//
// HTTP: GET /api/profile/{user_id}
func (h *AuthHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, err := h.auth.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newProfileView(user))
}

// HandleUpdateProfile applies a partial profile update.
//
// HTTP: PUT /api/profile
// REQUEST BODY: {"user_id": 1, "bio": "", "avatar_color": "green"}
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in service.ProfileUpdate
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, h.logger, err)
		return
	}

	// 0 when the request carries no valid token.
	callerID, _ := auth.UserIDFromContext(r.Context())

	user, err := h.auth.UpdateProfile(r.Context(), callerID, in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, ProfileUpdatedResponse{
		Message: "Profile updated",
		User:    newProfileView(user),
	})
}
