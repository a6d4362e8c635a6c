// Package auth provides password hashing and optional JWT session tokens.
//
// AUTHENTICATION FLOW OVERVIEW:
//  1. Client POSTs /api/login with email + password
//  2. Server verifies the bcrypt hash and returns the user profile
//  3. If JWT_SECRET is configured, the login response also carries a signed
//     token, and the same token is set as an HttpOnly "token" cookie
//  4. On later requests OptionalAuth reads the token (Authorization: Bearer
//     header first, cookie second) and puts the user id in the request context
//
// Tokens are OPTIONAL. Every record endpoint addresses users by the id in the
// path and works without one; a token only restricts profile updates to the
// user it was issued for.
//
// JWT STRUCTURE (three base64-encoded parts separated by dots):
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header: {"alg":"HS256","typ":"JWT"}
//	- Payload: {"iss":"wellness-tracker","sub":"42","jti":"cv37rs3pp9olc6atsptg","exp":...}
//	- Signature: HMAC-SHA256(header+"."+payload, secretKey)
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

const (
	issuer = "wellness-tracker"

	// DefaultTokenTTL is how long a login token stays valid.
	DefaultTokenTTL = 24 * time.Hour
)

// TokenService handles JWT creation and validation.
// The same secret signs and verifies, so it must be kept private.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given secret.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret), ttl: DefaultTokenTTL}, nil
}

// claims is the JWT payload. "sub" holds the numeric user id as a string,
// "jti" a unique token id so two logins in the same second differ.
type claims struct {
	jwt.RegisteredClaims
}

// Generate signs a token for userID with the default lifetime.
func (s *TokenService) Generate(userID int64) (string, error) {
	return s.GenerateWithDuration(userID, s.ttl)
}

// GenerateWithDuration signs a token with a custom lifetime.
// A negative duration yields an already expired token, which tests rely on.
func (s *TokenService) GenerateWithDuration(userID int64, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        xid.New().String(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string and returns the user id from "sub".
//
// The library checks the signature, expiry and issuer. WithValidMethods
// rejects any algorithm other than HS256, including "none".
func (s *TokenService) Validate(tokenStr string) (int64, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, errors.New("auth: token expired")
		}
		return 0, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return 0, errors.New("auth: invalid token claims")
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("auth: token subject %q is not a user id", c.Subject)
	}

	return userID, nil
}

// TTL reports the lifetime of tokens from Generate.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
