// Package auth provides the session capability for the studio site: JWT
// issuing and validation, the auth middleware, GitHub OAuth for admins, and
// bcrypt password handling for provisioned client accounts.
//
// SESSION FLOW:
//  1. Admins sign in via GitHub OAuth (/api/auth/github/login → callback);
//     clients sign in with email+password (/api/auth/login).
//  2. Either path issues a JWT carrying the user id and role, stored in an
//     HttpOnly cookie.
//  3. Middleware validates the cookie on protected routes and places the
//     identity in the request context — handlers never touch the token.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "studio-site"

// TokenLifetime is how long a session cookie stays valid. Sessions are
// re-established by logging in again; there is no refresh flow.
const TokenLifetime = 24 * time.Hour

// TokenService signs and verifies session tokens with an HMAC secret.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService. The secret should be at least 32
// bytes of random data in production (e.g. JWT_SECRET=$(openssl rand -hex 32)).
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload: the standard registered claims (sub = user id)
// plus the user's role, so RequireAdmin can gate without a DB lookup.
type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is what a validated token asserts about its bearer.
type Identity struct {
	UserID string
	Role   string
}

// Generate creates and signs a session token for the given user.
func (s *TokenService) Generate(userID, role string) (string, error) {
	return s.GenerateWithDuration(userID, role, TokenLifetime)
}

// GenerateWithDuration creates a token with a custom expiry. Used by tests
// to exercise expiry handling.
func (s *TokenService) GenerateWithDuration(userID, role string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
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

// Validate parses and verifies a token string and returns the identity it
// asserts. Pinning the method to HS256 blocks algorithm-confusion tokens.
func (s *TokenService) Validate(tokenStr string) (Identity, error) {
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
			return Identity{}, fmt.Errorf("auth: token expired")
		}
		return Identity{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("auth: invalid token claims")
	}
	if c.Subject == "" {
		return Identity{}, fmt.Errorf("auth: token has no subject")
	}

	return Identity{UserID: c.Subject, Role: c.Role}, nil
}
