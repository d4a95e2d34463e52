package jwt

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed validity window of an access token.
const TokenTTL = time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claims")
	ErrEmptySecret  = errors.New("signing secret is empty")
)

var validRoles = map[string]bool{
	"mentee": true,
	"mentor": true,
	"admin":  true,
}

// UserClaims is the claim set carried by an access token
type UserClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies access tokens.
// It is created once at startup and is safe for concurrent use.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a TokenManager
type Option func(*TokenManager)

// WithClock replaces the time source used for issuing and verifying tokens
func WithClock(now func() time.Time) Option {
	return func(tm *TokenManager) {
		tm.now = now
	}
}

// NewTokenManager creates a new TokenManager
func NewTokenManager(secret string, issuer string, opts ...Option) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	tm := &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    TokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(tm)
	}

	return tm, nil
}

// Issue creates a signed token for the given user id and role
func (tm *TokenManager) Issue(userID, role string) (string, error) {
	now := tm.now()

	claims := UserClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tm.issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify validates signature, expiry and claim shape, and returns the claims
func (tm *TokenManager) Verify(tokenString string) (*UserClaims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithTimeFunc(tm.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	}
	if tm.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(tm.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	}, parserOpts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaim
	}
	if claims.UserID == "" || !validRoles[claims.Role] {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// GetExpirationTime returns the token validity window
func (tm *TokenManager) GetExpirationTime() time.Duration {
	return tm.ttl
}

// TimingSafeCompare performs a timing-safe comparison of two strings
func TimingSafeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
