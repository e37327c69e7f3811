package ws

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier validates HS256 bearer tokens whose subject is the numeric
// user id. The gateway trusts no other claim.
type TokenVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewTokenVerifier builds a verifier for the shared secret.
func NewTokenVerifier(secret []byte, now func() time.Time) (*TokenVerifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("ws: token secret is required")
	}
	if now == nil {
		now = time.Now
	}
	return &TokenVerifier{secret: secret, now: now}, nil
}

// Verify parses the token and returns the user id from its subject.
func (v *TokenVerifier) Verify(token string) (int64, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(v.now))
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return 0, errors.New("token has no subject")
	}
	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("token subject %q is not a user id", subject)
	}
	return userID, nil
}

// IssueToken mints a token for the user, used by tests and local tooling.
func (v *TokenVerifier) IssueToken(userID int64, ttl time.Duration) (string, error) {
	now := v.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
