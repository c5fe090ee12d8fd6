// Package auth resolves the calling user's identity from a request. The
// validation services only need an opaque uid; how it was established is
// the provider's concern.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// IdentityProvider extracts an authenticated user id from a request
type IdentityProvider interface {
	Identify(r *http.Request) (uid string, ok bool)
}

// Claims is the JWT body; the subject is the user id
type Claims struct {
	jwt.RegisteredClaims
}

// JWTProvider accepts HS256 bearer tokens whose subject is the user id
type JWTProvider struct {
	secret []byte
}

// NewJWTProvider creates a provider verifying tokens with secret
func NewJWTProvider(secret string) (*JWTProvider, error) {
	if secret == "" {
		return nil, errors.New(ErrMsgEmptySecret)
	}
	return &JWTProvider{secret: []byte(secret)}, nil
}

// Identify returns the token subject for a valid, unexpired bearer token
func (p *JWTProvider) Identify(r *http.Request) (string, bool) {
	header := r.Header.Get(HeaderAuthorization)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	uid, err := p.Parse(strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix)))
	if err != nil {
		return "", false
	}
	return uid, true
}

// Parse verifies token and returns its subject
func (p *JWTProvider) Parse(token string) (string, error) {
	claims := &Claims{}
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}

	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%s: %v", ErrMsgUnexpectedSigning, t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New(ErrMsgMissingSubject)
	}
	return claims.Subject, nil
}

// IssueToken signs an HS256 token for uid valid for ttl
func IssueToken(secret, uid string, ttl time.Duration) (string, error) {
	return issueAt(secret, uid, ttl, time.Now())
}

func issueAt(secret, uid string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New(ErrMsgEmptySecret)
	}
	if uid == "" {
		return "", errors.New(ErrMsgEmptySubject)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    DefaultIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgSignTokenFailed, err)
	}
	return signed, nil
}
