package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

// TokenService issues and validates HS256-signed bearer tokens. The claim
// set is deliberately minimal: subject and expiry. Role and ban state are
// never embedded; the auth middleware re-reads them from the store on every
// request, which is what makes a ban effective against tokens already in the
// wild.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token whose subject is username, expiring ttl from now.
func (s *TokenService) Issue(username string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate verifies the signature and expiry and returns the subject.
// Callers cannot distinguish a bad signature from an expired token; a single
// failure kind is all the gate needs.
func (s *TokenService) Validate(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
