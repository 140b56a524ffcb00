package auth

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v4"

	"github.com/sjounng/team-draft-lol/internal/domain"
)

// Claims is the JWT payload issued on login. ProfileID is the subject
// profile's UUID.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the access tokens the HTTP layer
// trades for a profile identity.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed HS256 token for the profile.
func (t *TokenIssuer) Issue(profileID uuid.UUID, username string, now time.Time) (string, error) {
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profileID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token string and returns the profile
// UUID it was issued for. Expired, malformed, or foreign-signed tokens
// all come back as ErrInvalidCredential.
func (t *TokenIssuer) Verify(tokenString string) (uuid.UUID, string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", domain.ErrInvalidCredential
	}
	profileID, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, "", domain.ErrInvalidCredential
	}
	return profileID, claims.Username, nil
}
