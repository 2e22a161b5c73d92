package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vacansy/vacansy-api/internal/apperr"
	"github.com/vacansy/vacansy-api/internal/models"
)

// Claims is the token payload: who the caller is and what they may act as.
type Claims struct {
	UserID uint        `json:"id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the bearer tokens the API hands out.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

func (i *TokenIssuer) Issue(userID uint, role models.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %v", apperr.ErrInternal, err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the caller encoded in the
// token. Any failure is ErrUnauthenticated.
func (i *TokenIssuer) Verify(tokenString string) (Caller, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return Anonymous, fmt.Errorf("%w: invalid token", apperr.ErrUnauthenticated)
	}
	if claims.UserID == 0 || !claims.Role.Valid() {
		return Anonymous, fmt.Errorf("%w: malformed claims", apperr.ErrUnauthenticated)
	}
	return Caller{ID: claims.UserID, Role: claims.Role}, nil
}

// ResolveCaller degrades any verification failure to the anonymous caller.
// It has no error path: a bad credential on an optional-auth route is the
// same as no credential at all.
func (i *TokenIssuer) ResolveCaller(tokenString string) Caller {
	if tokenString == "" {
		return Anonymous
	}
	caller, err := i.Verify(tokenString)
	if err != nil {
		return Anonymous
	}
	return caller
}
