// Package utils provides helper functions for token creation, hashing
// and notification formatting.
package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// AccessToken represents a signed JWT access token along with its
// expiry.  The token carries the authenticated identity the booking
// engine consumes: subject (user id), name, email and roles.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  The JWT
// includes standard claims (sub, exp, iat) plus the name, email and
// roles the engine addresses notifications with.
func NewAccessToken(secret string, u *model.User, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"name":  u.Name,
		"email": u.Email,
		"roles": u.Roles,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
