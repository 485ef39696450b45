// Package middleware provides reusable HTTP middleware: JWT cookie
// authentication, role enforcement and rate limiting.
package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// identityKey is the context key the authenticated identity is stored
// under.
const identityKey = "identity"

// JWTAuth returns an Echo middleware that validates the session token
// cookie and injects the verified identity into the request context.
// The token is issued by the login handler as an httpOnly cookie and
// carries sub, name, email and roles claims.  Handlers downstream
// retrieve the identity via Identity(c).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie("token")
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Access denied"})
			}
			tok, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid token"})
			}
			c.Set(identityKey, identityFromClaims(claims))
			return next(c)
		}
	}
}

// identityFromClaims builds a model.Identity from token claims.  The
// roles claim round-trips through JSON as []interface{}.
func identityFromClaims(claims jwt.MapClaims) model.Identity {
	id := model.Identity{}
	if v, ok := claims["sub"].(string); ok {
		id.ID = v
	}
	if v, ok := claims["name"].(string); ok {
		id.Name = v
	}
	if v, ok := claims["email"].(string); ok {
		id.Email = v
	}
	if raw, ok := claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				id.Roles = append(id.Roles, s)
			}
		}
	}
	return id
}

// Identity returns the authenticated identity stored by JWTAuth, and
// whether one is present.
func Identity(c echo.Context) (model.Identity, bool) {
	id, ok := c.Get(identityKey).(model.Identity)
	return id, ok && id.ID != ""
}
