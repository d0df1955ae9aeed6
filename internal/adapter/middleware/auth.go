package middleware

import (
	"net/http"
	"strings"

	"procurement-backend/internal/domain/actor"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "auth.actor"

// Claims carried by the HS256 bearer token issued by the identity service.
// Subject holds the user id (32-char hex).
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Authorization bearer token and stores the acting
// user in the echo context for handlers and the idempotency layer.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing Authorization header"})
			}
			if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization must be a bearer token"})
			}
			raw := strings.TrimSpace(authz[7:])

			claims := &Claims{}
			tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			if claims.Subject == "" || claims.Role == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token missing subject or role"})
			}

			c.Set(actorContextKey, actor.Actor{
				ID:    claims.Subject,
				Name:  claims.Name,
				Email: claims.Email,
				Role:  claims.Role,
			})
			return next(c)
		}
	}
}

// ActorFromContext returns the authenticated user placed by JWTAuth.
func ActorFromContext(c echo.Context) (actor.Actor, bool) {
	v := c.Get(actorContextKey)
	if v == nil {
		return actor.Actor{}, false
	}
	a, ok := v.(actor.Actor)
	return a, ok
}

// SetActor is a test hook for exercising handlers without a real token.
func SetActor(c echo.Context, a actor.Actor) { c.Set(actorContextKey, a) }
