package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/conectaedu/portal/internal/apperror"
)

// Context keys for storing claims data in the Echo context. Other packages
// use these (via the exported getter functions below) to access the
// authenticated user's information.
const (
	contextKeyClaims = "auth_claims"
	contextKeyToken  = "auth_token"
)

// RequireAuth returns middleware that extracts the bearer token from the
// Authorization header, verifies it (signature, expiry, denylist), and
// injects the claims into the request context. Missing or invalid tokens
// produce a 401 JSON envelope.
func RequireAuth(service AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperror.NewUnauthorized("Token de acesso não fornecido")
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				// No "Bearer " prefix found.
				return apperror.NewUnauthorized("Formato de autorização inválido, use: Bearer <token>")
			}

			claims, err := service.VerifyToken(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(contextKeyClaims, claims)
			c.Set(contextKeyToken, token)

			return next(c)
		}
	}
}

// RequireAdmin returns middleware that checks the authenticated user's role.
// Must run after RequireAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				return apperror.NewUnauthorized("Token de acesso não fornecido")
			}
			if claims.Tipo != RoleAdmin {
				return apperror.NewForbidden("Acesso restrito a administradores")
			}
			return next(c)
		}
	}
}

// --- Exported getters for handlers and other packages ---

// GetClaims retrieves the verified token claims from the Echo context.
// Returns nil if the request is not authenticated (middleware not applied).
func GetClaims(c echo.Context) *Claims {
	claims, ok := c.Get(contextKeyClaims).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetUserID retrieves the authenticated user's ID from the Echo context.
// Returns empty string if the request is not authenticated.
func GetUserID(c echo.Context) string {
	claims := GetClaims(c)
	if claims == nil {
		return ""
	}
	return claims.UserID()
}

// GetToken retrieves the raw bearer token from the Echo context.
func GetToken(c echo.Context) string {
	token, ok := c.Get(contextKeyToken).(string)
	if !ok {
		return ""
	}
	return token
}
