package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/conectaedu/portal/internal/middleware"
)

// RegisterRoutes sets up all auth-related routes on the given Echo instance.
// Credential routes are public; everything else runs behind RequireAuth.
//
// POST endpoints are rate-limited to slow brute-force and credential
// stuffing attacks: 10 attempts per IP per minute for login, 5 for cadastro.
func RegisterRoutes(e *echo.Echo, h *Handler, service AuthService) {
	// Public routes -- no token required.
	e.POST("/api/cadastro", h.Cadastro, middleware.RateLimit(5, time.Minute))
	e.POST("/api/login", h.Login, middleware.RateLimit(10, time.Minute))

	// Protected routes.
	authed := e.Group("/api", RequireAuth(service))
	authed.POST("/logout", h.Logout)
	authed.GET("/perfil", h.Perfil)
	authed.GET("/usuarios", h.Usuarios, RequireAdmin())
}
