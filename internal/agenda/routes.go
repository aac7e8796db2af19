package agenda

import (
	"github.com/labstack/echo/v4"

	"github.com/conectaedu/portal/internal/auth"
)

// RegisterRoutes sets up appointment routes. Every route requires a valid
// session token.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	g := e.Group("/api/agendamentos", auth.RequireAuth(authService))
	g.POST("", h.Criar)
	g.GET("", h.Listar)
	g.POST("/:id/cancelar", h.Cancelar)
}
