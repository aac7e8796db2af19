package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/conectaedu/portal/internal/agenda"
	"github.com/conectaedu/portal/internal/auth"
)

// RegisterRoutes wires each component's repository/service/handler chain and
// registers its routes. This is the single place where all routes are
// aggregated.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Health check endpoint for Docker/orchestrator health monitoring.
	// Verifies the two shared backends are actually reachable.
	e.GET("/healthz", func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := a.DB.PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db unavailable"})
		}
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "redis unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Auth ---
	tokens := auth.NewTokenManager([]byte(a.Config.Auth.SecretKey), a.Config.Auth.TokenTTL)
	denylist := auth.NewRedisDenylist(a.Redis)
	authService := auth.NewAuthService(auth.NewUserRepository(a.DB), tokens, denylist)
	auth.RegisterRoutes(e, auth.NewHandler(authService), authService)

	// --- Agenda ---
	agendaService := agenda.NewService(agenda.NewRepository(a.DB))
	agenda.RegisterRoutes(e, agenda.NewHandler(agendaService), authService)
}
