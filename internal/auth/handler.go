package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/conectaedu/portal/internal/apperror"
)

// Handler handles HTTP requests for authentication (cadastro, login, logout,
// perfil, and the admin user listing). Handlers are thin: they bind the
// request, call the service, and shape the response envelope. No business
// logic lives here.
type Handler struct {
	service AuthService
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service AuthService) *Handler {
	return &Handler{service: service}
}

// Cadastro processes a registration request (POST /api/cadastro).
func (h *Handler) Cadastro(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("Requisição inválida")
	}

	input := RegisterInput{
		Nome:  req.Nome,
		Email: req.Email,
		Senha: req.Senha,
		Tipo:  Role(req.Tipo),
	}

	user, err := h.service.Register(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"message": "Usuário cadastrado com sucesso",
		"user":    user,
	})
}

// Login processes a login request (POST /api/login).
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("Requisição inválida")
	}

	user, token, err := h.service.Login(c.Request().Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

// Logout revokes the caller's token (POST /api/logout). The route runs
// behind RequireAuth, so a missing or invalid token never reaches here.
func (h *Handler) Logout(c echo.Context) error {
	if err := h.service.Logout(c.Request().Context(), GetToken(c)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Sessão encerrada",
	})
}

// Perfil returns the authenticated user's record (GET /api/perfil). The
// record is re-read from the store so the response reflects current data,
// not just the token claims.
func (h *Handler) Perfil(c echo.Context) error {
	user, err := h.service.Profile(c.Request().Context(), GetUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

// Usuarios returns all registered users, newest first (GET /api/usuarios).
// The route runs behind RequireAuth + RequireAdmin.
func (h *Handler) Usuarios(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	// Empty list, not null, when there are no users.
	if users == nil {
		users = []User{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"users":   users,
	})
}
