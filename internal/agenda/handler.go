package agenda

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/conectaedu/portal/internal/apperror"
	"github.com/conectaedu/portal/internal/auth"
)

// Handler handles HTTP requests for appointments. All routes run behind
// auth.RequireAuth, so claims are always present.
type Handler struct {
	service Service
}

// NewHandler creates a new appointment handler with the given service.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Criar creates an appointment for the caller (POST /api/agendamentos).
func (h *Handler) Criar(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("Requisição inválida")
	}

	a, err := h.service.Create(c.Request().Context(), CreateInput{
		UsuarioID: auth.GetUserID(c),
		Titulo:    req.Titulo,
		Descricao: req.Descricao,
		Data:      req.Data,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"success":     true,
		"agendamento": a,
	})
}

// Listar lists the appointments visible to the caller (GET /api/agendamentos).
func (h *Handler) Listar(c echo.Context) error {
	list, err := h.service.ListFor(c.Request().Context(), auth.GetClaims(c))
	if err != nil {
		return err
	}

	if list == nil {
		list = []Agendamento{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":      true,
		"agendamentos": list,
	})
}

// Cancelar cancels an appointment (POST /api/agendamentos/:id/cancelar).
func (h *Handler) Cancelar(c echo.Context) error {
	a, err := h.service.Cancel(c.Request().Context(), auth.GetClaims(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":     true,
		"agendamento": a,
	})
}
