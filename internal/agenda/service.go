package agenda

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/conectaedu/portal/internal/apperror"
	"github.com/conectaedu/portal/internal/auth"
	"github.com/conectaedu/portal/internal/sanitize"
)

// Service defines the business logic contract for appointments.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Agendamento, error)
	ListFor(ctx context.Context, claims *auth.Claims) ([]Agendamento, error)
	Cancel(ctx context.Context, claims *auth.Claims, id string) (*Agendamento, error)
}

// service implements Service.
type service struct {
	repo Repository
}

// NewService creates an appointment service with the given repository.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create validates and persists a new appointment for the given user.
// Slots must be in the future; the appointment starts out pendente.
func (s *service) Create(ctx context.Context, input CreateInput) (*Agendamento, error) {
	titulo := sanitize.Text(input.Titulo)
	if titulo == "" {
		return nil, apperror.NewValidation("Informe o título do agendamento")
	}
	if input.Data.IsZero() {
		return nil, apperror.NewValidation("Informe a data do agendamento")
	}
	if input.Data.Before(time.Now()) {
		return nil, apperror.NewValidation("A data do agendamento deve estar no futuro")
	}

	a := &Agendamento{
		ID:        uuid.NewString(),
		UsuarioID: input.UsuarioID,
		Titulo:    titulo,
		Descricao: sanitize.Text(input.Descricao),
		Data:      input.Data,
		Status:    StatusPendente,
		CriadoEm:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, apperror.NewStoreUnavailable(fmt.Errorf("creating appointment: %w", err))
	}

	slog.Info("appointment created",
		slog.String("agendamento_id", a.ID),
		slog.String("user_id", a.UsuarioID),
	)

	return a, nil
}

// ListFor returns the appointments visible to the caller: clients see their
// own, staff and admins see everything.
func (s *service) ListFor(ctx context.Context, claims *auth.Claims) ([]Agendamento, error) {
	var (
		list []Agendamento
		err  error
	)
	if claims.Tipo == auth.RoleAdmin || claims.Tipo == auth.RoleStaff {
		list, err = s.repo.ListAll(ctx)
	} else {
		list, err = s.repo.ListByUser(ctx, claims.UserID())
	}
	if err != nil {
		return nil, apperror.NewStoreUnavailable(fmt.Errorf("listing appointments: %w", err))
	}
	return list, nil
}

// Cancel sets an appointment to cancelado. Only the owner or an admin may
// cancel; already-cancelled appointments stay cancelled (idempotent).
func (s *service) Cancel(ctx context.Context, claims *auth.Claims, id string) (*Agendamento, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewStoreUnavailable(fmt.Errorf("finding appointment: %w", err))
	}

	if a.UsuarioID != claims.UserID() && claims.Tipo != auth.RoleAdmin {
		return nil, apperror.NewForbidden("Você não pode cancelar este agendamento")
	}

	if a.Status == StatusCancelado {
		return a, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelado); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewStoreUnavailable(fmt.Errorf("cancelling appointment: %w", err))
	}
	a.Status = StatusCancelado

	slog.Info("appointment cancelled",
		slog.String("agendamento_id", a.ID),
		slog.String("by_user_id", claims.UserID()),
	)

	return a, nil
}
