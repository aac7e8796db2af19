package agenda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/conectaedu/portal/internal/apperror"
	"github.com/conectaedu/portal/internal/auth"
)

// --- Mock Repository ---

// mockRepo implements Repository for testing.
type mockRepo struct {
	createFn       func(ctx context.Context, a *Agendamento) error
	findByIDFn     func(ctx context.Context, id string) (*Agendamento, error)
	listByUserFn   func(ctx context.Context, usuarioID string) ([]Agendamento, error)
	listAllFn      func(ctx context.Context) ([]Agendamento, error)
	updateStatusFn func(ctx context.Context, id string, status Status) error
}

func (m *mockRepo) Create(ctx context.Context, a *Agendamento) error {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	return nil
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (*Agendamento, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("Agendamento não encontrado")
}

func (m *mockRepo) ListByUser(ctx context.Context, usuarioID string) ([]Agendamento, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, usuarioID)
	}
	return nil, nil
}

func (m *mockRepo) ListAll(ctx context.Context) ([]Agendamento, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

// --- Test Helpers ---

func claimsFor(userID string, tipo auth.Role) *auth.Claims {
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		Tipo:             tipo,
	}
}

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

func futureSlot() time.Time {
	return time.Now().Add(48 * time.Hour)
}

// --- Create Tests ---

func TestCreate_Success(t *testing.T) {
	repo := &mockRepo{
		createFn: func(ctx context.Context, a *Agendamento) error {
			if a.UsuarioID != "user-1" {
				t.Errorf("expected owner user-1, got %s", a.UsuarioID)
			}
			if a.Status != StatusPendente {
				t.Errorf("expected status pendente, got %s", a.Status)
			}
			if a.Titulo != "Entrevista de matrícula" {
				t.Errorf("titulo not trimmed/forwarded: %q", a.Titulo)
			}
			return nil
		},
	}

	svc := NewService(repo)
	a, err := svc.Create(context.Background(), CreateInput{
		UsuarioID: "user-1",
		Titulo:    "  Entrevista de matrícula  ",
		Data:      futureSlot(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == "" {
		t.Error("expected an ID to be generated")
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateInput
	}{
		{"missing titulo", CreateInput{UsuarioID: "u1", Data: futureSlot()}},
		{"blank titulo", CreateInput{UsuarioID: "u1", Titulo: "   ", Data: futureSlot()}},
		{"missing data", CreateInput{UsuarioID: "u1", Titulo: "Visita"}},
		{"past data", CreateInput{UsuarioID: "u1", Titulo: "Visita", Data: time.Now().Add(-time.Hour)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&mockRepo{})
			_, err := svc.Create(context.Background(), tt.input)
			assertAppError(t, err, 400)
		})
	}
}

// --- ListFor Tests ---

func TestListFor_ClientSeesOnlyOwn(t *testing.T) {
	repo := &mockRepo{
		listByUserFn: func(ctx context.Context, usuarioID string) ([]Agendamento, error) {
			if usuarioID != "user-1" {
				t.Errorf("expected listing for user-1, got %s", usuarioID)
			}
			return []Agendamento{{ID: "ag-1", UsuarioID: "user-1"}}, nil
		},
		listAllFn: func(ctx context.Context) ([]Agendamento, error) {
			t.Error("client listing must not use ListAll")
			return nil, nil
		},
	}

	svc := NewService(repo)
	list, err := svc.ListFor(context.Background(), claimsFor("user-1", auth.RoleClient))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].ID != "ag-1" {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestListFor_StaffAndAdminSeeAll(t *testing.T) {
	for _, tipo := range []auth.Role{auth.RoleStaff, auth.RoleAdmin} {
		t.Run(string(tipo), func(t *testing.T) {
			repo := &mockRepo{
				listAllFn: func(ctx context.Context) ([]Agendamento, error) {
					return []Agendamento{{ID: "ag-1"}, {ID: "ag-2"}}, nil
				},
			}

			svc := NewService(repo)
			list, err := svc.ListFor(context.Background(), claimsFor("user-9", tipo))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(list) != 2 {
				t.Errorf("expected the full listing, got %d items", len(list))
			}
		})
	}
}

// --- Cancel Tests ---

func TestCancel_ByOwner(t *testing.T) {
	updated := false
	repo := &mockRepo{
		findByIDFn: func(ctx context.Context, id string) (*Agendamento, error) {
			return &Agendamento{ID: id, UsuarioID: "user-1", Status: StatusPendente}, nil
		},
		updateStatusFn: func(ctx context.Context, id string, status Status) error {
			if status != StatusCancelado {
				t.Errorf("expected cancelado, got %s", status)
			}
			updated = true
			return nil
		},
	}

	svc := NewService(repo)
	a, err := svc.Cancel(context.Background(), claimsFor("user-1", auth.RoleClient), "ag-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusCancelado {
		t.Errorf("expected status cancelado, got %s", a.Status)
	}
	if !updated {
		t.Error("expected the status update to be persisted")
	}
}

func TestCancel_ByAdmin(t *testing.T) {
	repo := &mockRepo{
		findByIDFn: func(ctx context.Context, id string) (*Agendamento, error) {
			return &Agendamento{ID: id, UsuarioID: "user-1", Status: StatusConfirmado}, nil
		},
	}

	svc := NewService(repo)
	a, err := svc.Cancel(context.Background(), claimsFor("admin-1", auth.RoleAdmin), "ag-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusCancelado {
		t.Errorf("expected status cancelado, got %s", a.Status)
	}
}

func TestCancel_OtherClientForbidden(t *testing.T) {
	repo := &mockRepo{
		findByIDFn: func(ctx context.Context, id string) (*Agendamento, error) {
			return &Agendamento{ID: id, UsuarioID: "user-1", Status: StatusPendente}, nil
		},
		updateStatusFn: func(ctx context.Context, id string, status Status) error {
			t.Error("forbidden cancel must not write")
			return nil
		},
	}

	svc := NewService(repo)
	_, err := svc.Cancel(context.Background(), claimsFor("user-2", auth.RoleClient), "ag-1")
	assertAppError(t, err, 403)
}

func TestCancel_StaffCannotCancelOthers(t *testing.T) {
	repo := &mockRepo{
		findByIDFn: func(ctx context.Context, id string) (*Agendamento, error) {
			return &Agendamento{ID: id, UsuarioID: "user-1", Status: StatusPendente}, nil
		},
	}

	svc := NewService(repo)
	_, err := svc.Cancel(context.Background(), claimsFor("staff-1", auth.RoleStaff), "ag-1")
	assertAppError(t, err, 403)
}

func TestCancel_Idempotent(t *testing.T) {
	repo := &mockRepo{
		findByIDFn: func(ctx context.Context, id string) (*Agendamento, error) {
			return &Agendamento{ID: id, UsuarioID: "user-1", Status: StatusCancelado}, nil
		},
		updateStatusFn: func(ctx context.Context, id string, status Status) error {
			t.Error("cancelling an already-cancelled appointment must not write")
			return nil
		},
	}

	svc := NewService(repo)
	a, err := svc.Cancel(context.Background(), claimsFor("user-1", auth.RoleClient), "ag-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusCancelado {
		t.Errorf("expected status cancelado, got %s", a.Status)
	}
}

func TestCancel_NotFound(t *testing.T) {
	svc := NewService(&mockRepo{})
	_, err := svc.Cancel(context.Background(), claimsFor("user-1", auth.RoleClient), "missing")
	assertAppError(t, err, 404)
}
