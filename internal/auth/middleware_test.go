package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/conectaedu/portal/internal/apperror"
)

func claimsFor(userID string, tipo Role) *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID, ID: "jti-1"},
		Email:            "ana@example.com",
		Tipo:             tipo,
	}
}

// runAuthMiddleware sends a request through RequireAuth and reports whether
// the inner handler was reached.
func runAuthMiddleware(t *testing.T, svc AuthService, authHeader string) (echo.Context, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/perfil", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	reached := false
	handler := RequireAuth(svc)(func(c echo.Context) error {
		reached = true
		return nil
	})
	err := handler(c)
	return c, reached, err
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	svc := &mockAuthService{}
	_, reached, err := runAuthMiddleware(t, svc, "")
	assertAppError(t, err, 401)
	if reached {
		t.Error("handler must not run without a token")
	}
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	svc := &mockAuthService{}
	_, reached, err := runAuthMiddleware(t, svc, "Basic abc123")
	assertAppError(t, err, 401)
	if reached {
		t.Error("handler must not run with a non-bearer credential")
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	svc := &mockAuthService{
		verifyTokenFn: func(ctx context.Context, token string) (*Claims, error) {
			return nil, apperror.NewInvalidToken()
		},
	}
	_, reached, err := runAuthMiddleware(t, svc, "Bearer bad-token")
	assertAppError(t, err, 401)
	if reached {
		t.Error("handler must not run with an invalid token")
	}
}

func TestRequireAuth_ValidTokenInjectsClaims(t *testing.T) {
	svc := &mockAuthService{
		verifyTokenFn: func(ctx context.Context, token string) (*Claims, error) {
			if token != "tok-123" {
				t.Errorf("expected tok-123, got %s", token)
			}
			return claimsFor("user-1", RoleClient), nil
		},
	}
	c, reached, err := runAuthMiddleware(t, svc, "Bearer tok-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reached {
		t.Fatal("handler not reached with a valid token")
	}
	if GetUserID(c) != "user-1" {
		t.Errorf("expected user-1 in context, got %q", GetUserID(c))
	}
	if GetToken(c) != "tok-123" {
		t.Errorf("expected raw token in context, got %q", GetToken(c))
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name    string
		claims  *Claims
		allowed bool
	}{
		{"admin allowed", claimsFor("user-1", RoleAdmin), true},
		{"staff rejected", claimsFor("user-2", RoleStaff), false},
		{"client rejected", claimsFor("user-3", RoleClient), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/usuarios", nil)
			c := e.NewContext(req, httptest.NewRecorder())
			c.Set(contextKeyClaims, tt.claims)

			reached := false
			err := RequireAdmin()(func(c echo.Context) error {
				reached = true
				return nil
			})(c)

			if tt.allowed {
				if err != nil || !reached {
					t.Errorf("expected admin to pass, err=%v reached=%v", err, reached)
				}
			} else {
				assertAppError(t, err, 403)
				if reached {
					t.Error("non-admin must not reach the handler")
				}
			}
		})
	}
}

func TestRequireAdmin_NoClaims(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/usuarios", nil), httptest.NewRecorder())

	err := RequireAdmin()(func(c echo.Context) error { return nil })(c)
	assertAppError(t, err, 401)
}
