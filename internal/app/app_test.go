package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/conectaedu/portal/internal/apperror"
	"github.com/conectaedu/portal/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Env:           "development",
		Port:          3000,
		AllowedOrigin: "http://localhost:19006",
		Auth: config.AuthConfig{
			SecretKey: "test-secret",
			TokenTTL:  24 * time.Hour,
		},
	}
	return New(cfg, nil, nil)
}

// invokeErrorHandler runs the app's error handler against a fresh context
// and returns the recorded response.
func invokeErrorHandler(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	a := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/perfil", nil)
	rec := httptest.NewRecorder()
	c := a.Echo.NewContext(req, rec)
	a.errorHandler(err, c)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (bool, string) {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	return body.Success, body.Error
}

func TestErrorHandler_AppError(t *testing.T) {
	rec := invokeErrorHandler(t, apperror.NewDuplicateEmail())

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	success, msg := decodeEnvelope(t, rec)
	if success {
		t.Error("expected success false")
	}
	if msg != "E-mail já cadastrado" {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestErrorHandler_InternalCauseNotLeaked(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:3306: connection refused")
	rec := invokeErrorHandler(t, apperror.NewStoreUnavailable(cause))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	_, msg := decodeEnvelope(t, rec)
	if msg != "Erro de conexão, tente novamente" {
		t.Errorf("unexpected message: %s", msg)
	}
	if got := rec.Body.String(); strings.Contains(got, "dial tcp") || strings.Contains(got, "3306") {
		t.Errorf("internal cause leaked to the client: %s", got)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec := invokeErrorHandler(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	success, _ := decodeEnvelope(t, rec)
	if success {
		t.Error("expected success false")
	}
}

func TestErrorHandler_UnknownError(t *testing.T) {
	rec := invokeErrorHandler(t, errors.New("something broke"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	_, msg := decodeEnvelope(t, rec)
	if msg != "Erro inesperado, tente novamente" {
		t.Errorf("unexpected message: %s", msg)
	}
}
