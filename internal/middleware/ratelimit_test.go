package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

// doRequest sends one request from the given IP through the limiter.
func doRequest(t *testing.T, e *echo.Echo, mw echo.MiddlewareFunc, ip string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = ip + ":12345"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec.Code
}

func TestRateLimit_AllowsUpToMax(t *testing.T) {
	e := echo.New()
	mw := RateLimit(3, time.Minute)

	for i := 0; i < 3; i++ {
		if code := doRequest(t, e, mw, "203.0.113.1"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, code)
		}
	}
}

func TestRateLimit_BlocksOverMax(t *testing.T) {
	e := echo.New()
	mw := RateLimit(2, time.Minute)

	doRequest(t, e, mw, "203.0.113.1")
	doRequest(t, e, mw, "203.0.113.1")

	if code := doRequest(t, e, mw, "203.0.113.1"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 past the limit, got %d", code)
	}
}

func TestRateLimit_PerIP(t *testing.T) {
	e := echo.New()
	mw := RateLimit(1, time.Minute)

	doRequest(t, e, mw, "203.0.113.1")
	if code := doRequest(t, e, mw, "203.0.113.1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected first IP to be limited, got %d", code)
	}

	// A different IP has its own window.
	if code := doRequest(t, e, mw, "203.0.113.2"); code != http.StatusOK {
		t.Errorf("expected second IP to pass, got %d", code)
	}
}

func TestRateLimit_WindowResets(t *testing.T) {
	e := echo.New()
	mw := RateLimit(1, 50*time.Millisecond)

	doRequest(t, e, mw, "203.0.113.1")
	if code := doRequest(t, e, mw, "203.0.113.1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 within the window, got %d", code)
	}

	time.Sleep(60 * time.Millisecond)

	if code := doRequest(t, e, mw, "203.0.113.1"); code != http.StatusOK {
		t.Errorf("expected a fresh window after expiry, got %d", code)
	}
}
