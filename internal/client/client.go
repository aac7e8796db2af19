// Package client is the Go SDK the mobile shell embeds to talk to the portal
// API. It wraps the REST endpoints, persists the session locally so the user
// stays logged in across runs, and attaches the bearer token to protected
// requests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/conectaedu/portal/internal/client/session"
)

// APIError is a failure reported by the server's JSON error envelope.
// Message carries the user-facing text exactly as the server sent it.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// ErrNotLoggedIn is returned by protected calls when no session is stored.
var ErrNotLoggedIn = fmt.Errorf("não há sessão ativa, faça login")

// Client talks to the portal API. All methods honor the passed context.
type Client struct {
	baseURL string
	http    *http.Client
	store   *session.Store
}

// New creates a client for the API at baseURL, persisting sessions through
// the given store.
func New(baseURL string, store *session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
	}
}

// --- Request/response shapes (mirror the server's handlers) ---

// RegisterRequest is the payload for POST /api/cadastro.
type RegisterRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
	Tipo  string `json:"tipo,omitempty"`
}

// LoginRequest is the payload for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AgendamentoRequest is the payload for POST /api/agendamentos.
type AgendamentoRequest struct {
	Titulo    string    `json:"titulo"`
	Descricao string    `json:"descricao,omitempty"`
	Data      time.Time `json:"data"`
}

// Agendamento is an appointment as returned by the server.
type Agendamento struct {
	ID        string    `json:"id"`
	UsuarioID string    `json:"usuario_id"`
	Titulo    string    `json:"titulo"`
	Descricao string    `json:"descricao,omitempty"`
	Data      time.Time `json:"data"`
	Status    string    `json:"status"`
	CriadoEm  time.Time `json:"criado_em"`
}

// errorEnvelope matches {"success":false,"error":"..."}.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// --- Auth operations ---

// Cadastro registers a new account. It does not log the user in; the mobile
// flow sends the user back to the login screen after registration.
func (c *Client) Cadastro(ctx context.Context, req RegisterRequest) (*session.Profile, error) {
	var resp struct {
		User session.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/cadastro", req, "", &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates and persists the returned token + profile, replacing
// any previous session.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var resp struct {
		User  session.Profile `json:"user"`
		Token string          `json:"token"`
	}
	req := LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/login", req, "", &resp); err != nil {
		return nil, err
	}

	sess := &session.Session{Token: resp.Token, User: resp.User}
	if err := c.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return sess, nil
}

// Logout revokes the session on the server and clears the local store. The
// local session is cleared even when the server call fails: from the user's
// point of view logging out must always succeed locally.
func (c *Client) Logout(ctx context.Context) error {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return err
	}

	serverErr := c.do(ctx, http.MethodPost, "/api/logout", nil, sess.Token, nil)

	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return serverErr
}

// Perfil fetches the current user's record from the server.
func (c *Client) Perfil(ctx context.Context) (*session.Profile, error) {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	var resp struct {
		User session.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/perfil", nil, sess.Token, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Usuarios lists all registered users. Requires an admin session.
func (c *Client) Usuarios(ctx context.Context) ([]session.Profile, error) {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Users []session.Profile `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/usuarios", nil, sess.Token, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// --- Agenda operations ---

// CriarAgendamento requests a new appointment slot.
func (c *Client) CriarAgendamento(ctx context.Context, req AgendamentoRequest) (*Agendamento, error) {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Agendamento Agendamento `json:"agendamento"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/agendamentos", req, sess.Token, &resp); err != nil {
		return nil, err
	}
	return &resp.Agendamento, nil
}

// ListarAgendamentos lists the appointments visible to the current user.
func (c *Client) ListarAgendamentos(ctx context.Context) ([]Agendamento, error) {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Agendamentos []Agendamento `json:"agendamentos"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/agendamentos", nil, sess.Token, &resp); err != nil {
		return nil, err
	}
	return resp.Agendamentos, nil
}

// CancelarAgendamento cancels the appointment with the given id.
func (c *Client) CancelarAgendamento(ctx context.Context, id string) (*Agendamento, error) {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Agendamento Agendamento `json:"agendamento"`
	}
	path := "/api/agendamentos/" + id + "/cancelar"
	if err := c.do(ctx, http.MethodPost, path, nil, sess.Token, &resp); err != nil {
		return nil, err
	}
	return &resp.Agendamento, nil
}

// Session returns the locally persisted session, or nil when logged out.
func (c *Client) Session(ctx context.Context) (*session.Session, error) {
	return c.store.Load(ctx)
}

// currentSession loads the stored session or fails with ErrNotLoggedIn.
func (c *Client) currentSession(ctx context.Context) (*session.Session, error) {
	sess, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotLoggedIn
	}
	return sess, nil
}

// do performs one API request. A non-nil body is JSON-encoded; a non-empty
// token is attached as a bearer credential; a non-nil out receives the
// decoded success response. Error envelopes become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any, token string, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope errorEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
			return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
