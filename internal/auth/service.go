package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conectaedu/portal/internal/apperror"
	"github.com/conectaedu/portal/internal/sanitize"
)

// senhaMinLen is the single password policy, enforced here regardless of
// what the client validated. The mobile screens mirror the same rule.
const senhaMinLen = 6

// emailPattern is the same basic shape the registration screen checks:
// something@something.tld, no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (*User, string, error)
	VerifyToken(ctx context.Context, token string) (*Claims, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, userID string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// authService implements AuthService with bcrypt hashing, JWT session
// tokens, and a Redis revocation denylist.
type authService struct {
	repo     UserRepository
	tokens   *TokenManager
	denylist Denylist
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, tokens *TokenManager, denylist Denylist) AuthService {
	return &authService{
		repo:     repo,
		tokens:   tokens,
		denylist: denylist,
	}
}

// Register creates a new user account. It validates the input, checks email
// availability, hashes the password with bcrypt, and persists the user. The
// returned record never carries the password hash into a JSON response
// (the field is excluded from marshaling).
func (s *authService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	nome := sanitize.Text(input.Nome)
	email := strings.TrimSpace(input.Email)
	senha := strings.TrimSpace(input.Senha)

	if nome == "" || email == "" || senha == "" {
		return nil, apperror.NewValidation("Todos os campos são obrigatórios")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperror.NewValidation("E-mail inválido")
	}
	if len(senha) < senhaMinLen {
		return nil, apperror.NewValidation("A senha deve ter pelo menos 6 caracteres")
	}

	tipo := input.Tipo
	if tipo == "" {
		tipo = RoleClient
	}
	// Admin accounts are provisioned operationally, never through the
	// public registration endpoint.
	if tipo == RoleAdmin || !ValidRole(tipo) {
		return nil, apperror.NewValidation("Tipo de usuário inválido")
	}

	// Fast path: reject taken emails before doing expensive hashing. The
	// unique index in Create remains the authoritative check, so a race
	// between two registrations still cannot produce two rows.
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, apperror.NewStoreUnavailable(fmt.Errorf("checking email: %w", err))
	}
	if exists {
		return nil, apperror.NewDuplicateEmail()
	}

	hash, err := hashPassword(senha)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	user := &User{
		ID:        uuid.NewString(),
		Nome:      nome,
		Email:     email,
		SenhaHash: hash,
		Tipo:      tipo,
		CriadoEm:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewStoreUnavailable(fmt.Errorf("creating user: %w", err))
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("tipo", string(user.Tipo)),
	)

	return user, nil
}

// Login authenticates a user by email and password. A missing user and a
// wrong password both return the same InvalidCredentials error so the
// response never reveals which emails are registered. On success it mints
// a fresh session token bound to the user's id, email, and role.
func (s *authService) Login(ctx context.Context, input LoginInput) (*User, string, error) {
	email := strings.TrimSpace(input.Email)
	senha := strings.TrimSpace(input.Password)
	if email == "" || senha == "" {
		return nil, "", apperror.NewValidation("Todos os campos são obrigatórios")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if apperror.IsCode(err, 404) {
			return nil, "", apperror.NewInvalidCredentials()
		}
		return nil, "", apperror.NewStoreUnavailable(fmt.Errorf("finding user: %w", err))
	}

	if !verifyPassword(senha, user.SenhaHash) {
		return nil, "", apperror.NewInvalidCredentials()
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", apperror.NewInternal(fmt.Errorf("generating token: %w", err))
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
	)

	return user, token, nil
}

// VerifyToken checks signature, expiry, and the revocation denylist, and
// returns the token's claims. There is no sliding-window renewal; an
// expired token always requires a fresh login.
func (s *authService) VerifyToken(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperror.NewStoreUnavailable(fmt.Errorf("checking denylist: %w", err))
	}
	if revoked {
		return nil, apperror.NewInvalidToken()
	}

	return claims, nil
}

// Logout revokes the given token by denylisting its ID for the remainder of
// its validity. Already-expired or malformed tokens are treated as a no-op
// success: the caller's goal (this token no longer works) already holds.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return apperror.NewStoreUnavailable(err)
	}

	slog.Info("user logged out",
		slog.String("user_id", claims.UserID()),
	)

	return nil
}

// Profile returns the public record for the given user ID.
func (s *authService) Profile(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewStoreUnavailable(fmt.Errorf("finding user: %w", err))
	}
	return user, nil
}

// ListUsers returns all users ordered newest first, for the admin screen.
func (s *authService) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperror.NewStoreUnavailable(fmt.Errorf("listing users: %w", err))
	}
	return users, nil
}
