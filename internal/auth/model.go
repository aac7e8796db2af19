// Package auth handles user registration, login, and session tokens for the
// portal API. It provides the credential store access layer, bcrypt password
// hashing, signed JWT issuance/verification, and a Redis-backed revocation
// denylist for logout.
package auth

import (
	"time"
)

// Role is the user's access level. Defaults to RoleClient at registration.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleClient:
		return true
	}
	return false
}

// User represents a registered portal user. This is the domain model used
// throughout the application. Database scanning and JSON marshaling use this
// struct directly. Records are created by registration and never mutated or
// deleted by any API flow.
type User struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	SenhaHash string    `json:"-"` // Never expose in JSON responses.
	Tipo      Role      `json:"tipo"`
	CriadoEm  time.Time `json:"criado_em"`
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the data submitted by the registration screen.
// Field names follow the mobile client's payload: nome/email/senha.
type RegisterRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
	Tipo  string `json:"tipo,omitempty"`
}

// LoginRequest holds the data submitted by the login screen.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Service Input DTOs (passed from handler to service) ---

// RegisterInput is the input for creating a new user.
type RegisterInput struct {
	Nome  string
	Email string
	Senha string
	Tipo  Role
}

// LoginInput is the input for authenticating a user.
type LoginInput struct {
	Email    string
	Password string
}
