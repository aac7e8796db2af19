package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/conectaedu/portal/internal/apperror"
)

// UserRepository defines the data access contract for the credential store.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListAll(ctx context.Context) ([]User, error)
}

// mysqlDuplicateEntry is the MySQL error number for a unique-key violation.
const mysqlDuplicateEntry = 1062

// userRepository implements UserRepository with hand-written MySQL queries.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository backed by the given DB pool.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user row. The usuarios table has a unique index on
// email; a duplicate-key error is mapped to the DuplicateEmail domain error
// so concurrent registrations with the same email cannot both succeed, even
// when the caller's existence pre-check raced.
func (r *userRepository) Create(ctx context.Context, user *User) error {
	query := `INSERT INTO usuarios (id, nome, email, senha_hash, tipo, criado_em)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Nome,
		user.Email,
		user.SenhaHash,
		string(user.Tipo),
		user.CriadoEm,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return apperror.NewDuplicateEmail()
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// FindByID retrieves a user by their UUID.
// Returns apperror.NotFound if no user exists with this ID.
func (r *userRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT id, nome, email, senha_hash, tipo, criado_em
	          FROM usuarios WHERE id = ?`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Nome,
		&user.Email,
		&user.SenhaHash,
		&user.Tipo,
		&user.CriadoEm,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("Usuário não encontrado")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}

	return user, nil
}

// FindByEmail retrieves a user by their email address. The lookup is exact:
// emails are stored as submitted (trimmed, no case normalization).
// Returns apperror.NotFound if no user exists with this email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, nome, email, senha_hash, tipo, criado_em
	          FROM usuarios WHERE email = ?`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Nome,
		&user.Email,
		&user.SenhaHash,
		&user.Tipo,
		&user.CriadoEm,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("Usuário não encontrado")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}

	return user, nil
}

// EmailExists returns true if a user with the given email already exists.
// Used during registration as a fast path before hashing the password; the
// unique index in Create remains the authoritative check.
func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM usuarios WHERE email = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}

	return exists, nil
}

// ListAll returns every user ordered by creation date, newest first.
// Deliberately excludes senha_hash from the query: the admin listing never
// needs credential data.
func (r *userRepository) ListAll(ctx context.Context) ([]User, error) {
	query := `SELECT id, nome, email, tipo, criado_em
	          FROM usuarios ORDER BY criado_em DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Nome, &u.Email, &u.Tipo, &u.CriadoEm); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
