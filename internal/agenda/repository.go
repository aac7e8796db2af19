package agenda

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/conectaedu/portal/internal/apperror"
)

// Repository defines the data access contract for appointments.
type Repository interface {
	Create(ctx context.Context, a *Agendamento) error
	FindByID(ctx context.Context, id string) (*Agendamento, error)
	ListByUser(ctx context.Context, usuarioID string) ([]Agendamento, error)
	ListAll(ctx context.Context) ([]Agendamento, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// mysqlRepository implements Repository with hand-written MySQL queries.
type mysqlRepository struct {
	db *sql.DB
}

// NewRepository creates an appointment repository backed by the given DB pool.
func NewRepository(db *sql.DB) Repository {
	return &mysqlRepository{db: db}
}

// Create inserts a new appointment row.
func (r *mysqlRepository) Create(ctx context.Context, a *Agendamento) error {
	query := `INSERT INTO agendamentos (id, usuario_id, titulo, descricao, data, status, criado_em)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.UsuarioID,
		a.Titulo,
		a.Descricao,
		a.Data,
		string(a.Status),
		a.CriadoEm,
	)
	if err != nil {
		return fmt.Errorf("inserting appointment: %w", err)
	}

	return nil
}

// FindByID retrieves an appointment by its UUID.
// Returns apperror.NotFound if no appointment exists with this ID.
func (r *mysqlRepository) FindByID(ctx context.Context, id string) (*Agendamento, error) {
	query := `SELECT id, usuario_id, titulo, descricao, data, status, criado_em
	          FROM agendamentos WHERE id = ?`

	a := &Agendamento{}
	var descricao sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.UsuarioID,
		&a.Titulo,
		&descricao,
		&a.Data,
		&a.Status,
		&a.CriadoEm,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("Agendamento não encontrado")
	}
	if err != nil {
		return nil, fmt.Errorf("querying appointment by id: %w", err)
	}
	a.Descricao = descricao.String

	return a, nil
}

// ListByUser returns the user's appointments ordered by slot date ascending.
func (r *mysqlRepository) ListByUser(ctx context.Context, usuarioID string) ([]Agendamento, error) {
	query := `SELECT id, usuario_id, titulo, descricao, data, status, criado_em
	          FROM agendamentos WHERE usuario_id = ? ORDER BY data ASC`

	rows, err := r.db.QueryContext(ctx, query, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// ListAll returns every appointment ordered by slot date ascending, for
// staff and admin views.
func (r *mysqlRepository) ListAll(ctx context.Context) ([]Agendamento, error) {
	query := `SELECT id, usuario_id, titulo, descricao, data, status, criado_em
	          FROM agendamentos ORDER BY data ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// UpdateStatus sets the status of an appointment.
func (r *mysqlRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	query := `UPDATE agendamentos SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("updating appointment status: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("Agendamento não encontrado")
	}

	return nil
}

// scanRows reads appointment rows into a slice.
func scanRows(rows *sql.Rows) ([]Agendamento, error) {
	var list []Agendamento
	for rows.Next() {
		var a Agendamento
		var descricao sql.NullString
		if err := rows.Scan(
			&a.ID, &a.UsuarioID, &a.Titulo, &descricao, &a.Data, &a.Status, &a.CriadoEm,
		); err != nil {
			return nil, fmt.Errorf("scanning appointment row: %w", err)
		}
		a.Descricao = descricao.String
		list = append(list, a)
	}
	return list, rows.Err()
}
