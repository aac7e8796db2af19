// Package agenda handles appointment scheduling for the portal API:
// authenticated users request a slot (e.g., an enrollment interview or a
// campus visit), list their own appointments, and cancel pending ones.
// Staff and admins see every appointment.
package agenda

import (
	"time"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPendente   Status = "pendente"
	StatusConfirmado Status = "confirmado"
	StatusCancelado  Status = "cancelado"
)

// Agendamento represents a scheduled appointment bound to the user who
// requested it.
type Agendamento struct {
	ID        string    `json:"id"`
	UsuarioID string    `json:"usuario_id"`
	Titulo    string    `json:"titulo"`
	Descricao string    `json:"descricao,omitempty"`
	Data      time.Time `json:"data"`
	Status    Status    `json:"status"`
	CriadoEm  time.Time `json:"criado_em"`
}

// CreateRequest holds the data submitted when requesting an appointment.
type CreateRequest struct {
	Titulo    string    `json:"titulo"`
	Descricao string    `json:"descricao"`
	Data      time.Time `json:"data"`
}

// CreateInput is the input for creating an appointment.
type CreateInput struct {
	UsuarioID string
	Titulo    string
	Descricao string
	Data      time.Time
}
