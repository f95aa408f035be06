package entity

import "time"

// Roles válidos para User. El motor exige supervisor (o admin) para
// aprobar/rechazar; operator basta para crear solicitudes y registrar
// entradas/salidas.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleOperator   = "operator"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, supervisor, operator
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor identidad ya autenticada que ejecuta una operación mutante.
// El motor confía en el rol que recibe (la autenticación es del caller).
type Actor struct {
	ID   string
	Role string
}

// CanApprove indica si el actor puede aprobar/rechazar solicitudes y cerrar alertas.
func (a Actor) CanApprove() bool {
	return a.Role == RoleSupervisor || a.Role == RoleAdmin
}

// CanOperate indica si el actor puede crear solicitudes y registrar movimientos.
func (a Actor) CanOperate() bool {
	return a.Role == RoleOperator || a.CanApprove()
}
