package entity

import (
	"slices"
	"time"
)

// Roles válidos para Vendor.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Vendor representa un vendedor: la cuenta que inicia sesión y es dueña de sus clientes.
type Vendor struct {
	ID                 string
	Name               string
	Email              string // único en todo el sistema
	PasswordHash       string // bcrypt
	Roles              []string
	RefreshToken       string
	RefreshTokenExpiry *time.Time
	ResetCode          string
	ResetCodeExpiry    *time.Time
	ResetAttempts      int // intentos fallidos contra el código vigente
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasRole indica si el vendedor tiene el rol dado.
func (v *Vendor) HasRole(role string) bool {
	return slices.Contains(v.Roles, role)
}

// IsAdmin atajo para HasRole(RoleAdmin).
func (v *Vendor) IsAdmin() bool { return v.HasRole(RoleAdmin) }
