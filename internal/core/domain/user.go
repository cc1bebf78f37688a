package domain

import "time"

// Role is the closed set of roles known to the system. German names are kept
// because they are the terms the organizations themselves use.
type Role string

const (
	// RoleVerwaltung is the administration: creates clients, registers
	// specialists, and may modify or delete any unlocked report.
	RoleVerwaltung Role = "verwaltung"
	// RoleFachkraft is a specialist assigned to zero or more clients; authors
	// reports only for assigned clients.
	RoleFachkraft Role = "fachkraft"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleVerwaltung || r == RoleFachkraft
}

// User models an account in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	// AssignedClients is a back-reference maintained on assignment; the
	// authoritative side of the relation is Client.AssignedSpecialist.
	AssignedClients []string  `json:"assigned_clients,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Actor is the identity attached to an authenticated request.
type Actor struct {
	ID   string
	Role Role
}
