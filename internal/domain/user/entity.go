package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleRRHH     Role = "rrhh"
	RoleEmpleado Role = "empleado"
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleRRHH),
	string(RoleEmpleado),
}

// ParseRole validates a role string against the known set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleRRHH, RoleEmpleado:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

type User struct {
	ID           string
	EmployeeID   *string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CallerContext identifies the authenticated caller for query scoping. It is
// built once from the verified token by the HTTP layer and passed explicitly
// into every service call; services never read identity from ambient state.
type CallerContext struct {
	UserID     string
	Role       Role
	EmployeeID *string
}

// CanViewAll reports whether the caller may see every employee's records.
// Empleado callers are restricted to their own rows.
func (c CallerContext) CanViewAll() bool {
	return c.Role == RoleAdmin || c.Role == RoleRRHH
}

// CanValidate reports whether the caller may confirm or unconfirm punches
// and run imports.
func (c CallerContext) CanValidate() bool {
	return c.Role == RoleAdmin || c.Role == RoleRRHH
}
