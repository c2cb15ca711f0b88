package domain

// Role is the kind of identity invoking an operation.
type Role string

const (
	RoleStudent       Role = "student"
	RoleSupervisor    Role = "supervisor"
	RoleAdministrator Role = "administrator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleSupervisor, RoleAdministrator:
		return true
	}
	return false
}

// Actor is the identity and role supplied by the session provider.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdministrator
}

func (a Actor) IsStudent(studentID string) bool {
	return a.Role == RoleStudent && a.ID == studentID
}

func (a Actor) IsSupervisor(supervisorID *string) bool {
	return a.Role == RoleSupervisor && supervisorID != nil && *supervisorID == a.ID
}
