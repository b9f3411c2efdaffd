package entity

// Role is the access role stored on a user account.
type Role string

const (
	RoleAdmin             Role = "admin"
	RoleDoctor            Role = "doctor"
	RolePatient           Role = "patient"
	RoleDepartmentManager Role = "department_manager"
)

// Roles lists every assignable role.
var Roles = []Role{RoleAdmin, RoleDoctor, RolePatient, RoleDepartmentManager}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
