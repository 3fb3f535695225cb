package domain

import "time"

// Role classifies a user in the legal-request workflow.
type Role string

const (
	RoleDepartmentUser Role = "department_user"
	RoleLegalAdmin     Role = "legal_admin"
)

// Department enumerates the organisational units users belong to.
type Department string

const (
	DepartmentHR         Department = "hr"
	DepartmentFinance    Department = "finance"
	DepartmentIT         Department = "it"
	DepartmentMarketing  Department = "marketing"
	DepartmentOperations Department = "operations"
	DepartmentLegal      Department = "legal"
	DepartmentOther      Department = "other"
)

// User is the domain model for anyone who can sign in: department users who
// submit requests and legal admins who process them. Role is a business
// classification fixed at account creation; IsSuperuser is an orthogonal
// system-admin capability.
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	Department   *Department
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLegalAdmin reports whether the user holds the legal admin role.
func (u *User) IsLegalAdmin() bool {
	return u != nil && u.Role == RoleLegalAdmin
}

// IsDepartmentUser reports whether the user holds the department user role.
func (u *User) IsDepartmentUser() bool {
	return u != nil && u.Role == RoleDepartmentUser
}

// ValidRole reports whether the value is a known role.
func ValidRole(r Role) bool {
	return r == RoleDepartmentUser || r == RoleLegalAdmin
}

// ValidDepartment reports whether the value is a known department tag.
func ValidDepartment(d Department) bool {
	switch d {
	case DepartmentHR, DepartmentFinance, DepartmentIT, DepartmentMarketing,
		DepartmentOperations, DepartmentLegal, DepartmentOther:
		return true
	}
	return false
}
