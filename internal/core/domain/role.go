package domain

// Role is the tier a credential grants: teacher or student.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Valid reports whether r is one of the recognised roles.
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}
