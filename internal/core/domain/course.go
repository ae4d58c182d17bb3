package domain

import "slices"

// Course is a class a teacher runs and students enrol in. Course records
// are provisioned outside the portal and are the source of truth for who
// belongs to them.
type Course struct {
	ID       string   `json:"id"`
	Code     string   `json:"code"`
	Title    string   `json:"title"`
	Teacher  string   `json:"teacher"`
	Students []string `json:"-"`
}

// Admits reports whether the course record lists account in the given role.
func (c Course) Admits(account string, role Role) bool {
	switch role {
	case RoleTeacher:
		return c.Teacher == account
	case RoleStudent:
		return slices.Contains(c.Students, account)
	default:
		return false
	}
}
