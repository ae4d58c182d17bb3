package middleware

import (
	"strings"

	"github.com/gradebook/portal/internal/core/domain"
)

// Pages the gate redirects to.
const (
	PathRoot         = "/"
	PathLogin        = "/login"
	PathUnauthorized = "/unauthorized"
	PathSelectCourse = "/select-course"
)

// RoleRule restricts every path starting with Prefix to Role.
type RoleRule struct {
	Prefix string
	Role   domain.Role
}

// CourseRule marks every path starting with Prefix as needing (or not) a
// course association on the credential.
type CourseRule struct {
	Prefix   string
	Required bool
}

// Policy is the static routing table the gate evaluates. Rules are ordered
// and the first matching prefix wins.
type Policy struct {
	// PublicPaths are matched exactly.
	PublicPaths []string
	// Paths under PublicPrefix are public unless they also fall under
	// ProtectedPrefix.
	PublicPrefix    string
	ProtectedPrefix string

	RoleRules   []RoleRule
	CourseRules []CourseRule
}

// DefaultPolicy returns the portal's route table.
func DefaultPolicy() *Policy {
	return &Policy{
		PublicPaths:     []string{PathRoot, PathLogin, PathUnauthorized},
		PublicPrefix:    "/api",
		ProtectedPrefix: "/api/dashboard",
		RoleRules: []RoleRule{
			{Prefix: "/dashboard/teacher", Role: domain.RoleTeacher},
			{Prefix: "/api/dashboard/teacher", Role: domain.RoleTeacher},
			{Prefix: "/dashboard/student", Role: domain.RoleStudent},
			{Prefix: "/api/dashboard/student", Role: domain.RoleStudent},
		},
		CourseRules: []CourseRule{
			{Prefix: "/dashboard/teacher/grades", Required: true},
			{Prefix: "/dashboard/teacher/assignments", Required: true},
			{Prefix: "/dashboard/student/grades", Required: true},
			{Prefix: "/dashboard/student/assignments", Required: true},
			{Prefix: "/api/dashboard/teacher/grades", Required: true},
			{Prefix: "/api/dashboard/student/grades", Required: true},
		},
	}
}

// IsPublic reports whether path bypasses credential checks entirely.
func (p *Policy) IsPublic(path string) bool {
	for _, pub := range p.PublicPaths {
		if path == pub {
			return true
		}
	}
	return p.PublicPrefix != "" &&
		strings.HasPrefix(path, p.PublicPrefix) &&
		!(p.ProtectedPrefix != "" && strings.HasPrefix(path, p.ProtectedPrefix))
}

// RequiredRole returns the role path is restricted to, if any.
func (p *Policy) RequiredRole(path string) (domain.Role, bool) {
	for _, r := range p.RoleRules {
		if strings.HasPrefix(path, r.Prefix) {
			return r.Role, true
		}
	}
	return "", false
}

// RequiresCourse reports whether path needs a course-bound credential.
func (p *Policy) RequiresCourse(path string) bool {
	for _, r := range p.CourseRules {
		if strings.HasPrefix(path, r.Prefix) {
			return r.Required
		}
	}
	return false
}

// Authorize applies the role table, then the course table, to a verified
// credential. A role failure is reported before the course is inspected.
func (p *Policy) Authorize(path string, cred domain.Credential) error {
	if role, ok := p.RequiredRole(path); ok && cred.Role != role {
		return domain.ErrRoleMismatch
	}
	if p.RequiresCourse(path) && !cred.HasCourse() {
		return domain.ErrMissingCourse
	}
	return nil
}
