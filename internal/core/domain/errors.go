package domain

import "errors"

// Gate failures. The first three collapse into the same redirect.
var (
	ErrMissingCredential = errors.New("missing session credential")
	ErrInvalidCredential = errors.New("invalid session credential")
	ErrCredentialExpired = errors.New("session credential expired")
	ErrRoleMismatch      = errors.New("role not permitted for path")
	ErrMissingCourse     = errors.New("course association required")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrNotCourseMember    = errors.New("not a member of this course")
	ErrCourseNotFound     = errors.New("course not found")
)
