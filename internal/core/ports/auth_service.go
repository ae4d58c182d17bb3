package ports

import (
	"context"
	"time"

	"github.com/gradebook/portal/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Account   string
	Password  string
	Role      domain.Role
	CourseIDs []string
}

// IssuedCredential is a freshly signed session token and what it carries.
type IssuedCredential struct {
	Token      string
	ExpiresAt  time.Time
	Credential domain.Credential
}

// AuthService signs accounts in and out of the portal.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, account, password string) (*IssuedCredential, error)
}

// CourseService resolves course membership and rebinds credentials to a course.
type CourseService interface {
	Courses(ctx context.Context, account string) ([]domain.Course, error)
	SelectCourse(ctx context.Context, cred domain.Credential, courseID string) (*IssuedCredential, error)
}

// TokenIssuer signs session credentials.
type TokenIssuer interface {
	Issue(cred domain.Credential) (string, time.Time, error)
}
