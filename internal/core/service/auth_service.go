package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gradebook/portal/internal/core/domain"
	"github.com/gradebook/portal/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo    ports.AccountRepository
	courses ports.CourseRepository
	issuer  ports.TokenIssuer
	log     zerolog.Logger
	now     func() time.Time
}

func NewAuthService(
	repo ports.AccountRepository,
	courses ports.CourseRepository,
	issuer ports.TokenIssuer,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{repo: repo, courses: courses, issuer: issuer, log: log, now: time.Now}
}

// Register creates an account. Each requested course must exist and its
// record must already list the account in the requested role.

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	if in.Account == "" || in.Password == "" || !in.Role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	courseIDs, err := s.enrollment(ctx, in)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	acct := &domain.Account{
		Account:      in.Account,
		PasswordHash: string(hash),
		Role:         in.Role,
		CourseIDs:    courseIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, acct)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("account", created.Account).Str("role", string(created.Role)).Msg("account registered")
	return created, nil
}

// Login checks the password and signs a credential. An unknown account and
// a wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, account, password string) (*ports.IssuedCredential, error) {
	if account == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	acct, err := s.repo.FindByAccount(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return issue(s.issuer, acct.Credential())
}

// enrollment dedupes the requested course ids and checks each one against
// the course records.
func (s *AuthService) enrollment(ctx context.Context, in ports.RegisterInput) ([]string, error) {
	ids := make([]string, 0, len(in.CourseIDs))
	for _, id := range in.CourseIDs {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	found, err := s.courses.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	byID := make(map[string]domain.Course, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	for _, id := range ids {
		course, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrCourseNotFound, id)
		}
		if !course.Admits(in.Account, in.Role) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotCourseMember, id)
		}
	}
	return ids, nil
}

func issue(issuer ports.TokenIssuer, cred domain.Credential) (*ports.IssuedCredential, error) {
	signed, expires, err := issuer.Issue(cred)
	if err != nil {
		return nil, err
	}
	return &ports.IssuedCredential{Token: signed, ExpiresAt: expires, Credential: cred}, nil
}
