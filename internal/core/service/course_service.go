package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gradebook/portal/internal/core/domain"
	"github.com/gradebook/portal/internal/core/ports"
	"github.com/gradebook/portal/internal/pkg/metrics"
)

type courseService struct {
	accounts ports.AccountRepository
	courses  ports.CourseRepository
	cache    ports.CourseCache
	issuer   ports.TokenIssuer
	log      zerolog.Logger
}

// NewCourseService returns a CourseService reading membership through cache.
func NewCourseService(
	accounts ports.AccountRepository,
	courses ports.CourseRepository,
	cache ports.CourseCache,
	issuer ports.TokenIssuer,
	log zerolog.Logger,
) ports.CourseService {
	return &courseService{
		accounts: accounts,
		courses:  courses,
		cache:    cache,
		issuer:   issuer,
		log:      log,
	}
}

// Courses lists the courses account belongs to.
func (s *courseService) Courses(ctx context.Context, account string) ([]domain.Course, error) {
	ids, err := s.courseIDs(ctx, account)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}

	courses, err := s.courses.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// SelectCourse re-signs cred bound to courseID after checking membership.
func (s *courseService) SelectCourse(ctx context.Context, cred domain.Credential, courseID string) (*ports.IssuedCredential, error) {
	ids, err := s.courseIDs(ctx, cred.Account)
	if err != nil {
		return nil, err
	}

	member := false
	for _, id := range ids {
		if id == courseID {
			member = true
			break
		}
	}
	if !member {
		return nil, domain.ErrNotCourseMember
	}

	issued, err := issue(s.issuer, cred.WithCourse(courseID))
	if err != nil {
		return nil, fmt.Errorf("select course: %w", err)
	}

	s.log.Info().Str("account", cred.Account).Str("course_id", courseID).Msg("course selected")
	return issued, nil
}

// courseIDs reads membership from the cache, falling back to the account
// store. Cache failures are logged and never fail the request.
func (s *courseService) courseIDs(ctx context.Context, account string) ([]string, error) {
	ids, found, err := s.cache.Get(ctx, account)
	switch {
	case err != nil:
		metrics.CourseCacheTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("account", account).Msg("course cache read failed, using store")
	case found:
		metrics.CourseCacheTotal.WithLabelValues("hit").Inc()
		return ids, nil
	default:
		metrics.CourseCacheTotal.WithLabelValues("miss").Inc()
	}

	acct, err := s.accounts.FindByAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("course membership: %w", err)
	}

	if setErr := s.cache.Set(ctx, account, acct.CourseIDs); setErr != nil {
		s.log.Warn().Err(setErr).Str("account", account).Msg("course cache write failed")
	}
	return acct.CourseIDs, nil
}
