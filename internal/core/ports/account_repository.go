package ports

import (
	"context"

	"github.com/gradebook/portal/internal/core/domain"
)

// AccountRepository defines persistence for portal accounts.
type AccountRepository interface {
	FindByAccount(ctx context.Context, account string) (*domain.Account, error)
	Create(ctx context.Context, acct *domain.Account) (*domain.Account, error)
}

// CourseRepository reads the course catalogue.
type CourseRepository interface {
	// FindByIDs returns the courses for ids, skipping unknown ids.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Course, error)
}

// CourseCache is a read-through cache of an account's course ids.
type CourseCache interface {
	// Get reports found=false on a miss.
	Get(ctx context.Context, account string) (ids []string, found bool, err error)
	Set(ctx context.Context, account string, ids []string) error
}
