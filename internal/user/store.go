package user

import "context"

// Store is interface-driven to keep the domain logic testable and to allow
// swapping in-memory and Postgres persistence without rewiring business code.
// Implementations return pkg/platform/sentinel errors: ErrConflict when the
// subject_id uniqueness constraint rejects an insert, ErrNotFound when a
// lookup matches no row. Any other error is a dependency failure.
type Store interface {
	Insert(ctx context.Context, u User) error
	FindBySubject(ctx context.Context, subjectID string) (User, error)
	SetSeller(ctx context.Context, subjectID string, isSeller bool) error
}
