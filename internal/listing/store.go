package listing

import "context"

// Store persists listings. Implementations return sentinel errors for
// constraint facts; anything else is a dependency failure.
type Store interface {
	Insert(ctx context.Context, l Listing) error
	FindByID(ctx context.Context, id string) (Listing, error)
}
