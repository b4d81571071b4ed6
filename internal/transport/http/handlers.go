package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"feria/internal/listing"
	"feria/internal/user"
)

//go:generate mockgen -source=handlers.go -destination=mocks/service_mocks.go -package=mocks UserService,ListingService

// UserService is the registration/profile surface the handlers call.
type UserService interface {
	Register(ctx context.Context, subjectID string, in user.RegisterInput) (user.User, error)
	Get(ctx context.Context, subjectID string) (user.User, error)
}

// ListingService creates product listings for verified sellers.
type ListingService interface {
	Create(ctx context.Context, sellerID string, in listing.CreateInput) (listing.Listing, error)
}

// Handler carries the handlers' dependencies.
type Handler struct {
	logger   *slog.Logger
	users    UserService
	listings ListingService
}

func NewHandler(users UserService, listings ListingService, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		users:    users,
		listings: listings,
	}
}

func (h *Handler) handleLiveness(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(message))
	}
}
