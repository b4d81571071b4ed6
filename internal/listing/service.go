// Package listing owns product listings and the seller promotion that
// accompanies a first listing.
package listing

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"feria/internal/audit"
	"feria/internal/platform/metrics"
	dErrors "feria/pkg/domain-errors"
)

// Promoter flips a user's seller flag. Satisfied by user.Service.
type Promoter interface {
	Promote(ctx context.Context, subjectID string) error
}

// Service persists listings and promotes their sellers.
type Service struct {
	store    Store
	promoter Promoter
	recorder audit.Recorder
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewService(store Store, promoter Promoter, recorder audit.Recorder, m *metrics.Metrics, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &Service{store: store, promoter: promoter, recorder: recorder, metrics: m, logger: logger}
}

// Create persists a listing for the gateway-verified seller and then flips
// the seller flag. The promotion sits outside the listing's transactional
// boundary: once the insert succeeded the caller gets the listing back even
// if the flag update fails, and that failure is reported only through
// logging, metrics, and audit.
func (s *Service) Create(ctx context.Context, sellerID string, in CreateInput) (Listing, error) {
	if in.Title == "" {
		return Listing{}, dErrors.New(dErrors.CodeBadRequest, "title is required")
	}
	if in.PriceMin < 0 {
		return Listing{}, dErrors.New(dErrors.CodeBadRequest, "price_min must not be negative")
	}

	l := Listing{
		ID:            uuid.NewString(),
		SellerID:      sellerID,
		Title:         in.Title,
		Description:   in.Description,
		BrandID:       in.BrandID,
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
		ItemID:        in.ItemID,
		SizeID:        in.SizeID,
		ColorID:       in.ColorID,
		Gender:        in.Gender,
		Condition:     in.Condition,
		PriceMin:      in.PriceMin,
		PriceCurrent:  in.PriceMin,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, l); err != nil {
		return Listing{}, dErrors.Wrap(err, dErrors.CodeInternal, "store insert failed")
	}

	if s.metrics != nil {
		s.metrics.ListingsCreated.Inc()
	}
	s.recorder.Record(ctx, audit.ActionListingCreated, sellerID, l.ID)

	if err := s.promoter.Promote(ctx, sellerID); err != nil {
		if s.metrics != nil {
			s.metrics.SellerPromotionFailures.Inc()
		}
		s.recorder.Record(ctx, audit.ActionSellerPromotionFailed, sellerID, l.ID)
		s.logger.ErrorContext(ctx, "seller promotion failed after listing insert",
			"error", err,
			"seller_id", sellerID,
			"listing_id", l.ID,
		)
	} else {
		if s.metrics != nil {
			s.metrics.SellerPromotions.Inc()
		}
		s.recorder.Record(ctx, audit.ActionSellerPromoted, sellerID, l.ID)
	}

	return l, nil
}
