// Package user owns profile registration and the backing user records the
// identity gateway reconciles against.
package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"feria/internal/audit"
	"feria/internal/platform/metrics"
	"feria/internal/rut"
	dErrors "feria/pkg/domain-errors"
	"feria/pkg/platform/sentinel"
)

// Service validates and persists user profiles.
type Service struct {
	store    Store
	recorder audit.Recorder
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewService(store Store, recorder audit.Recorder, m *metrics.Metrics, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &Service{store: store, recorder: recorder, metrics: m, logger: logger}
}

// Register creates the profile record for a verified subject. The national ID
// must carry a valid check digit; a second registration for the same subject
// is a conflict, surfaced as such rather than swallowed.
func (s *Service) Register(ctx context.Context, subjectID string, in RegisterInput) (User, error) {
	if !rut.Validate(in.RUT) {
		return User{}, dErrors.New(dErrors.CodeValidation, "invalid national id")
	}

	u := User{
		SubjectID: subjectID,
		Username:  in.Username,
		RUT:       rut.Format(in.RUT),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		IsSeller:  false,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return User{}, dErrors.New(dErrors.CodeConflict, "subject already registered")
		}
		return User{}, dErrors.Wrap(err, dErrors.CodeInternal, "store insert failed")
	}

	if s.metrics != nil {
		s.metrics.UsersRegistered.Inc()
	}
	s.recorder.Record(ctx, audit.ActionUserRegistered, subjectID, u.Username)

	return u, nil
}

// Get returns the profile for a verified subject.
func (s *Service) Get(ctx context.Context, subjectID string) (User, error) {
	u, err := s.store.FindBySubject(ctx, subjectID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return User{}, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return User{}, dErrors.Wrap(err, dErrors.CodeInternal, "store lookup failed")
	}
	return u, nil
}

// Exists reports whether the subject already has a record. A store failure is
// never treated as absence.
func (s *Service) Exists(ctx context.Context, subjectID string) (bool, error) {
	_, err := s.store.FindBySubject(ctx, subjectID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	return false, dErrors.Wrap(err, dErrors.CodeInternal, "store lookup failed")
}

// Provision inserts the placeholder record the gateway relies on under the
// auto-provision policy. Two concurrent first requests can both reach the
// insert; the uniqueness constraint decides the winner and the loser
// re-checks the lookup once, per the gateway contract.
func (s *Service) Provision(ctx context.Context, subjectID string) (created bool, err error) {
	u := User{
		SubjectID: subjectID,
		Username:  PlaceholderUsername,
		RUT:       PlaceholderRUT,
		FirstName: "Default",
		IsSeller:  false,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Lost the race: someone else provisioned or registered first.
			if _, lookupErr := s.store.FindBySubject(ctx, subjectID); lookupErr != nil {
				return false, dErrors.Wrap(lookupErr, dErrors.CodeInternal, "store lookup failed")
			}
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "store insert failed")
	}

	if s.metrics != nil {
		s.metrics.UsersAutoProvisioned.Inc()
	}
	s.recorder.Record(ctx, audit.ActionUserAutoProvisioned, subjectID, "")
	s.logger.InfoContext(ctx, "auto-provisioned user record", "subject_id", subjectID)

	return true, nil
}

// Promote flips the seller flag for a subject that just created a listing.
func (s *Service) Promote(ctx context.Context, subjectID string) error {
	if err := s.store.SetSeller(ctx, subjectID, true); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "seller promotion failed")
	}
	return nil
}
