package listing_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"feria/internal/listing"
	"feria/internal/listing/store"
	"feria/internal/user"
	userstore "feria/internal/user/store"
	dErrors "feria/pkg/domain-errors"
)

type ListingServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *store.Memory
	users   *userstore.Memory
	userSvc *user.Service
	service *listing.Service
}

func TestListingServiceSuite(t *testing.T) {
	suite.Run(t, new(ListingServiceSuite))
}

func (s *ListingServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewMemory()
	s.users = userstore.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.userSvc = user.NewService(s.users, nil, nil, logger)
	s.service = listing.NewService(s.store, s.userSvc, nil, nil, logger)
}

func (s *ListingServiceSuite) registerSeller(subjectID string) {
	_, err := s.userSvc.Register(s.ctx, subjectID, user.RegisterInput{
		Username: "seller",
		RUT:      "12345678-5",
	})
	s.Require().NoError(err)
}

func (s *ListingServiceSuite) validInput() listing.CreateInput {
	return listing.CreateInput{
		Title:       "Vintage denim jacket",
		Description: "Lightly worn",
		BrandID:     "brand-1",
		CategoryID:  "cat-2",
		Gender:      "f",
		Condition:   "used",
		PriceMin:    5000,
	}
}

func (s *ListingServiceSuite) TestCreate() {
	s.Run("initializes price_current from price_min", func() {
		s.registerSeller("seller-1")

		created, err := s.service.Create(s.ctx, "seller-1", s.validInput())
		s.Require().NoError(err)
		s.Equal(int64(5000), created.PriceMin)
		s.Equal(int64(5000), created.PriceCurrent)
		s.NotEmpty(created.ID)
		s.Equal("seller-1", created.SellerID)

		stored, err := s.store.FindByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal(int64(5000), stored.PriceCurrent)
	})

	s.Run("promotes the owner to seller", func() {
		s.registerSeller("seller-2")

		_, err := s.service.Create(s.ctx, "seller-2", s.validInput())
		s.Require().NoError(err)

		owner, err := s.users.FindBySubject(s.ctx, "seller-2")
		s.Require().NoError(err)
		s.True(owner.IsSeller)
	})

	s.Run("promotion failure still returns the listing", func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := listing.NewService(s.store, failingPromoter{}, nil, nil, logger)

		created, err := svc.Create(s.ctx, "seller-3", s.validInput())
		s.Require().NoError(err)
		s.NotEmpty(created.ID)

		_, err = s.store.FindByID(s.ctx, created.ID)
		s.Require().NoError(err)
	})

	s.Run("rejects missing title", func() {
		before := s.store.Len()
		in := s.validInput()
		in.Title = ""

		_, err := s.service.Create(s.ctx, "seller-4", in)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Equal(before, s.store.Len())
	})

	s.Run("rejects negative price", func() {
		in := s.validInput()
		in.PriceMin = -1

		_, err := s.service.Create(s.ctx, "seller-5", in)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

type failingPromoter struct{}

func (failingPromoter) Promote(context.Context, string) error {
	return errors.New("users table unavailable")
}
