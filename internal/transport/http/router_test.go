package httptransport_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"feria/internal/identity"
	"feria/internal/jwttoken"
	"feria/internal/listing"
	liststore "feria/internal/listing/store"
	httptransport "feria/internal/transport/http"
	"feria/internal/user"
	userstore "feria/internal/user/store"
	"feria/pkg/testutil"
)

// RouterSuite runs the full stack in memory: real token verification, real
// gateway, real services. Only the stores are swapped for in-memory ones.
type RouterSuite struct {
	suite.Suite
	tokens   *jwttoken.Service
	users    *userstore.Memory
	listings *liststore.Memory
	router   http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.tokens = jwttoken.NewService("router-test-key", "feria-test", "")
	s.users = userstore.NewMemory()
	s.listings = liststore.NewMemory()

	userSvc := user.NewService(s.users, nil, nil, logger)
	listingSvc := listing.NewService(s.listings, userSvc, nil, nil, logger)

	gateway := identity.NewGateway(
		jwttoken.NewServiceAdapter(s.tokens),
		userSvc,
		nil,
		identity.PolicyStrict,
		logger,
	)

	h := httptransport.NewHandler(userSvc, listingSvc, logger)
	s.router = httptransport.NewRouter(h, gateway, nil, logger)
}

func (s *RouterSuite) token(subjectID string) string {
	tok, err := s.tokens.GenerateAccessToken(subjectID, time.Minute)
	s.Require().NoError(err)
	return tok
}

func (s *RouterSuite) authed(req *http.Request, subjectID string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+s.token(subjectID))
	return req
}

func (s *RouterSuite) register(subjectID string, in user.RegisterInput) *user.User {
	req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/users", in), subjectID)
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	var created user.User
	testutil.DecodeJSON(s.T(), rr, &created)
	return &created
}

func (s *RouterSuite) TestRegistrationFlow() {
	created := s.register("sub-reg", user.RegisterInput{
		Username:  "maria",
		RUT:       "12.345.678-5",
		FirstName: "Maria",
		LastName:  "Soto",
		Phone:     "+56912345678",
	})

	s.Equal("sub-reg", created.SubjectID)
	s.Equal("12345678-5", created.RUT)
	s.False(created.IsSeller)

	s.Run("profile is readable", func() {
		req := s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/users/me"), "sub-reg")
		rr := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusOK, rr.Code)
		var got user.User
		testutil.DecodeJSON(s.T(), rr, &got)
		s.Equal("maria", got.Username)
	})

	s.Run("re-registering the same subject conflicts", func() {
		req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/users", user.RegisterInput{
			Username: "maria2",
			RUT:      "12.345.678-5",
		}), "sub-reg")
		rr := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusConflict, rr.Code)
	})

	s.Run("bad national id is rejected", func() {
		req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/users", user.RegisterInput{
			Username: "pedro",
			RUT:      "12345678-0",
		}), "sub-other")
		rr := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusBadRequest, rr.Code)
	})
}

func (s *RouterSuite) TestUnknownSubjectProfileIs404() {
	req := s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/users/me"), "ghost")
	rr := testutil.DoRequest(s.router, req)

	s.Equal(http.StatusNotFound, rr.Code)
	// Reading a profile never provisions a record.
	s.Equal(0, s.users.Len())
}

func (s *RouterSuite) TestListingFlow() {
	s.register("seller-1", user.RegisterInput{Username: "vendedora", RUT: "7775735-K"})

	s.Run("listing starts at the minimum price and promotes the seller", func() {
		req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/products", listing.CreateInput{
			Title:    "Chaqueta de mezclilla",
			PriceMin: 5000,
		}), "seller-1")
		rr := testutil.DoRequest(s.router, req)

		s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

		var created listing.Listing
		testutil.DecodeJSON(s.T(), rr, &created)
		s.Equal("seller-1", created.SellerID)
		s.Equal(int64(5000), created.PriceMin)
		s.Equal(int64(5000), created.PriceCurrent)
		s.NotEmpty(created.ID)

		record, err := s.users.FindBySubject(context.Background(), "seller-1")
		s.Require().NoError(err)
		s.True(record.IsSeller)
	})

	s.Run("without a credential nothing is written", func() {
		before := s.listings.Len()
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/products", listing.CreateInput{
			Title:    "Zapatillas",
			PriceMin: 9990,
		})
		rr := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusUnauthorized, rr.Code)
		s.Equal(before, s.listings.Len())
	})

	s.Run("unregistered subject is forbidden under the strict policy", func() {
		req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/products", listing.CreateInput{
			Title:    "Polera",
			PriceMin: 2990,
		}), "stranger")
		rr := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusForbidden, rr.Code)
	})

	s.Run("expired token is rejected", func() {
		tok, err := s.tokens.GenerateAccessToken("seller-1", -time.Minute)
		s.Require().NoError(err)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/products", listing.CreateInput{
			Title:    "Abrigo",
			PriceMin: 19990,
		})
		req.Header.Set("Authorization", "Bearer "+tok)
		rr := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusUnauthorized, rr.Code)
	})
}
