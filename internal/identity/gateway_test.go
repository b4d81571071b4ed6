package identity_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"feria/internal/identity"
	"feria/internal/user"
	"feria/internal/user/store"
	dErrors "feria/pkg/domain-errors"
	"feria/pkg/requestcontext"
)

type GatewaySuite struct {
	suite.Suite
	store  *store.Memory
	users  *user.Service
	logger *slog.Logger
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewaySuite))
}

func (s *GatewaySuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = store.NewMemory()
	s.users = user.NewService(s.store, nil, nil, s.logger)
}

// stubVerifier returns fixed claims or a fixed error.
type stubVerifier struct {
	subject string
	err     error
}

func (v stubVerifier) ValidateToken(string) (*identity.Claims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &identity.Claims{SubjectID: v.subject}, nil
}

// probe records whether the downstream handler ran and with what subject.
type probe struct {
	called  bool
	subject string
}

func (p *probe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.subject = requestcontext.SubjectID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func (s *GatewaySuite) gateway(verifier identity.CredentialVerifier, policy identity.Policy) *identity.Gateway {
	return identity.NewGateway(verifier, s.users, nil, policy, s.logger)
}

func (s *GatewaySuite) do(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func (s *GatewaySuite) TestRequireCredential() {
	s.Run("missing header yields 401 and no store writes", func() {
		gw := s.gateway(stubVerifier{subject: "sub-1"}, identity.PolicyAutoProvision)
		p := &probe{}

		rr := s.do(gw.RequireCredential(gw.EnsureRegistered(p.handler())), "")

		s.Equal(http.StatusUnauthorized, rr.Code)
		s.False(p.called)
		s.Equal(0, s.store.Len())
	})

	s.Run("malformed scheme yields 401", func() {
		gw := s.gateway(stubVerifier{subject: "sub-1"}, identity.PolicyAutoProvision)
		p := &probe{}

		rr := s.do(gw.RequireCredential(p.handler()), "Basic dXNlcjpwYXNz")

		s.Equal(http.StatusUnauthorized, rr.Code)
		s.False(p.called)
	})

	s.Run("invalid token yields 401", func() {
		gw := s.gateway(stubVerifier{err: dErrors.New(dErrors.CodeUnauthorized, "invalid token")}, identity.PolicyStrict)
		p := &probe{}

		rr := s.do(gw.RequireCredential(p.handler()), "Bearer bad-token")

		s.Equal(http.StatusUnauthorized, rr.Code)
		s.False(p.called)
	})

	s.Run("token without subject yields 401", func() {
		gw := s.gateway(stubVerifier{subject: ""}, identity.PolicyStrict)
		p := &probe{}

		rr := s.do(gw.RequireCredential(p.handler()), "Bearer some-token")

		s.Equal(http.StatusUnauthorized, rr.Code)
		s.False(p.called)
	})

	s.Run("valid token binds subject to context", func() {
		gw := s.gateway(stubVerifier{subject: "sub-2"}, identity.PolicyStrict)
		p := &probe{}

		rr := s.do(gw.RequireCredential(p.handler()), "Bearer good-token")

		s.Equal(http.StatusOK, rr.Code)
		s.True(p.called)
		s.Equal("sub-2", p.subject)
	})
}

func (s *GatewaySuite) TestEnsureRegisteredStrict() {
	s.Run("unknown subject yields 403 and zero writes", func() {
		gw := s.gateway(stubVerifier{subject: "ghost"}, identity.PolicyStrict)
		p := &probe{}

		rr := s.do(gw.RequireCredential(gw.EnsureRegistered(p.handler())), "Bearer token")

		s.Equal(http.StatusForbidden, rr.Code)
		s.False(p.called)
		s.Equal(0, s.store.Len())
	})

	s.Run("registered subject proceeds", func() {
		_, err := s.users.Register(context.Background(), "known", user.RegisterInput{
			Username: "known",
			RUT:      "12345678-5",
		})
		s.Require().NoError(err)

		gw := s.gateway(stubVerifier{subject: "known"}, identity.PolicyStrict)
		p := &probe{}

		rr := s.do(gw.RequireCredential(gw.EnsureRegistered(p.handler())), "Bearer token")

		s.Equal(http.StatusOK, rr.Code)
		s.True(p.called)
		s.Equal("known", p.subject)
	})
}

func (s *GatewaySuite) TestEnsureRegisteredAutoProvision() {
	s.Run("unknown subject gets exactly one placeholder record", func() {
		gw := s.gateway(stubVerifier{subject: "new-sub"}, identity.PolicyAutoProvision)
		p := &probe{}
		chain := gw.RequireCredential(gw.EnsureRegistered(p.handler()))

		rr := s.do(chain, "Bearer token")

		s.Equal(http.StatusOK, rr.Code)
		s.True(p.called)
		s.Equal(1, s.store.Len())

		record, err := s.store.FindBySubject(context.Background(), "new-sub")
		s.Require().NoError(err)
		s.Equal(user.PlaceholderUsername, record.Username)
		s.False(record.IsSeller)

		// Second request reuses the record.
		rr = s.do(chain, "Bearer token")
		s.Equal(http.StatusOK, rr.Code)
		s.Equal(1, s.store.Len())
	})
}

func (s *GatewaySuite) TestEnsureRegisteredDependencyFailures() {
	s.Run("store failure yields 500, never treated as absence", func() {
		users := user.NewService(brokenStore{}, nil, nil, s.logger)
		gw := identity.NewGateway(stubVerifier{subject: "sub-3"}, users, nil, identity.PolicyAutoProvision, s.logger)
		p := &probe{}

		rr := s.do(gw.RequireCredential(gw.EnsureRegistered(p.handler())), "Bearer token")

		s.Equal(http.StatusInternalServerError, rr.Code)
		s.False(p.called)
	})

	s.Run("cache error falls through to the store", func() {
		_, err := s.users.Register(context.Background(), "cached-sub", user.RegisterInput{
			Username: "cached",
			RUT:      "12345678-5",
		})
		s.Require().NoError(err)

		gw := identity.NewGateway(stubVerifier{subject: "cached-sub"}, s.users, errorCache{}, identity.PolicyStrict, s.logger)
		p := &probe{}

		rr := s.do(gw.RequireCredential(gw.EnsureRegistered(p.handler())), "Bearer token")

		s.Equal(http.StatusOK, rr.Code)
		s.True(p.called)
	})

	s.Run("cache hit skips the store lookup", func() {
		// A store that fails loudly proves the lookup never happened.
		users := user.NewService(brokenStore{}, nil, nil, s.logger)
		gw := identity.NewGateway(stubVerifier{subject: "hot-sub"}, users, hitCache{}, identity.PolicyStrict, s.logger)
		p := &probe{}

		rr := s.do(gw.RequireCredential(gw.EnsureRegistered(p.handler())), "Bearer token")

		s.Equal(http.StatusOK, rr.Code)
		s.True(p.called)
	})
}

type brokenStore struct{}

func (brokenStore) Insert(context.Context, user.User) error { return errors.New("connection refused") }
func (brokenStore) FindBySubject(context.Context, string) (user.User, error) {
	return user.User{}, errors.New("connection refused")
}
func (brokenStore) SetSeller(context.Context, string, bool) error {
	return errors.New("connection refused")
}

type errorCache struct{}

func (errorCache) IsRegistered(context.Context, string) (bool, error) {
	return false, errors.New("redis timeout")
}
func (errorCache) MarkRegistered(context.Context, string) error { return errors.New("redis timeout") }

type hitCache struct{}

func (hitCache) IsRegistered(context.Context, string) (bool, error) { return true, nil }
func (hitCache) MarkRegistered(context.Context, string) error       { return nil }
