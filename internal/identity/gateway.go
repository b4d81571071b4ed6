// Package identity is the verification and provisioning gateway. It turns an
// inbound bearer credential into a verified subject bound to the request
// context, and reconciles that subject against the user store before any
// protected handler runs.
package identity

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	dErrors "feria/pkg/domain-errors"
	"feria/pkg/platform/httputil"
	"feria/pkg/requestcontext"
)

// Claims is the gateway's view of a verified credential.
type Claims struct {
	SubjectID string
}

// CredentialVerifier validates a raw bearer token. Satisfied by the jwttoken
// adapter; kept as an interface so handler tests can stub verification.
type CredentialVerifier interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// Registry is the slice of the user service the gateway needs: existence
// checks and policy-driven provisioning. Exists must never report a store
// failure as absence.
type Registry interface {
	Exists(ctx context.Context, subjectID string) (bool, error)
	Provision(ctx context.Context, subjectID string) (created bool, err error)
}

// Gateway holds the verification chain dependencies.
type Gateway struct {
	verifier CredentialVerifier
	users    Registry
	cache    SubjectCache
	policy   Policy
	logger   *slog.Logger
}

func NewGateway(verifier CredentialVerifier, users Registry, cache SubjectCache, policy Policy, logger *slog.Logger) *Gateway {
	if cache == nil {
		cache = NopCache{}
	}
	return &Gateway{
		verifier: verifier,
		users:    users,
		cache:    cache,
		policy:   policy,
		logger:   logger,
	}
}

// Policy reports the active provisioning policy.
func (g *Gateway) Policy() Policy {
	return g.policy
}

// RequireCredential verifies the bearer token and binds the subject ID into
// the request context. It performs no store access, so the registration
// endpoint can sit behind it without an existence check.
func (g *Gateway) RequireCredential(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		authHeader := r.Header.Get("Authorization")
		const bearerPrefix = "Bearer "
		token, ok := strings.CutPrefix(authHeader, bearerPrefix)
		if !ok || token == "" {
			g.logger.WarnContext(ctx, "unauthenticated - missing credential",
				"request_id", requestcontext.RequestID(ctx),
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing credential"))
			return
		}

		claims, err := g.verifier.ValidateToken(token)
		if err != nil {
			g.logger.WarnContext(ctx, "unauthenticated - invalid credential",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid credential"))
			return
		}

		if claims.SubjectID == "" {
			g.logger.WarnContext(ctx, "unauthenticated - malformed credential",
				"request_id", requestcontext.RequestID(ctx),
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "malformed credential"))
			return
		}

		ctx = requestcontext.WithSubjectID(ctx, claims.SubjectID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EnsureRegistered reconciles the bound subject against the user store under
// the configured policy. It must run after RequireCredential.
func (g *Gateway) EnsureRegistered(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		subjectID := requestcontext.SubjectID(ctx)
		if subjectID == "" {
			// Middleware ordering bug, not a caller mistake.
			g.logger.ErrorContext(ctx, "subject missing from context despite credential middleware",
				"request_id", requestcontext.RequestID(ctx),
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
			return
		}

		known, err := g.cache.IsRegistered(ctx, subjectID)
		if err != nil {
			// Cache trouble falls through to the store, never to the caller.
			g.logger.WarnContext(ctx, "subject cache lookup failed",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
			known = false
		}

		if !known {
			exists, err := g.users.Exists(ctx, subjectID)
			if err != nil {
				g.logger.ErrorContext(ctx, "user existence check failed",
					"error", err,
					"subject_id", subjectID,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "user lookup failed"))
				return
			}

			if !exists {
				if g.policy == PolicyStrict {
					httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "identity not registered"))
					return
				}
				if _, err := g.users.Provision(ctx, subjectID); err != nil {
					g.logger.ErrorContext(ctx, "auto-provision failed",
						"error", err,
						"subject_id", subjectID,
						"request_id", requestcontext.RequestID(ctx),
					)
					httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "user provisioning failed"))
					return
				}
			}

			if err := g.cache.MarkRegistered(ctx, subjectID); err != nil {
				g.logger.WarnContext(ctx, "subject cache update failed",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
			}
		}

		next.ServeHTTP(w, r)
	})
}
