package httptransport

import (
	"encoding/json"
	"net/http"

	"feria/internal/user"
	dErrors "feria/pkg/domain-errors"
	"feria/pkg/platform/httputil"
	"feria/pkg/requestcontext"
)

// handleRegister creates the profile record for the verified subject.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	subjectID := requestcontext.SubjectID(ctx)
	if subjectID == "" {
		// Should never happen behind RequireCredential.
		h.logger.ErrorContext(ctx, "subject missing from context despite credential middleware",
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	var in user.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.WarnContext(ctx, "invalid register request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	created, err := h.users.Register(ctx, subjectID, in)
	if err != nil {
		switch {
		case dErrors.Is(err, dErrors.CodeValidation), dErrors.Is(err, dErrors.CodeConflict):
			h.logger.WarnContext(ctx, "registration rejected",
				"request_id", requestID,
				"error", err.Error(),
			)
			httputil.WriteError(w, err)
		default:
			h.logger.ErrorContext(ctx, "registration failed",
				"request_id", requestID,
				"error", err.Error(),
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "registration failed"))
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, created)
}

// handleMe returns the verified subject's full profile.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	subjectID := requestcontext.SubjectID(ctx)
	if subjectID == "" {
		h.logger.ErrorContext(ctx, "subject missing from context despite credential middleware",
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	u, err := h.users.Get(ctx, subjectID)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "profile lookup failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "profile lookup failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, u)
}
