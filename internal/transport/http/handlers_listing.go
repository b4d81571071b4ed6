package httptransport

import (
	"encoding/json"
	"net/http"

	"feria/internal/listing"
	dErrors "feria/pkg/domain-errors"
	"feria/pkg/platform/httputil"
	"feria/pkg/requestcontext"
)

// handleCreateListing persists a listing for the gateway-verified seller.
// The seller identity always comes from the request context; the credential
// is never re-verified here.
func (h *Handler) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	sellerID := requestcontext.SubjectID(ctx)
	if sellerID == "" {
		h.logger.ErrorContext(ctx, "subject missing from context despite gateway middleware",
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	var in listing.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.WarnContext(ctx, "invalid create listing request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	created, err := h.listings.Create(ctx, sellerID, in)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeBadRequest) {
			h.logger.WarnContext(ctx, "listing rejected",
				"request_id", requestID,
				"error", err.Error(),
			)
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "listing creation failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "listing creation failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, created)
}
