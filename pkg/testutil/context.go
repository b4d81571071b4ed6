package testutil

import (
	"net/http"

	"feria/pkg/requestcontext"
)

// WithSubject binds a verified subject ID to the request context, simulating
// what the credential middleware does for authenticated requests.
func WithSubject(req *http.Request, subjectID string) *http.Request {
	ctx := requestcontext.WithSubjectID(req.Context(), subjectID)
	return req.WithContext(ctx)
}
