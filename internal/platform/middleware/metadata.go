package middleware

import (
	"net"
	"net/http"

	"github.com/mssola/useragent"

	"feria/pkg/requestcontext"
)

// ClientMetadata captures the caller's address and a normalized user agent
// description so audit events and auth logs can describe the client without
// re-parsing headers downstream.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ip := r.Header.Get("X-Forwarded-For")
		if ip == "" {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			ip = host
		}
		ctx = requestcontext.WithClientIP(ctx, ip)

		if raw := r.UserAgent(); raw != "" {
			ua := useragent.New(raw)
			name, version := ua.Browser()
			summary := name
			if version != "" {
				summary += "/" + version
			}
			if os := ua.OS(); os != "" {
				summary += " (" + os + ")"
			}
			ctx = requestcontext.WithUserAgent(ctx, summary)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
