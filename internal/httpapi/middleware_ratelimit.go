package httpapi

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"github.com/PabloPavan/snipmark_api/internal/apperrors"
	"github.com/PabloPavan/snipmark_api/internal/ratelimit"
	"github.com/PabloPavan/snipmark_api/internal/telemetry"
)

type RateLimiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

// RateLimit limits requests per client address. It expects RealIP to have
// run first. A limiter failure lets the request through.
func RateLimit(limiter RateLimiter, bucket string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := limiter.Allow(r.Context(), bucket+":"+clientIP(r))
			if err != nil {
				telemetry.LogWarn(r.Context(), "rate limiter unavailable",
					telemetry.LogString("error", err.Error()),
					telemetry.LogString("ratelimit.bucket", bucket),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if !d.Allowed {
				writeAppError(w, apperrors.RateLimit("too many requests", d.RetryAfter))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
