package httpapi

import (
	"net/http"

	"github.com/PabloPavan/snipmark_api/internal/apperrors"
	"github.com/PabloPavan/snipmark_api/internal/identity"
)

const (
	DefaultIdentityHeader = "X-User-ID"
	RoleHeader            = "X-User-Role"
)

// GatewayIdentity trusts the user id forwarded by the API gateway. Requests
// without the header continue anonymously.
func GatewayIdentity(header string) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultIdentityHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := identity.WithUser(r.Context(), r.Header.Get(header), r.Header.Get(RoleHeader))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOwner rejects requests whose caller is not the {userID} in the
// path. Admins pass for any user.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identity.UserID(r.Context()); !ok {
			writeAppError(w, apperrors.New(apperrors.KindUnauthorized, "unauthorized"))
			return
		}
		if !identity.CanAccess(r.Context(), userIDParam(r)) {
			writeAppError(w, apperrors.New(apperrors.KindForbidden, "forbidden"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
