package middleware

import (
	"net/http"

	"github.com/heartmarshall/tenantdesk-backend/pkg/ctxutil"
)

// RequireIdentity rejects requests that carry no authenticated identity.
// Place it after Auth on routes that are never anonymous.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.IdentityFromCtx(r.Context()); !ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
