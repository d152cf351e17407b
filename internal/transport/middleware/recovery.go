package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/tenantdesk-backend/pkg/ctxutil"
)

// Recovery turns a handler panic into a JSON 500 response and logs it with
// the stack, the request id and the caller, when known.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(ctxutil.WithCallerHolder(r.Context()))

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				ctx := r.Context()
				attrs := []slog.Attr{
					slog.Any("error", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", requestIDOf(w, r)),
					slog.String("stack", string(debug.Stack())),
				}
				attrs = append(attrs, callerAttrs(r)...)
				logger.LogAttrs(ctx, slog.LevelError, "panic recovered", attrs...)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"internal server error"}` + "\n"))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// callerAttrs describes the authenticated caller of r, if any.
func callerAttrs(r *http.Request) []slog.Attr {
	id, ok := ctxutil.CallerFromCtx(r.Context())
	if !ok {
		return nil
	}
	return []slog.Attr{
		slog.String("user_id", id.UserID),
		slog.String("role", id.Role.String()),
	}
}

// requestIDOf returns the request id from the context or, when Recovery sits
// outside RequestID, from the response header RequestID already set.
func requestIDOf(w http.ResponseWriter, r *http.Request) string {
	if id := ctxutil.RequestIDFromCtx(r.Context()); id != "" {
		return id
	}
	return w.Header().Get(RequestIDHeader)
}
