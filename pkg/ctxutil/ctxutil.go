package ctxutil

import (
	"context"
	"sync"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

type ctxKey string

const (
	identityKey  ctxKey = "identity"
	requestIDKey ctxKey = "request_id"
	callerKey    ctxKey = "caller"
)

// callerHolder receives the identity resolved further down the handler
// chain, so outer middleware can report who made the request.
type callerHolder struct {
	mu sync.Mutex
	id domain.Identity
}

// WithCallerHolder prepares ctx to collect the caller identity set by an
// inner WithIdentity call. It is a no-op if ctx already has a holder.
func WithCallerHolder(ctx context.Context) context.Context {
	if _, ok := ctx.Value(callerKey).(*callerHolder); ok {
		return ctx
	}
	return context.WithValue(ctx, callerKey, &callerHolder{})
}

// CallerFromCtx returns the caller identity stored in ctx or reported to
// its holder by inner middleware.
func CallerFromCtx(ctx context.Context) (domain.Identity, bool) {
	if id, ok := IdentityFromCtx(ctx); ok {
		return id, true
	}
	h, ok := ctx.Value(callerKey).(*callerHolder)
	if !ok {
		return domain.Identity{}, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.id, h.id.UserID != ""
}

// WithIdentity stores the resolved caller identity in the context and
// reports it to the caller holder, if any.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	if h, ok := ctx.Value(callerKey).(*callerHolder); ok {
		h.mu.Lock()
		h.id = id
		h.mu.Unlock()
	}
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromCtx extracts the caller identity from the context.
// Returns false if the value is missing or has no user ID.
func IdentityFromCtx(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	if !ok || id.UserID == "" {
		return domain.Identity{}, false
	}
	return id, true
}

// UserIDFromCtx extracts the caller's user ID from the context.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := IdentityFromCtx(ctx)
	if !ok {
		return "", false
	}
	return id.UserID, true
}

// IsLandlordCtx reports whether the caller is a landlord.
func IsLandlordCtx(ctx context.Context) bool {
	id, ok := IdentityFromCtx(ctx)
	return ok && id.Role.IsLandlord()
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
