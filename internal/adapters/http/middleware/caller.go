package middleware

import (
	"context"
	"net/http"

	"github.com/jsamuelsen11/clubstate/internal/adapters/http/dto"
	"github.com/jsamuelsen11/clubstate/internal/domain/club"
)

// HeaderCaller carries the authenticated identity of the party invoking a
// command. It is set by the gateway in front of the service.
const HeaderCaller = "X-Caller"

type callerKey struct{}

// WithCaller returns a new context with the caller identity stored in it.
func WithCaller(ctx context.Context, id club.Identity) context.Context {
	return context.WithValue(ctx, callerKey{}, id)
}

// CallerFromContext extracts the caller identity from the context.
func CallerFromContext(ctx context.Context) (club.Identity, bool) {
	id, ok := ctx.Value(callerKey{}).(club.Identity)
	return id, ok
}

// Caller returns middleware that parses the X-Caller header into a
// club.Identity and stores it in the request context. Requests with a missing
// or malformed caller are rejected with 400 before reaching the handler.
func Caller() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := club.ParseIdentity("caller", r.Header.Get(HeaderCaller))
			if err != nil {
				dto.WriteErrorResponse(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), id)))
		})
	}
}
