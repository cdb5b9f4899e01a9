package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/clubstate/internal/adapters/http/dto"
)

// Recovery returns middleware that turns a panic in a downstream handler into
// an RFC 9457 500 response. The panic value and stack are logged together
// with the X-Caller header and request ID, since a panic on a command route
// may leave the operator checking whether the record was written. Nothing is
// written to the client once the handler has started its response.
//
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("caller", r.Header.Get(HeaderCaller)),
					slog.String("request_id", rw.Header().Get(headerRequestID)),
					slog.Bool("response_started", rw.headerWritten),
				)

				if !rw.headerWritten {
					dto.WriteProblem(rw, r, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
