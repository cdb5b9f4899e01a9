package middleware

import (
	"net/http"
	"slices"
)

// Chain folds middlewares into one, outermost first:
//
//	Chain(Recovery(logger), RequestID(), Logging(logger))(h)
//
// serves a request as Recovery(RequestID(Logging(h))). cmd/server builds the
// global pipeline with it. An empty Chain returns the handler unchanged.
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		for _, mw := range slices.Backward(middlewares) {
			h = mw(h)
		}
		return h
	}
}
