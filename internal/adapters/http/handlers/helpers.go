package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/clubstate/internal/adapters/http/dto"
	"github.com/jsamuelsen11/clubstate/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/clubstate/internal/domain"
	"github.com/jsamuelsen11/clubstate/internal/domain/club"
	"github.com/jsamuelsen11/clubstate/internal/platform/codec"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (64 KB).
// The largest legitimate body is an instantiation with a long member list.
const maxJSONBodyBytes = 64 << 10

var bodyCodec = codec.JSON{}

// decodeJSONBody strictly decodes the request body into dst: unknown fields
// and trailing data are rejected. On failure, it writes a 400 error response
// and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		msg := "unreadable body"
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			msg = "body too large"
		}
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": msg},
		})
		return false
	}
	if err := bodyCodec.Unmarshal(data, dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes an error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}

// requireCaller returns the identity placed in the context by
// middleware.Caller. On a route without that middleware it writes a 400
// response and returns false.
func requireCaller(w http.ResponseWriter, r *http.Request) (club.Identity, bool) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"caller": "is required"},
		})
		return "", false
	}
	return caller, true
}
