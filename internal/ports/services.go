package ports

import (
	"context"

	"github.com/jsamuelsen11/clubstate/internal/domain/club"
)

// ClubService defines the service port for the club state engine.
// Implemented by the application layer; called by inbound adapters (HTTP
// handlers and the operator CLI).
type ClubService interface {
	// Instantiate creates the club record with caller as owner.
	// Returns domain.ErrValidation if the parameters are malformed and
	// domain.ErrAlreadyInitialized if a record already exists.
	Instantiate(ctx context.Context, caller club.Identity, params club.InstantiateParams) error

	// Execute authorizes and applies a single command on behalf of caller.
	// Returns a *domain.AuthorizationError when the command's rule rejects
	// the caller, domain.ErrUninitialized before instantiation, and
	// domain.ErrOverflow if a counter would exceed its range. A failed
	// command leaves the persisted state unchanged.
	Execute(ctx context.Context, caller club.Identity, cmd club.Command) error

	// Query answers a read-only query. No caller is required.
	Query(ctx context.Context, kind club.QueryKind) (club.Answer, error)
}
