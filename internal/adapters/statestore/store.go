// Package statestore persists the single club record on top of a byte-level
// key/value backend. It owns the record's encoding and serializes every
// access so that each command is a complete load-check-apply-save step.
package statestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jsamuelsen11/clubstate/internal/domain"
	"github.com/jsamuelsen11/clubstate/internal/domain/club"
	"github.com/jsamuelsen11/clubstate/internal/platform/codec"
	"github.com/jsamuelsen11/clubstate/internal/ports"
)

// Key is the fixed storage key of the club record.
const Key = "config"

// Compile-time interface check.
var _ ports.StateStore = (*Store)(nil)

// Store implements ports.StateStore.
type Store struct {
	mu    sync.Mutex
	kv    ports.KVStore
	codec codec.Codec
}

// New creates a state store over kv using c for the record encoding.
func New(kv ports.KVStore, c codec.Codec) *Store {
	return &Store{kv: kv, codec: c}
}

// Load returns the current record.
func (s *Store) Load(ctx context.Context) (club.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// Save overwrites the record.
func (s *Store) Save(ctx context.Context, state club.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx, state)
}

// Create writes the first record. It fails if any record, readable or not,
// already exists.
func (s *Store) Create(ctx context.Context, state club.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.kv.Get(ctx, Key)
	switch {
	case err == nil:
		return domain.ErrAlreadyInitialized
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("%w: checking for existing record: %w", domain.ErrStorage, err)
	}
	return s.save(ctx, state)
}

// Update runs fn against the current record and persists its result.
// Nothing is written when fn fails.
func (s *Store) Update(ctx context.Context, fn func(club.State) (club.State, error)) (club.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return club.State{}, err
	}
	next, err := fn(current)
	if err != nil {
		return club.State{}, err
	}
	if err := s.save(ctx, next); err != nil {
		return club.State{}, err
	}
	return next, nil
}

func (s *Store) load(ctx context.Context) (club.State, error) {
	data, err := s.kv.Get(ctx, Key)
	if errors.Is(err, domain.ErrNotFound) {
		return club.State{}, domain.ErrUninitialized
	}
	if err != nil {
		return club.State{}, storageError("reading record", err)
	}

	var rec record
	if err := s.codec.Unmarshal(data, &rec); err != nil {
		return club.State{}, fmt.Errorf("%w: %s: %w", domain.ErrCorrupted, s.codec.Name(), err)
	}
	state, err := rec.toState()
	if err != nil {
		return club.State{}, fmt.Errorf("%w: %w", domain.ErrCorrupted, err)
	}
	return state, nil
}

func (s *Store) save(ctx context.Context, state club.State) error {
	data, err := s.codec.Marshal(fromState(state))
	if err != nil {
		return fmt.Errorf("%w: encoding record: %w", domain.ErrStorage, err)
	}
	if err := s.kv.Put(ctx, Key, data); err != nil {
		return storageError("writing record", err)
	}
	return nil
}

// storageError tags backend failures with ErrStorage unless they already
// carry a more specific classification or come from the caller's context.
func storageError(action string, err error) error {
	if errors.Is(err, domain.ErrUnavailable) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", action, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, action, err)
}

// record is the persisted shape. Field names follow the query responses; the
// CBOR codec reads the same json tags.
type record struct {
	Count            int32    `json:"count"`
	XFactor          int32    `json:"x_factor"`
	MembersOnlyCount int32    `json:"members_only_count"`
	Owner            string   `json:"owner"`
	MembersList      []string `json:"members_list"`
	WaitingList      []string `json:"waiting_list"`
}

func fromState(s club.State) record {
	return record{
		Count:            s.Count,
		XFactor:          s.XFactor,
		MembersOnlyCount: s.MembersOnlyCount,
		Owner:            s.Owner.String(),
		MembersList:      identitiesToStrings(s.Members),
		WaitingList:      identitiesToStrings(s.WaitingList),
	}
}

func (r record) toState() (club.State, error) {
	if strings.TrimSpace(r.Owner) == "" {
		return club.State{}, errors.New("owner is missing")
	}
	return club.State{
		Count:            r.Count,
		XFactor:          r.XFactor,
		MembersOnlyCount: r.MembersOnlyCount,
		Owner:            club.Identity(r.Owner),
		Members:          stringsToIdentities(r.MembersList),
		WaitingList:      stringsToIdentities(r.WaitingList),
	}, nil
}

func identitiesToStrings(ids []club.Identity) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func stringsToIdentities(raw []string) []club.Identity {
	out := make([]club.Identity, len(raw))
	for i, r := range raw {
		out[i] = club.Identity(r)
	}
	return out
}
