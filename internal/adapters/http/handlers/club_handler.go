// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/clubstate/internal/adapters/http/dto"
	"github.com/jsamuelsen11/clubstate/internal/domain/club"
	"github.com/jsamuelsen11/clubstate/internal/ports"
)

// ClubHandler exposes the club record's instantiate, execute, and query
// operations over HTTP.
type ClubHandler struct {
	svc ports.ClubService
}

// NewClubHandler creates a new ClubHandler with the given service port.
func NewClubHandler(svc ports.ClubService) *ClubHandler {
	return &ClubHandler{svc: svc}
}

// Instantiate handles POST /api/v1/club.
func (h *ClubHandler) Instantiate(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req dto.InstantiateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.Instantiate(r.Context(), caller, req.Params()); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Execute handles POST /api/v1/club/execute.
func (h *ClubHandler) Execute(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req dto.ExecuteRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	cmd, err := req.Command()
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.Execute(r.Context(), caller, cmd); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Query handles POST /api/v1/club/query.
func (h *ClubHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req dto.QueryRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	kind, err := req.Query()
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	h.answer(w, r, kind)
}

// GetCount handles GET /api/v1/club/count.
func (h *ClubHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, club.QueryCount)
}

// GetXFactor handles GET /api/v1/club/x-factor.
func (h *ClubHandler) GetXFactor(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, club.QueryXFactor)
}

// GetMembersOnlyCount handles GET /api/v1/club/members-only-count.
func (h *ClubHandler) GetMembersOnlyCount(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, club.QueryMembersOnlyCount)
}

// GetMemberList handles GET /api/v1/club/members.
func (h *ClubHandler) GetMemberList(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, club.QueryMemberList)
}

// GetWaitingList handles GET /api/v1/club/waiting-list.
func (h *ClubHandler) GetWaitingList(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, club.QueryWaitingList)
}

func (h *ClubHandler) answer(w http.ResponseWriter, r *http.Request, kind club.QueryKind) {
	a, err := h.svc.Query(r.Context(), kind)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAnswerResponse(a))
}
