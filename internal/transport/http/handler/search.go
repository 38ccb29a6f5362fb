package handler

import (
	"net/http"

	"github.com/search-team-api/internal/application/search"
	"github.com/search-team-api/internal/domain"
)

// SearchHandler exposes the team and user search endpoints. Request bodies
// are optional.
type SearchHandler struct {
	svc search.Service
}

func NewSearchHandler(svc search.Service) *SearchHandler { return &SearchHandler{svc: svc} }

// Teams applies the given criteria. An empty body matches every team.
func (h *SearchHandler) Teams(w http.ResponseWriter, r *http.Request) {
	var req domain.TeamSearchRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	teams, err := h.svc.SearchTeams(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TeamsEnvelope{Data: teams})
}

// Users returns a page of matching users. An empty body has a zero count
// and so yields an empty page; callers must send count to get results.
func (h *SearchHandler) Users(w http.ResponseWriter, r *http.Request) {
	var req domain.UserSearchRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	users, err := h.svc.SearchUsers(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, UsersEnvelope{Data: users})
}
