package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/search-team-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSearchSvc struct{ mock.Mock }

func (m *mockSearchSvc) SearchTeams(ctx context.Context, req domain.TeamSearchRequest) ([]domain.TeamSummary, error) {
	args := m.Called(ctx, req)
	teams, _ := args.Get(0).([]domain.TeamSummary)
	return teams, args.Error(1)
}

func (m *mockSearchSvc) SearchUsers(ctx context.Context, req domain.UserSearchRequest) ([]domain.User, error) {
	args := m.Called(ctx, req)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

func searchRouter(svc *mockSearchSvc) http.Handler {
	h := NewSearchHandler(svc)
	r := chi.NewRouter()
	r.Post("/search/teams", h.Teams)
	r.Post("/search/users", h.Users)
	return r
}

func TestSearchTeams_DecodesCriteria(t *testing.T) {
	svc := &mockSearchSvc{}
	svc.On("SearchTeams", mock.Anything, mock.MatchedBy(func(req domain.TeamSearchRequest) bool {
		return req.Completed != nil && *req.Completed && req.Start != nil &&
			len(req.Members) == 1 && req.Members[0] == "carol"
	})).Return([]domain.TeamSummary{{TeamID: "t1", Name: "TeamA"}}, nil)

	body := `{"start":"2024-01-01T00:00:00Z","completed":true,"members":["carol"]}`
	req := httptest.NewRequest(http.MethodPost, "/search/teams", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	searchRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeBody[TeamsEnvelope](t, rec)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "TeamA", env.Data[0].Name)
}

func TestSearchTeams_EmptyBodyMatchesAll(t *testing.T) {
	svc := &mockSearchSvc{}
	svc.On("SearchTeams", mock.Anything, domain.TeamSearchRequest{}).Return([]domain.TeamSummary{}, nil)

	rec := do(t, searchRouter(svc), http.MethodPost, "/search/teams", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestSearchTeams_InvertedWindowIs400(t *testing.T) {
	svc := &mockSearchSvc{}
	svc.On("SearchTeams", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("start must not be after finish: %w", domain.ErrBadRequest))

	rec := do(t, searchRouter(svc), http.MethodPost, "/search/teams", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchUsers(t *testing.T) {
	svc := &mockSearchSvc{}
	req := domain.UserSearchRequest{SearchValue: "alice", Count: 10}
	svc.On("SearchUsers", mock.Anything, req).Return([]domain.User{{Login: "alice"}, {Login: "bob_alice"}}, nil)

	rec := do(t, searchRouter(svc), http.MethodPost, "/search/users", req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[UsersEnvelope](t, rec).Data, 2)
}

func TestSearchUsers_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/search/users", bytes.NewBufferString(`{"count":"ten"}`))
	rec := httptest.NewRecorder()
	searchRouter(&mockSearchSvc{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
