package team

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/search-team-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTeamStore struct{ mock.Mock }

func (m *mockTeamStore) Create(ctx context.Context, t *domain.Team) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockTeamStore) Get(ctx context.Context, teamID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if t, _ := args.Get(0).(*domain.Team); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTeamStore) All(ctx context.Context) ([]domain.Team, error) {
	args := m.Called(ctx)
	teams, _ := args.Get(0).([]domain.Team)
	return teams, args.Error(1)
}
func (m *mockTeamStore) Delete(ctx context.Context, teamID string) error {
	return m.Called(ctx, teamID).Error(0)
}
func (m *mockTeamStore) Update(ctx context.Context, teamID string, updates map[string]interface{}) error {
	return m.Called(ctx, teamID, updates).Error(0)
}

type mockUserLookup struct{ mock.Mock }

func (m *mockUserLookup) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreate_DenormalizesNames(t *testing.T) {
	ts, us := &mockTeamStore{}, &mockUserLookup{}
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", FullName: "Alice Smith"}, nil)
	us.On("Get", mock.Anything, "u2").Return(&domain.User{UserID: "u2", FullName: "Carol Jones"}, nil)
	ts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Team")).Return(nil)

	team, err := NewService(ServiceDeps{TeamRepo: ts, UserRepo: us}).Create(context.Background(), domain.CreateTeamRequest{
		Name: " Core ", OwnerID: "u1", TypeName: "Backend", MemberIDs: []string{"u2", "u2"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Core", team.Name)
	assert.Equal(t, "Alice Smith", team.Owner.FullName)
	assert.Equal(t, []domain.TeamMember{{UserID: "u2", Name: "Carol Jones"}}, team.Members)
	assert.Equal(t, "Backend", team.Type.Name)
	assert.False(t, team.CreatedAt.IsZero())
}

func TestCreate_UnknownMember(t *testing.T) {
	ts, us := &mockTeamStore{}, &mockUserLookup{}
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1"}, nil)
	us.On("Get", mock.Anything, "ghost").Return(nil, fmt.Errorf("user: %w", domain.ErrNotFound))

	_, err := NewService(ServiceDeps{TeamRepo: ts, UserRepo: us}).Create(context.Background(), domain.CreateTeamRequest{
		Name: "Core", OwnerID: "u1", TypeName: "Backend", MemberIDs: []string{"ghost"},
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	ts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDelete_NotFound(t *testing.T) {
	ts := &mockTeamStore{}
	ts.On("Get", mock.Anything, "t1").Return(nil, domain.ErrNotFound)

	err := NewService(ServiceDeps{TeamRepo: ts}).Delete(context.Background(), "t1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	ts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_HappyPath(t *testing.T) {
	ts := &mockTeamStore{}
	ts.On("Get", mock.Anything, "t1").Return(&domain.Team{TeamID: "t1"}, nil)
	ts.On("Delete", mock.Anything, "t1").Return(nil)

	require.NoError(t, NewService(ServiceDeps{TeamRepo: ts}).Delete(context.Background(), "t1"))
	ts.AssertExpectations(t)
}

func TestUpdate_RefreshesNamesAndKeepsCreated(t *testing.T) {
	created := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	existing := &domain.Team{TeamID: "t1", Name: "Core", CreatedAt: created,
		Owner: domain.TeamOwner{UserID: "u1", FullName: "Alice Smith"}}
	ts, us := &mockTeamStore{}, &mockUserLookup{}
	ts.On("Get", mock.Anything, "t1").Return(existing, nil).Once()
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", FullName: "Alice Smith-Jones"}, nil)
	us.On("Get", mock.Anything, "u2").Return(&domain.User{UserID: "u2", FullName: "Carol Jones"}, nil)
	var written map[string]interface{}
	ts.On("Update", mock.Anything, "t1", mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(2).(map[string]interface{}) }).
		Return(nil)
	ts.On("Get", mock.Anything, "t1").Return(&domain.Team{TeamID: "t1", Name: "Platform", CreatedAt: created}, nil)

	team, err := NewService(ServiceDeps{TeamRepo: ts, UserRepo: us}).Update(context.Background(), "t1", domain.UpdateTeamRequest{
		Name: " Platform ", OwnerID: "u1", TypeName: "Backend", Completed: true, MemberIDs: []string{"u2", "u2"},
	})

	require.NoError(t, err)
	assert.Equal(t, created, team.CreatedAt)
	assert.Equal(t, "Platform", written[domain.TeamFieldName])
	assert.Equal(t, domain.TeamOwner{UserID: "u1", FullName: "Alice Smith-Jones"}, written[domain.TeamFieldOwner])
	assert.Equal(t, []domain.TeamMember{{UserID: "u2", Name: "Carol Jones"}}, written[domain.TeamFieldMembers])
	assert.Equal(t, true, written[domain.TeamFieldCompleted])
	assert.NotContains(t, written, "created_at")
	ts.AssertExpectations(t)
}

func TestUpdate_MissingTeam(t *testing.T) {
	ts, us := &mockTeamStore{}, &mockUserLookup{}
	ts.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := NewService(ServiceDeps{TeamRepo: ts, UserRepo: us}).Update(context.Background(), "ghost", domain.UpdateTeamRequest{
		Name: "Core", OwnerID: "u1", TypeName: "Backend",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	us.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestUpdate_UnknownOwnerWritesNothing(t *testing.T) {
	ts, us := &mockTeamStore{}, &mockUserLookup{}
	ts.On("Get", mock.Anything, "t1").Return(&domain.Team{TeamID: "t1"}, nil)
	us.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := NewService(ServiceDeps{TeamRepo: ts, UserRepo: us}).Update(context.Background(), "t1", domain.UpdateTeamRequest{
		Name: "Core", OwnerID: "ghost", TypeName: "Backend",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	ts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
