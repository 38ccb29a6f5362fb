package team

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/search-team-api/internal/domain"
	"github.com/search-team-api/internal/logger"
	"github.com/search-team-api/internal/pkg/id"
	"github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateTeamRequest) (*domain.Team, error)
	Get(ctx context.Context, teamID string) (*domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
	Delete(ctx context.Context, teamID string) error
	Update(ctx context.Context, teamID string, req domain.UpdateTeamRequest) (*domain.Team, error)
}

type teamStore interface {
	Create(ctx context.Context, t *domain.Team) error
	Get(ctx context.Context, teamID string) (*domain.Team, error)
	All(ctx context.Context) ([]domain.Team, error)
	Delete(ctx context.Context, teamID string) error
	Update(ctx context.Context, teamID string, updates map[string]interface{}) error
}

type userLookup interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	repo  teamStore
	users userLookup
}

type ServiceDeps struct {
	TeamRepo teamStore
	UserRepo userLookup
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.TeamRepo, users: deps.UserRepo}
}

// Create stores a team with owner and member names copied from their
// accounts so searches need no joins.
func (s *service) Create(ctx context.Context, req domain.CreateTeamRequest) (*domain.Team, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name required: %w", domain.ErrBadRequest)
	}
	owner, members, err := s.resolve(ctx, req.OwnerID, req.MemberIDs)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t := &domain.Team{
		TeamID:      id.NewAt(now),
		Name:        name,
		Description: req.Description,
		Owner:       owner,
		Type:        domain.TeamType{Name: strings.TrimSpace(req.TypeName)},
		Completed:   req.Completed,
		Members:     members,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{"team_id": t.TeamID, "owner_id": owner.UserID}).Info("team created")
	return t, nil
}

// Update replaces the editable fields of a team. Owner and member names are
// copied again from their accounts so renamed users show up current.
func (s *service) Update(ctx context.Context, teamID string, req domain.UpdateTeamRequest) (*domain.Team, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name required: %w", domain.ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, teamID); err != nil {
		return nil, err
	}
	owner, members, err := s.resolve(ctx, req.OwnerID, req.MemberIDs)
	if err != nil {
		return nil, err
	}
	err = s.repo.Update(ctx, teamID, map[string]interface{}{
		domain.TeamFieldName:        name,
		domain.TeamFieldDescription: req.Description,
		domain.TeamFieldOwner:       owner,
		domain.TeamFieldType:        domain.TeamType{Name: strings.TrimSpace(req.TypeName)},
		domain.TeamFieldCompleted:   req.Completed,
		domain.TeamFieldMembers:     members,
	})
	if err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{"team_id": teamID, "owner_id": owner.UserID}).Info("team updated")
	return s.repo.Get(ctx, teamID)
}

// resolve looks up the owner and the distinct members, in request order.
func (s *service) resolve(ctx context.Context, ownerID string, memberIDs []string) (domain.TeamOwner, []domain.TeamMember, error) {
	owner, err := s.users.Get(ctx, ownerID)
	if err != nil {
		return domain.TeamOwner{}, nil, fmt.Errorf("owner: %w", err)
	}
	members := make([]domain.TeamMember, 0, len(memberIDs))
	seen := make(map[string]bool, len(memberIDs))
	for _, mid := range memberIDs {
		if seen[mid] {
			continue
		}
		seen[mid] = true
		u, err := s.users.Get(ctx, mid)
		if err != nil {
			return domain.TeamOwner{}, nil, fmt.Errorf("member %s: %w", mid, err)
		}
		members = append(members, domain.TeamMember{UserID: u.UserID, Name: u.FullName})
	}
	return domain.TeamOwner{UserID: owner.UserID, FullName: owner.FullName}, members, nil
}

func (s *service) Get(ctx context.Context, teamID string) (*domain.Team, error) {
	return s.repo.Get(ctx, teamID)
}

func (s *service) List(ctx context.Context) ([]domain.Team, error) {
	return s.repo.All(ctx)
}

func (s *service) Delete(ctx context.Context, teamID string) error {
	if _, err := s.repo.Get(ctx, teamID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, teamID)
}
