package search

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/search-team-api/internal/domain"
	"github.com/search-team-api/internal/metrics"
	"github.com/search-team-api/internal/pkg/filter"
)

type Service interface {
	SearchTeams(ctx context.Context, req domain.TeamSearchRequest) ([]domain.TeamSummary, error)
	SearchUsers(ctx context.Context, req domain.UserSearchRequest) ([]domain.User, error)
}

// teamSource and userSource return every record in creation order.
type teamSource interface {
	All(ctx context.Context) ([]domain.Team, error)
}

type userSource interface {
	All(ctx context.Context) ([]domain.User, error)
}

type service struct {
	teams teamSource
	users userSource
}

type ServiceDeps struct {
	TeamRepo teamSource
	UserRepo userSource
}

func NewService(deps ServiceDeps) Service {
	return &service{teams: deps.TeamRepo, users: deps.UserRepo}
}

// teamCandidate is the read-only view of a team that criteria inspect.
type teamCandidate struct {
	CreatedAt   time.Time
	Completed   bool
	Name        string
	OwnerName   string
	TypeName    string
	MemberNames []string
	summary     domain.TeamSummary
}

func project(t domain.Team) teamCandidate {
	names := make([]string, len(t.Members))
	for i, m := range t.Members {
		names[i] = m.Name
	}
	return teamCandidate{
		CreatedAt:   t.CreatedAt,
		Completed:   t.Completed,
		Name:        t.Name,
		OwnerName:   t.Owner.FullName,
		TypeName:    t.Type.Name,
		MemberNames: names,
		summary:     domain.TeamSummary{TeamID: t.TeamID, Name: t.Name, Owner: t.Owner},
	}
}

// teamCriteria builds the AND chain for a team search. Within the users,
// team types and members criteria any entry may match.
func teamCriteria(req domain.TeamSearchRequest) *filter.Chain[teamCandidate] {
	users := filter.NonBlank(req.Users)
	types := filter.NonBlank(req.TeamTypes)
	members := filter.NonBlank(req.Members)
	name := ""
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}

	c := new(filter.Chain[teamCandidate])
	c.When(req.Start != nil, "start", func(t teamCandidate) bool {
		return !t.CreatedAt.Before(*req.Start)
	}).When(req.Finish != nil, "finish", func(t teamCandidate) bool {
		return !t.CreatedAt.After(*req.Finish)
	}).When(req.Completed != nil, "completed", func(t teamCandidate) bool {
		return t.Completed == *req.Completed
	}).When(name != "", "name", func(t teamCandidate) bool {
		return filter.ContainsFold(t.Name, name)
	}).When(len(users) > 0, "users", func(t teamCandidate) bool {
		return filter.AnyContainsFold(t.OwnerName, users)
	}).When(len(types) > 0, "team_types", func(t teamCandidate) bool {
		return filter.AnyContainsFold(t.TypeName, types)
	}).When(len(members) > 0, "members", func(t teamCandidate) bool {
		return slices.ContainsFunc(t.MemberNames, func(m string) bool {
			return filter.AnyContainsFold(m, members)
		})
	})
	return c
}

func userCriteria(req domain.UserSearchRequest) *filter.Chain[domain.User] {
	q := strings.TrimSpace(req.SearchValue)
	c := new(filter.Chain[domain.User])
	c.When(q != "", "login", func(u domain.User) bool {
		return filter.ContainsFold(u.Login, q)
	})
	return c
}

func (s *service) SearchTeams(ctx context.Context, req domain.TeamSearchRequest) ([]domain.TeamSummary, error) {
	if req.Start != nil && req.Finish != nil && req.Start.After(*req.Finish) {
		return nil, fmt.Errorf("start must not be after finish: %w", domain.ErrBadRequest)
	}
	teams, err := s.teams.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	chain := teamCriteria(req)
	out := []domain.TeamSummary{}
	for c := range chain.Filter(candidates(teams)) {
		out = append(out, c.summary)
	}
	metrics.SearchResultsReturned.WithLabelValues("teams").Observe(float64(len(out)))
	return out, nil
}

func (s *service) SearchUsers(ctx context.Context, req domain.UserSearchRequest) ([]domain.User, error) {
	if req.From < 0 || req.Count < 0 {
		return nil, fmt.Errorf("from and count must not be negative: %w", domain.ErrBadRequest)
	}
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	out, err := filter.Paginate(userCriteria(req).Filter(slices.Values(users)), req.From, req.Count)
	if err != nil {
		return nil, err
	}
	metrics.SearchResultsReturned.WithLabelValues("users").Observe(float64(len(out)))
	return out, nil
}

func candidates(teams []domain.Team) iter.Seq[teamCandidate] {
	return func(yield func(teamCandidate) bool) {
		for _, t := range teams {
			if !yield(project(t)) {
				return
			}
		}
	}
}
