package http

import (
	"context"

	"github.com/search-team-api/internal/domain"
	"github.com/search-team-api/internal/pkg/clock"
	"github.com/search-team-api/internal/transport/http/handler"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	UpdatePassword(ctx context.Context, login, passwordHash string) error
	UpdateEmailVerified(ctx context.Context, login string, verified bool) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
	All(ctx context.Context) ([]domain.User, error)
}

// TeamRepository is the minimal interface the router requires from a team store.
type TeamRepository interface {
	Create(ctx context.Context, t *domain.Team) error
	Get(ctx context.Context, teamID string) (*domain.Team, error)
	All(ctx context.Context) ([]domain.Team, error)
	Delete(ctx context.Context, teamID string) error
	Update(ctx context.Context, teamID string, updates map[string]interface{}) error
}

// CodeStore is the minimal interface the router requires from the
// verification code store.
type CodeStore interface {
	Issue(ctx context.Context, subjectKey string, purpose domain.Purpose) (*domain.VerificationCode, error)
	Redeem(ctx context.Context, subjectKey string, purpose domain.Purpose, presented string) error
	MarkDelivered(ctx context.Context, subjectKey string, purpose domain.Purpose, code string) error
}

// Notifier delivers verification messages.
type Notifier interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo UserRepository
	TeamRepo TeamRepository
	Codes    CodeStore
	Notifier Notifier
	Clock    clock.Clock
	// Probes back the readiness check.
	Probes map[string]handler.Probe
}
