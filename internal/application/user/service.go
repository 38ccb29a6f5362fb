package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/search-team-api/internal/domain"
	"github.com/search-team-api/internal/logger"
	"github.com/search-team-api/internal/pkg/id"
	"github.com/search-team-api/internal/pkg/validate"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) error
	UpdateRole(ctx context.Context, userID, role string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
}

type userStore interface {
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type service struct {
	repo userStore
	now  func() time.Time
}

type ServiceDeps struct {
	UserRepo userStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo: deps.UserRepo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an account with the default role. Password and email
// go through the same policy as the reset flow.
func (s *service) Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" {
		return nil, fmt.Errorf("login required: %w", domain.ErrBadRequest)
	}
	if err := validate.CheckPassword(req.Password); err != nil {
		return nil, err
	}
	if err := validate.CheckEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, s.repo.GetByLogin, req.Login, "login already taken"); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, s.repo.GetByEmail, req.Email, "email already registered"); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := s.now()
	u := &domain.User{
		UserID:       id.NewAt(now),
		Login:        req.Login,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{"user_id": u.UserID, "login": u.Login}).Info("user registered")
	return u, nil
}

// ensureFree fails with domain.ErrConflict when value belongs to an account
// other than self. self may be empty.
func (s *service) ensureFree(ctx context.Context, find func(context.Context, string) (*domain.User, error), value, msg string, self ...string) error {
	u, err := find(ctx, value)
	switch {
	case err == nil:
		if len(self) > 0 && u.UserID == self[0] {
			return nil
		}
		return fmt.Errorf("%s: %w", msg, domain.ErrConflict)
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) error {
	if err := validate.CheckPassword(req.NewPassword); err != nil {
		return err
	}
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, userID, map[string]interface{}{domain.UserFieldPasswordHash: string(hash)})
}

func (s *service) UpdateRole(ctx context.Context, userID, role string) (*domain.User, error) {
	switch role {
	case domain.RoleAdmin, domain.RoleUser:
	default:
		return nil, fmt.Errorf("invalid role: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Update(ctx, userID, map[string]interface{}{domain.UserFieldRole: role}); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

// Update changes login, full name and email. A new email passes the same
// policy as registration, and login and email stay unique.
func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	current, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Login != nil {
		login := strings.TrimSpace(*req.Login)
		if login == "" {
			return nil, fmt.Errorf("login required: %w", domain.ErrBadRequest)
		}
		if login != current.Login {
			if err := s.ensureFree(ctx, s.repo.GetByLogin, login, "login already taken", userID); err != nil {
				return nil, err
			}
			updates[domain.UserFieldLogin] = login
		}
	}
	if req.Email != nil && *req.Email != current.Email {
		if err := validate.CheckEmail(*req.Email); err != nil {
			return nil, err
		}
		if err := s.ensureFree(ctx, s.repo.GetByEmail, *req.Email, "email already registered", userID); err != nil {
			return nil, err
		}
		updates[domain.UserFieldEmail] = *req.Email
		updates[domain.UserFieldEmailVerified] = false
	}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, fmt.Errorf("full name required: %w", domain.ErrBadRequest)
		}
		if name != current.FullName {
			updates[domain.UserFieldFullName] = name
		}
	}
	if len(updates) == 0 {
		return current, nil
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{"user_id": userID, "fields": len(updates)}).Info("user updated")
	return s.repo.Get(ctx, userID)
}
