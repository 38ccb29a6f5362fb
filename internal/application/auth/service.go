package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/search-team-api/internal/domain"
	"github.com/search-team-api/internal/logger"
	"github.com/search-team-api/internal/metrics"
	"github.com/search-team-api/internal/pkg/clock"
	"github.com/search-team-api/internal/pkg/validate"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	subjectPasswordReset     = "password change"
	subjectEmailConfirmation = "email confirmation"
)

type CodeRequest struct {
	Login string `json:"login" validate:"required"`
}

type ResetPasswordRequest struct {
	Login    string `json:"login" validate:"required"`
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ConfirmEmailRequest struct {
	Login string `json:"login" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

// IssueResult describes an issued code without revealing it. Warning is set
// when the code was stored but the notification could not be delivered;
// the code stays valid and the caller may request delivery again.
// Concealed results must be presented identically whether or not the
// account exists.
type IssueResult struct {
	Login     string
	Purpose   domain.Purpose
	ExpiresAt *time.Time
	Warning   *domain.DeliveryWarning
	Concealed bool
}

type Service interface {
	RequestPasswordReset(ctx context.Context, login string) (*IssueResult, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (*domain.User, error)
	RequestEmailConfirmation(ctx context.Context, login string) (*IssueResult, error)
	ConfirmEmail(ctx context.Context, req ConfirmEmailRequest) (*domain.User, error)
}

type accountStore interface {
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	UpdatePassword(ctx context.Context, login, passwordHash string) error
	UpdateEmailVerified(ctx context.Context, login string, verified bool) error
}

type codeStore interface {
	Issue(ctx context.Context, subjectKey string, purpose domain.Purpose) (*domain.VerificationCode, error)
	Redeem(ctx context.Context, subjectKey string, purpose domain.Purpose, presented string) error
	MarkDelivered(ctx context.Context, subjectKey string, purpose domain.Purpose, code string) error
}

type notifier interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

type service struct {
	accounts         accountStore
	codes            codeStore
	notifier         notifier
	clock            clock.Clock
	concealAccounts  bool
	resetPasswordURL string
	confirmEmailURL  string
}

type ServiceDeps struct {
	Accounts accountStore
	Codes    codeStore
	Notifier notifier
	Clock    clock.Clock
	// ConcealUnknownAccounts answers code requests for unknown logins the
	// same way as for known ones and reports unknown logins on redemption
	// as CODE_NOT_FOUND.
	ConcealUnknownAccounts bool
	ResetPasswordURL       string
	ConfirmEmailURL        string
}

func NewService(deps ServiceDeps) Service {
	c := deps.Clock
	if c == nil {
		c = clock.System()
	}
	return &service{
		accounts:         deps.Accounts,
		codes:            deps.Codes,
		notifier:         deps.Notifier,
		clock:            c,
		concealAccounts:  deps.ConcealUnknownAccounts,
		resetPasswordURL: deps.ResetPasswordURL,
		confirmEmailURL:  deps.ConfirmEmailURL,
	}
}

func (s *service) RequestPasswordReset(ctx context.Context, login string) (*IssueResult, error) {
	return s.issue(ctx, login, domain.PurposePasswordReset, subjectPasswordReset, s.resetPasswordURL)
}

func (s *service) RequestEmailConfirmation(ctx context.Context, login string) (*IssueResult, error) {
	return s.issue(ctx, login, domain.PurposeEmailConfirmation, subjectEmailConfirmation, s.confirmEmailURL)
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*domain.User, error) {
	if err := validate.CheckPassword(req.Password); err != nil {
		return nil, err
	}
	u, err := s.redeem(ctx, req.Login, domain.PurposePasswordReset, req.Code)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.UpdatePassword(ctx, u.Login, string(hash)); err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = s.clock.Now()
	logger.Log.WithField("login", u.Login).Info("password reset")
	return u, nil
}

func (s *service) ConfirmEmail(ctx context.Context, req ConfirmEmailRequest) (*domain.User, error) {
	u, err := s.redeem(ctx, req.Login, domain.PurposeEmailConfirmation, req.Code)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.UpdateEmailVerified(ctx, u.Login, true); err != nil {
		return nil, fmt.Errorf("update email verified: %w", err)
	}
	u.EmailVerified = true
	u.UpdatedAt = s.clock.Now()
	logger.Log.WithField("login", u.Login).Info("email confirmed")
	return u, nil
}

// issue looks up the account, stores a fresh code and hands it to the
// notifier. A delivery failure never undoes the issuance.
func (s *service) issue(ctx context.Context, login string, purpose domain.Purpose, subject, baseURL string) (*IssueResult, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, fmt.Errorf("login required: %w", domain.ErrBadRequest)
	}
	u, err := s.lookup(ctx, login)
	if errors.Is(err, domain.ErrAccountNotFound) && s.concealAccounts {
		logger.Log.WithFields(logrus.Fields{"login": login, "purpose": purpose}).Info("code requested for unknown account")
		return &IssueResult{Login: login, Purpose: purpose, Concealed: true}, nil
	}
	if err != nil {
		return nil, err
	}
	if err := validate.CheckEmail(u.Email); err != nil {
		return nil, err
	}

	vc, err := s.codes.Issue(ctx, u.Login, purpose)
	if err != nil {
		return nil, err
	}
	metrics.CodesIssuedTotal.WithLabelValues(string(purpose)).Inc()

	res := &IssueResult{Login: u.Login, Purpose: purpose, ExpiresAt: &vc.ExpiresAt, Concealed: s.concealAccounts}
	log := logger.Log.WithFields(logrus.Fields{"login": u.Login, "purpose": purpose})

	if err := s.notifier.Send(ctx, []string{u.Email}, subject, messageBody(vc.Code, baseURL, u.Login)); err != nil {
		log.WithError(err).Warn("verification code issued but not delivered")
		res.Warning = &domain.DeliveryWarning{Err: err}
		return res, nil
	}
	if err := s.codes.MarkDelivered(ctx, u.Login, purpose, vc.Code); err != nil {
		log.WithError(err).Warn("failed to mark verification code delivered")
	}
	log.Info("verification code issued")
	return res, nil
}

// redeem resolves the account and consumes the presented code. Nothing is
// mutated on failure.
func (s *service) redeem(ctx context.Context, login string, purpose domain.Purpose, code string) (*domain.User, error) {
	u, err := s.lookup(ctx, strings.TrimSpace(login))
	if errors.Is(err, domain.ErrAccountNotFound) && s.concealAccounts {
		err = domain.ErrCodeNotFound
	}
	if err != nil {
		countRedemption(purpose, err)
		return nil, err
	}
	err = s.codes.Redeem(ctx, u.Login, purpose, code)
	countRedemption(purpose, err)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) lookup(ctx context.Context, login string) (*domain.User, error) {
	u, err := s.accounts.GetByLogin(ctx, login)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return u, nil
}

func countRedemption(purpose domain.Purpose, err error) {
	result := "ok"
	var ce *domain.CredentialError
	switch {
	case err == nil:
	case errors.As(err, &ce):
		result = string(ce.Kind)
	default:
		result = "error"
	}
	metrics.CodeRedemptionsTotal.WithLabelValues(string(purpose), result).Inc()
}

// messageBody carries the code and a link that pre-fills it.
func messageBody(code, baseURL, login string) string {
	var b strings.Builder
	b.WriteString("Your verification code: ")
	b.WriteString(code)
	if baseURL != "" {
		q := url.Values{"login": {login}, "code": {code}}
		b.WriteString("\n\nOr follow this link: ")
		b.WriteString(baseURL)
		if strings.Contains(baseURL, "?") {
			b.WriteString("&")
		} else {
			b.WriteString("?")
		}
		b.WriteString(q.Encode())
	}
	return b.String()
}
