// Package verification issues and redeems one-time codes. Each
// (subject, purpose) pair owns a single versioned record; every mutation is
// a compare-and-swap against that record's version.
package verification

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/search-team-api/internal/domain"
	"github.com/search-team-api/internal/pkg/clock"
)

// maxSwapAttempts bounds CAS retries under contention for one pair.
const maxSwapAttempts = 8

// Records persists verification code slots.
// Get returns an error wrapping domain.ErrNotFound when the slot is empty.
// Swap writes rec only if the stored version equals prevVersion (0 means
// "no record yet") and returns an error wrapping domain.ErrConflict otherwise.
type Records interface {
	Get(ctx context.Context, subjectKey string, purpose domain.Purpose) (*domain.VerificationCode, error)
	Swap(ctx context.Context, rec *domain.VerificationCode, prevVersion int64) error
}

type Store struct {
	records   Records
	clock     clock.Clock
	ttl       time.Duration
	retention time.Duration
	newCode   func() string
}

type StoreDeps struct {
	Records   Records
	Clock     clock.Clock
	TTL       time.Duration
	Retention time.Duration
}

func NewStore(deps StoreDeps) *Store {
	c := deps.Clock
	if c == nil {
		c = clock.System()
	}
	return &Store{
		records:   deps.Records,
		clock:     c,
		ttl:       deps.TTL,
		retention: deps.Retention,
		newCode:   func() string { return uuid.NewString() },
	}
}

// Issue replaces the slot for (subjectKey, purpose) with a fresh code.
// Any earlier code for the pair stops being redeemable.
func (s *Store) Issue(ctx context.Context, subjectKey string, purpose domain.Purpose) (*domain.VerificationCode, error) {
	for attempt := 0; attempt < maxSwapAttempts; attempt++ {
		var prev int64
		cur, err := s.records.Get(ctx, subjectKey, purpose)
		switch {
		case err == nil:
			prev = cur.Version
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("load verification code: %w", err)
		}

		now := s.clock.Now()
		rec := &domain.VerificationCode{
			SubjectKey: subjectKey,
			Purpose:    purpose,
			Code:       s.newCode(),
			IssuedAt:   now,
			ExpiresAt:  now.Add(s.ttl),
			Version:    prev + 1,
			PurgeAt:    now.Add(s.ttl + s.retention).Unix(),
		}
		err = s.records.Swap(ctx, rec, prev)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("store verification code: %w", err)
		}
	}
	return nil, fmt.Errorf("issue verification code: too much contention: %w", domain.ErrConflict)
}

// Redeem consumes the stored code if presented matches it and it is neither
// used nor expired. Of concurrent redemptions of the same code exactly one
// succeeds; the rest see domain.ErrCodeAlreadyUsed.
func (s *Store) Redeem(ctx context.Context, subjectKey string, purpose domain.Purpose, presented string) error {
	for attempt := 0; attempt < maxSwapAttempts; attempt++ {
		cur, err := s.records.Get(ctx, subjectKey, purpose)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCodeNotFound
		}
		if err != nil {
			return fmt.Errorf("load verification code: %w", err)
		}
		if subtle.ConstantTimeCompare([]byte(cur.Code), []byte(presented)) != 1 {
			return domain.ErrCodeMismatch
		}
		if cur.Consumed {
			return domain.ErrCodeAlreadyUsed
		}
		now := s.clock.Now()
		if cur.Expired(now) {
			return domain.ErrCodeExpired
		}

		next := *cur
		next.Consumed = true
		next.ConsumedAt = &now
		next.Version = cur.Version + 1
		err = s.records.Swap(ctx, &next, cur.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("consume verification code: %w", err)
		}
	}
	return fmt.Errorf("redeem verification code: too much contention: %w", domain.ErrConflict)
}

// MarkDelivered records that code was handed to the notification gateway.
// It does nothing when the slot no longer holds code.
func (s *Store) MarkDelivered(ctx context.Context, subjectKey string, purpose domain.Purpose, code string) error {
	for attempt := 0; attempt < maxSwapAttempts; attempt++ {
		cur, err := s.records.Get(ctx, subjectKey, purpose)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load verification code: %w", err)
		}
		if cur.Code != code || cur.DeliveredAt != nil {
			return nil
		}
		now := s.clock.Now()
		next := *cur
		next.DeliveredAt = &now
		next.Version = cur.Version + 1
		err = s.records.Swap(ctx, &next, cur.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("mark verification code delivered: %w", err)
		}
	}
	return fmt.Errorf("mark delivered: too much contention: %w", domain.ErrConflict)
}

// State reports the lifecycle state of the current slot.
func (s *Store) State(ctx context.Context, subjectKey string, purpose domain.Purpose) (domain.CodeState, error) {
	cur, err := s.records.Get(ctx, subjectKey, purpose)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrCodeNotFound
	}
	if err != nil {
		return "", err
	}
	return cur.State(s.clock.Now()), nil
}
