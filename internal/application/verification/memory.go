package verification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/search-team-api/internal/domain"
	"github.com/search-team-api/internal/logger"
)

type slotKey struct {
	subject string
	purpose domain.Purpose
}

// MemoryRecords is a process-local Records backend.
type MemoryRecords struct {
	mu    sync.Mutex
	slots map[slotKey]domain.VerificationCode
}

func NewMemoryRecords() *MemoryRecords {
	return &MemoryRecords{slots: make(map[slotKey]domain.VerificationCode)}
}

func (m *MemoryRecords) Get(_ context.Context, subjectKey string, purpose domain.Purpose) (*domain.VerificationCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.slots[slotKey{subjectKey, purpose}]
	if !ok {
		return nil, fmt.Errorf("verification code: %w", domain.ErrNotFound)
	}
	return &rec, nil
}

func (m *MemoryRecords) Swap(_ context.Context, rec *domain.VerificationCode, prevVersion int64) error {
	k := slotKey{rec.SubjectKey, rec.Purpose}
	m.mu.Lock()
	defer m.mu.Unlock()
	var cur int64
	if existing, ok := m.slots[k]; ok {
		cur = existing.Version
	}
	if cur != prevVersion {
		return fmt.Errorf("verification code version %d, expected %d: %w", cur, prevVersion, domain.ErrConflict)
	}
	m.slots[k] = *rec
	return nil
}

// Sweep drops records whose retention window ended before now and returns
// how many were removed.
func (m *MemoryRecords) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, rec := range m.slots {
		if rec.PurgeAt > 0 && now.Unix() >= rec.PurgeAt {
			delete(m.slots, k)
			n++
		}
	}
	return n
}

// RunJanitor sweeps every interval until ctx is done.
func (m *MemoryRecords) RunJanitor(ctx context.Context, interval time.Duration, now func() time.Time) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Sweep(now()); n > 0 {
				logger.Log.WithField("purged", n).Debug("verification codes purged")
			}
		}
	}
}
