package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockGateway struct{ mock.Mock }

func (m *mockGateway) Send(ctx context.Context, to []string, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type blockingGateway struct{ release chan struct{} }

func (g blockingGateway) Send(context.Context, []string, string, string) error {
	<-g.release
	return nil
}

func TestDispatcher_Success(t *testing.T) {
	gw := new(mockGateway)
	gw.On("Send", mock.Anything, []string{"a@example.com"}, "subj", "body").Return(nil)

	err := NewDispatcher(gw, time.Second).Send(context.Background(), []string{"a@example.com"}, "subj", "body")

	assert.NoError(t, err)
	gw.AssertExpectations(t)
}

func TestDispatcher_GatewayError(t *testing.T) {
	gw := new(mockGateway)
	boom := errors.New("relay refused")
	gw.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(boom)

	err := NewDispatcher(gw, time.Second).Send(context.Background(), []string{"a@example.com"}, "s", "b")

	assert.ErrorIs(t, err, boom)
}

func TestDispatcher_ReturnsOnTimeoutEvenIfGatewayBlocks(t *testing.T) {
	gw := blockingGateway{release: make(chan struct{})}
	defer close(gw.release)

	start := time.Now()
	err := NewDispatcher(gw, 20*time.Millisecond).Send(context.Background(), []string{"a@example.com"}, "s", "b")

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLogGateway_NeverFails(t *testing.T) {
	assert.NoError(t, LogGateway{}.Send(context.Background(), []string{"a@example.com"}, "s", "b"))
}
