package smtp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestGateway_BuildsMessage(t *testing.T) {
	var sent []*gomail.Message
	g := &Gateway{from: "noreply@example.com", send: func(msgs ...*gomail.Message) error {
		sent = append(sent, msgs...)
		return nil
	}}

	err := g.Send(context.Background(), []string{"a@example.com", "b@example.com"}, "password change", "code")

	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"noreply@example.com"}, sent[0].GetHeader("From"))
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sent[0].GetHeader("To"))
	assert.Equal(t, []string{"password change"}, sent[0].GetHeader("Subject"))
}

func TestGateway_PropagatesDialError(t *testing.T) {
	boom := errors.New("connection refused")
	g := &Gateway{send: func(...*gomail.Message) error { return boom }}

	assert.ErrorIs(t, g.Send(context.Background(), []string{"a@example.com"}, "s", "b"), boom)
}

func TestGateway_RejectsEmptyRecipientsAndCancelledContext(t *testing.T) {
	called := false
	g := &Gateway{send: func(...*gomail.Message) error { called = true; return nil }}

	assert.Error(t, g.Send(context.Background(), nil, "s", "b"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, g.Send(ctx, []string{"a@example.com"}, "s", "b"), context.Canceled)
	assert.False(t, called)
}
