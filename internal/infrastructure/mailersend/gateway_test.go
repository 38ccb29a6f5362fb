package mailersend

import (
	"context"
	"testing"

	"github.com/search-team-api/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestGateway_DisabledWithoutCredentials(t *testing.T) {
	g := NewGateway(&config.Config{MailerSendFromEmail: "noreply@example.com"})

	assert.False(t, g.enabled)
	assert.ErrorIs(t, g.Send(context.Background(), []string{"a@example.com"}, "s", "b"), ErrNotConfigured)
}

func TestGateway_EnabledWithCredentials(t *testing.T) {
	g := NewGateway(&config.Config{MailerSendAPIKey: "key", MailerSendFromEmail: "noreply@example.com", MailerSendFromName: "Search Team"})

	assert.True(t, g.enabled)
	assert.NotNil(t, g.client)
	assert.Equal(t, "Search Team", g.from.Name)
	assert.Error(t, g.Send(context.Background(), nil, "s", "b"))
}
