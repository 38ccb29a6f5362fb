package mailersend

import (
	"context"
	"errors"

	"github.com/mailersend/mailersend-go"
	"github.com/search-team-api/internal/config"
)

// ErrNotConfigured is returned when the API key or sender address is missing.
var ErrNotConfigured = errors.New("mailersend: not configured")

// Gateway sends mail through the MailerSend HTTP API.
type Gateway struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewGateway(cfg *config.Config) *Gateway {
	g := &Gateway{
		enabled: cfg.MailerSendAPIKey != "" && cfg.MailerSendFromEmail != "",
		from: mailersend.From{
			Name:  cfg.MailerSendFromName,
			Email: cfg.MailerSendFromEmail,
		},
	}
	if g.enabled {
		g.client = mailersend.NewMailersend(cfg.MailerSendAPIKey)
	}
	return g
}

func (g *Gateway) Send(ctx context.Context, to []string, subject, body string) error {
	if !g.enabled {
		return ErrNotConfigured
	}
	if len(to) == 0 {
		return errors.New("mailersend: no recipients")
	}
	recipients := make([]mailersend.Recipient, len(to))
	for i, addr := range to {
		recipients[i] = mailersend.Recipient{Email: addr}
	}

	msg := g.client.Email.NewMessage()
	msg.SetFrom(g.from)
	msg.SetRecipients(recipients)
	msg.SetSubject(subject)
	msg.SetText(body)

	_, err := g.client.Email.Send(ctx, msg)
	return err
}
