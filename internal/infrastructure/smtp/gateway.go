package smtp

import (
	"context"
	"errors"

	"github.com/search-team-api/internal/config"
	"gopkg.in/gomail.v2"
)

// Gateway sends plain-text mail through an SMTP relay.
type Gateway struct {
	from string
	send func(msgs ...*gomail.Message) error
}

func NewGateway(cfg *config.Config) *Gateway {
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return &Gateway{from: cfg.SMTPFrom, send: d.DialAndSend}
}

func (g *Gateway) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return errors.New("smtp: no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return g.send(newMessage(g.from, to, subject, body))
}

func newMessage(from string, to []string, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}
