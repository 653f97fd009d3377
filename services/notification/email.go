package notification

import (
	"context"
	"fmt"

	"eduplatform/models"
	"eduplatform/services/logger"

	"gopkg.in/gomail.v2"
)

// Sender is the subset of *gomail.Dialer the email channel needs.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EmailChannel sends notifications over SMTP. Without a sender it only logs.
type EmailChannel struct {
	sender Sender
	from   string
	logger logger.Logger
}

func NewEmailChannel(cfg EmailConfig, log logger.Logger) *EmailChannel {
	var sender Sender
	if cfg.Host != "" {
		sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return NewEmailChannelWithSender(sender, cfg.From, log)
}

func NewEmailChannelWithSender(sender Sender, from string, log logger.Logger) *EmailChannel {
	return &EmailChannel{sender: sender, from: from, logger: log}
}

func (c *EmailChannel) Name() string { return ChannelEmail }

func (c *EmailChannel) Deliver(ctx context.Context, user models.User, n models.Notification) error {
	if c.sender == nil {
		c.logger.Info("email disabled, skipping notification %s for user %d", n.NotificationID, user.ID)
		return nil
	}
	if user.Email == "" {
		return fmt.Errorf("user %d has no email address", user.ID)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b := NewMessageBuilder(user, n)
	msg := gomail.NewMessage()
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", b.Subject())
	msg.SetBody("text/plain", b.Body())

	if err := c.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
