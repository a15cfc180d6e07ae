// Package mail integrates the order tool with the shop owner's mailbox:
// Gmail as the source of marketplace notifications, SendGrid for outbound
// operational notices.
package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/infrastructure/config"
)

const notificationSubject = "【注文管理】新着注文のお知らせ"

// SendGridSender implements order.NotificationSender using SendGrid
type SendGridSender struct {
	apiKey    string
	fromEmail string
	fromName  string
	toEmail   string
	logger    *zap.Logger
}

// NewSendGridSender creates a new SendGridSender
func NewSendGridSender(cfg config.SendGridConfig, logger *zap.Logger) (*SendGridSender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sendgrid api key is empty")
	}
	if cfg.FromEmail == "" || cfg.ToEmail == "" {
		return nil, fmt.Errorf("sendgrid from and to addresses are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendGridSender{
		apiKey:    cfg.APIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		toEmail:   cfg.ToEmail,
		logger:    logger,
	}, nil
}

// Notify delivers an operational notification to the shop owner
func (s *SendGridSender) Notify(_ context.Context, message string) error {
	from := sgmail.NewEmail(s.fromName, s.fromEmail)
	to := sgmail.NewEmail("", s.toEmail)
	email := sgmail.NewSingleEmail(from, notificationSubject, to,
		message, fmt.Sprintf("<pre>%s</pre>", message))

	response, err := sendgrid.NewSendClient(s.apiKey).Send(email)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", response.StatusCode, response.Body)
	}

	s.logger.Info("Notification sent",
		zap.Int("status", response.StatusCode),
		zap.String("to", s.toEmail),
	)
	return nil
}

var _ order.NotificationSender = (*SendGridSender)(nil)
