package mail

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/infrastructure/config"
)

// orderIDPattern matches the order number line both marketplaces put in
// their notification subjects.
var orderIDPattern = regexp.MustCompile(`(?:ご注文番号|注文番号|注文ID)[::]?\s*([A-Za-z0-9][A-Za-z0-9\-]*)`)

// GmailSource implements order.EmailSource over the Gmail API. It lists
// unread marketplace notification mails and resolves each into an order ref.
type GmailSource struct {
	service    *gmail.Service
	userID     string
	query      string
	maxResults int
	logger     *zap.Logger
}

// NewGmailSource creates a Gmail-backed email source
func NewGmailSource(ctx context.Context, cfg config.GmailConfig, logger *zap.Logger) (*GmailSource, error) {
	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("gmail credentials file is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := gmail.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &GmailSource{
		service:    service,
		userID:     cfg.UserID,
		query:      cfg.Query,
		maxResults: cfg.MaxResults,
		logger:     logger,
	}, nil
}

// FetchUnreadOrderRefs lists unread notification mails matching the
// configured query. Mails that do not parse into an order ref are skipped
// and logged, not failed; they stay unread for manual inspection.
func (g *GmailSource) FetchUnreadOrderRefs(ctx context.Context, opts order.FetchOptions) ([]order.OrderRef, error) {
	maxResults := int64(g.maxResults)
	if opts.MaxResults > 0 {
		maxResults = int64(opts.MaxResults)
	}

	list, err := g.service.Users.Messages.List(g.userID).
		Q(g.query).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list gmail messages: %w", err)
	}

	refs := make([]order.OrderRef, 0, len(list.Messages))
	for _, msg := range list.Messages {
		full, err := g.service.Users.Messages.Get(g.userID, msg.Id).
			Format("metadata").
			MetadataHeaders("From", "Subject").
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get gmail message %s: %w", msg.Id, err)
		}

		from, subject := headerValues(full)
		ref, ok := ParseOrderRef(msg.Id, from, subject)
		if !ok {
			g.logger.Warn("Skipping mail that is not an order notification",
				zap.String("message_id", msg.Id),
				zap.String("from", from),
				zap.String("subject", subject),
			)
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// MarkAsRead removes the UNREAD label from a processed mail
func (g *GmailSource) MarkAsRead(ctx context.Context, messageID string) error {
	_, err := g.service.Users.Messages.Modify(g.userID, messageID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to mark gmail message %s as read: %w", messageID, err)
	}
	return nil
}

// headerValues extracts the From and Subject headers
func headerValues(msg *gmail.Message) (from, subject string) {
	if msg.Payload == nil {
		return "", ""
	}
	for _, h := range msg.Payload.Headers {
		switch h.Name {
		case "From":
			from = h.Value
		case "Subject":
			subject = h.Value
		}
	}
	return from, subject
}

// ParseOrderRef resolves a notification mail into an order ref. The platform
// comes from the sender domain, the order ID from the subject line.
func ParseOrderRef(messageID, from, subject string) (order.OrderRef, bool) {
	var platform order.Platform
	switch {
	case strings.Contains(from, "minne.com"):
		platform = order.PlatformMinne
	case strings.Contains(from, "creema.jp"):
		platform = order.PlatformCreema
	default:
		return order.OrderRef{}, false
	}

	m := orderIDPattern.FindStringSubmatch(subject)
	if m == nil {
		return order.OrderRef{}, false
	}

	return order.OrderRef{
		MessageID: messageID,
		OrderID:   m[1],
		Platform:  platform,
	}, true
}

var _ order.EmailSource = (*GmailSource)(nil)
