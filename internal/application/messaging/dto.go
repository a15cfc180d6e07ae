package messaging

import (
	"github.com/kobo/backend/internal/domain/messaging"
)

// UpdateTemplateRequest replaces the saved content for a template type
type UpdateTemplateRequest struct {
	Content string `json:"content" binding:"required"`
}

// TemplateResponse is a message template with its extracted variables
type TemplateResponse struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Content   string   `json:"content"`
	Variables []string `json:"variables"`
}

// MessageResponse is a generated customer message, ready to copy and paste
type MessageResponse struct {
	OrderID string `json:"order_id"`
	Type    string `json:"type"`
	Text    string `json:"text"`
}

// PreviewResponse is a template rendered against fixed sample values
type PreviewResponse struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToTemplateResponse converts a template to its response DTO
func ToTemplateResponse(t *messaging.Template) TemplateResponse {
	return TemplateResponse{
		ID:        t.ID,
		Type:      t.Type.String(),
		Content:   t.Content,
		Variables: t.Variables,
	}
}
