package messaging

import (
	"context"
	"strings"

	"github.com/kobo/backend/internal/domain/messaging"
)

// previewVars are the fixed sample values templates preview against
var previewVars = map[string]string{
	"buyer_name":      "山田 太郎",
	"product_name":    "ハンドメイドアクセサリー",
	"price":           "¥2,500",
	"order_id":        "ORD-001",
	"platform":        "minne",
	"shipping_method": "クリックポスト(日本郵便)",
	"tracking_number": "1234-5678-9012",
}

// TemplateService handles message template editing
type TemplateService struct {
	templateRepo messaging.TemplateRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo messaging.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// GetByType retrieves the saved template for a type
func (s *TemplateService) GetByType(ctx context.Context, rawType string) (*TemplateResponse, error) {
	templateType, err := messaging.ParseTemplateType(rawType)
	if err != nil {
		return nil, err
	}
	tpl, err := s.templateRepo.FindByType(ctx, templateType)
	if err != nil {
		return nil, err
	}
	response := ToTemplateResponse(tpl)
	return &response, nil
}

// Update replaces the content of the template for a type. Variables are
// re-extracted from the new content; the template ID is preserved when one
// is already saved.
func (s *TemplateService) Update(ctx context.Context, rawType string, req UpdateTemplateRequest) (*TemplateResponse, error) {
	templateType, err := messaging.ParseTemplateType(rawType)
	if err != nil {
		return nil, err
	}

	id := "custom-" + templateType.String()
	if existing, err := s.templateRepo.FindByType(ctx, templateType); err == nil {
		id = existing.ID
	}

	tpl, err := messaging.NewTemplate(id, templateType, req.Content)
	if err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		return nil, err
	}

	response := ToTemplateResponse(tpl)
	return &response, nil
}

// ResetToDefault restores the built-in template for a type
func (s *TemplateService) ResetToDefault(ctx context.Context, rawType string) (*TemplateResponse, error) {
	templateType, err := messaging.ParseTemplateType(rawType)
	if err != nil {
		return nil, err
	}
	tpl, err := s.templateRepo.ResetToDefault(ctx, templateType)
	if err != nil {
		return nil, err
	}
	response := ToTemplateResponse(tpl)
	return &response, nil
}

// Preview renders template content against fixed sample values. Unknown
// variables render blank instead of failing, so drafts can be previewed
// before they are complete. Empty content previews the saved template.
func (s *TemplateService) Preview(ctx context.Context, rawType, content string) (*PreviewResponse, error) {
	templateType, err := messaging.ParseTemplateType(rawType)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		tpl, err := s.templateRepo.FindByType(ctx, templateType)
		if err != nil {
			return nil, err
		}
		content = tpl.Content
	}

	msg := messaging.RenderLenient(content, previewVars)
	return &PreviewResponse{
		Type: templateType.String(),
		Text: msg.String(),
	}, nil
}
