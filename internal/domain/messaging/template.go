package messaging

import (
	"regexp"
	"strings"

	"github.com/kobo/backend/internal/domain/shared"
)

// Template domain errors
var (
	ErrInvalidTemplateType  = shared.NewDomainError("INVALID_TEMPLATE_TYPE", "Unrecognized message template type")
	ErrTemplateNotFound     = shared.NewDomainError("TEMPLATE_NOT_FOUND", "Message template not found")
	ErrEmptyTemplateContent = shared.NewDomainError("INVALID_TEMPLATE", "Template content cannot be empty")
	ErrNoTemplateVariables  = shared.NewDomainError("TEMPLATE_NO_VARIABLES", "Template must contain at least one {{variable}}")
)

// TemplateType identifies which customer message a template produces
type TemplateType string

const (
	TemplateTypePurchaseThanks TemplateType = "purchase_thanks"
	TemplateTypeShippingNotice TemplateType = "shipping_notice"
)

// ParseTemplateType parses a raw code into a TemplateType
func ParseTemplateType(code string) (TemplateType, error) {
	t := TemplateType(strings.TrimSpace(code))
	if !t.IsValid() {
		return "", ErrInvalidTemplateType
	}
	return t, nil
}

// IsValid checks if the type is a recognized value
func (t TemplateType) IsValid() bool {
	switch t {
	case TemplateTypePurchaseThanks, TemplateTypeShippingNotice:
		return true
	}
	return false
}

// String returns the type code
func (t TemplateType) String() string {
	return string(t)
}

// variablePattern matches {{name}} placeholders; names are lowercase letters
// and underscores only.
var variablePattern = regexp.MustCompile(`\{\{([a-z_]+)\}\}`)

// ExtractVariables returns the distinct placeholder names in content,
// in first-seen order.
func ExtractVariables(content string) []string {
	matches := variablePattern.FindAllStringSubmatch(content, -1)
	seen := make(map[string]struct{}, len(matches))
	var names []string
	for _, m := range matches {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Template is parametrized message text with {{variable}} placeholders.
// Every template carries at least one extractable variable.
type Template struct {
	ID        string
	Type      TemplateType
	Content   string
	Variables []string
}

// NewTemplate creates a Template, validating content and extracting variables
func NewTemplate(id string, templateType TemplateType, content string) (*Template, error) {
	if !templateType.IsValid() {
		return nil, ErrInvalidTemplateType
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyTemplateContent
	}
	variables := ExtractVariables(content)
	if len(variables) == 0 {
		return nil, ErrNoTemplateVariables
	}
	return &Template{
		ID:        id,
		Type:      templateType,
		Content:   content,
		Variables: variables,
	}, nil
}
