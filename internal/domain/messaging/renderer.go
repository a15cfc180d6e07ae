package messaging

import (
	"fmt"

	"github.com/kobo/backend/internal/domain/shared"
)

// ErrTemplateVariableUnresolved is returned by Render when the context is
// missing a binding for a placeholder
var ErrTemplateVariableUnresolved = shared.NewDomainError("TEMPLATE_VARIABLE_UNRESOLVED", "Template variable could not be resolved")

// Render substitutes {{name}} placeholders in the template with values from
// vars. It is fail-fast: every placeholder must have a binding, otherwise the
// render fails. This is the policy for real message generation; previews use
// RenderLenient instead.
func Render(t *Template, vars map[string]string) (Message, error) {
	var missing string
	result := variablePattern.ReplaceAllStringFunc(t.Content, func(token string) string {
		name := token[2 : len(token)-2]
		value, ok := vars[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return token
		}
		return value
	})
	if missing != "" {
		return Message{}, shared.NewDomainError(
			ErrTemplateVariableUnresolved.Code,
			fmt.Sprintf("Template variable {{%s}} could not be resolved", missing),
		)
	}
	return NewMessage(result), nil
}

// RenderLenient substitutes placeholders, blanking any without a binding.
// Used by template previews, which render against sample values.
func RenderLenient(content string, vars map[string]string) Message {
	result := variablePattern.ReplaceAllStringFunc(content, func(token string) string {
		name := token[2 : len(token)-2]
		return vars[name]
	})
	return NewMessage(result)
}
