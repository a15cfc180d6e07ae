package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVariables(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"none", "こんにちは", nil},
		{"single", "{{buyer_name}} 様", []string{"buyer_name"}},
		{"multiple", "{{buyer_name}} 様、{{product_name}} をありがとうございます", []string{"buyer_name", "product_name"}},
		{"deduplicated", "{{order_id}} / {{order_id}} / {{price}}", []string{"order_id", "price"}},
		{"uppercase ignored", "{{Buyer}} {{buyer_name}}", []string{"buyer_name"}},
		{"digits ignored", "{{var1}} {{var_one}}", []string{"var_one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVariables(tt.content))
		})
	}
}

func TestNewTemplate(t *testing.T) {
	tpl, err := NewTemplate("custom-purchase_thanks", TemplateTypePurchaseThanks, "  {{buyer_name}} 様、ありがとうございます。  ")
	require.NoError(t, err)
	assert.Equal(t, "{{buyer_name}} 様、ありがとうございます。", tpl.Content, "content is trimmed")
	assert.Equal(t, []string{"buyer_name"}, tpl.Variables)
}

func TestNewTemplate_RejectsEmptyContent(t *testing.T) {
	_, err := NewTemplate("id", TemplateTypePurchaseThanks, "   ")
	assert.ErrorIs(t, err, ErrEmptyTemplateContent)
}

func TestNewTemplate_RejectsNoVariables(t *testing.T) {
	_, err := NewTemplate("id", TemplateTypeShippingNotice, "発送しました。")
	assert.ErrorIs(t, err, ErrNoTemplateVariables)
}

func TestNewTemplate_RejectsInvalidType(t *testing.T) {
	_, err := NewTemplate("id", TemplateType("refund_notice"), "{{buyer_name}}")
	assert.ErrorIs(t, err, ErrInvalidTemplateType)
}

func TestParseTemplateType(t *testing.T) {
	tt, err := ParseTemplateType("purchase_thanks")
	require.NoError(t, err)
	assert.Equal(t, TemplateTypePurchaseThanks, tt)

	_, err = ParseTemplateType("bogus")
	assert.ErrorIs(t, err, ErrInvalidTemplateType)
}

func TestDefaultTemplate(t *testing.T) {
	thanks, err := DefaultTemplate(TemplateTypePurchaseThanks)
	require.NoError(t, err)
	assert.Contains(t, thanks.Variables, "buyer_name")
	assert.Contains(t, thanks.Variables, "product_name")
	assert.Contains(t, thanks.Variables, "price")
	assert.Contains(t, thanks.Variables, "order_id")
	assert.Contains(t, thanks.Variables, "platform")

	notice, err := DefaultTemplate(TemplateTypeShippingNotice)
	require.NoError(t, err)
	assert.Contains(t, notice.Variables, "shipping_method")

	_, err = DefaultTemplate(TemplateType("bogus"))
	assert.ErrorIs(t, err, ErrInvalidTemplateType)
}
