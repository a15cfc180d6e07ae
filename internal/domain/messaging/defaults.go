package messaging

// Built-in default template content per type. ResetToDefault restores these
// regardless of what was previously saved.
const (
	defaultPurchaseThanksContent = `{{buyer_name}} 様

この度は{{platform}}にて「{{product_name}}」をご購入いただき、誠にありがとうございます。

ご注文番号: {{order_id}}
ご注文金額: {{price}}

心を込めて制作した作品です。丁寧に梱包してお届けいたしますので、発送まで今しばらくお待ちくださいませ。`

	defaultShippingNoticeContent = `{{buyer_name}} 様

ご注文いただいた「{{product_name}}」を本日発送いたしました。

ご注文番号: {{order_id}}
配送方法: {{shipping_method}}

お手元に届くまで今しばらくお待ちください。この度は誠にありがとうございました。`
)

// DefaultTemplate returns the built-in template for the given type
func DefaultTemplate(templateType TemplateType) (*Template, error) {
	switch templateType {
	case TemplateTypePurchaseThanks:
		return NewTemplate("default-purchase_thanks", templateType, defaultPurchaseThanksContent)
	case TemplateTypeShippingNotice:
		return NewTemplate("default-shipping_notice", templateType, defaultShippingNoticeContent)
	default:
		return nil, ErrInvalidTemplateType
	}
}
