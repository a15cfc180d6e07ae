package messaging

import (
	"context"

	"github.com/kobo/backend/internal/domain/shared/valueobject"
)

// ProductNameResolver maps a raw marketplace product name to the display name
// used in customer messages
type ProductNameResolver interface {
	Resolve(ctx context.Context, rawName string) (string, error)
}

// IdentityProductNameResolver returns the raw name unchanged. It is the
// strategy the composition root selects when no mapping table is configured.
type IdentityProductNameResolver struct{}

// Resolve returns rawName as-is
func (IdentityProductNameResolver) Resolve(_ context.Context, rawName string) (string, error) {
	return rawName, nil
}

// ShippingMethodLabelResolver maps a shipping method code to its
// customer-facing Japanese label
type ShippingMethodLabelResolver interface {
	Resolve(ctx context.Context, method valueobject.ShippingMethod) (string, error)
}

// StaticShippingMethodLabels resolves the built-in carrier labels;
// unknown codes pass through unchanged.
type StaticShippingMethodLabels struct{}

// Resolve returns the display label for a shipping method
func (StaticShippingMethodLabels) Resolve(_ context.Context, method valueobject.ShippingMethod) (string, error) {
	switch method {
	case valueobject.ShippingMethodClickPost:
		return "クリックポスト(日本郵便)", nil
	case valueobject.ShippingMethodYamatoCompact:
		return "宅急便コンパクト(ヤマト運輸)", nil
	default:
		return method.String(), nil
	}
}
