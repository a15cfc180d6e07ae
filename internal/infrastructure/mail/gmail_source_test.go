package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobo/backend/internal/domain/order"
)

func TestParseOrderRef(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		subject  string
		expected order.OrderRef
		ok       bool
	}{
		{
			name:    "minne notification",
			from:    "minne <no-reply@minne.com>",
			subject: "【minne】作品が購入されました ご注文番号: ORD-001",
			expected: order.OrderRef{
				MessageID: "msg-1",
				OrderID:   "ORD-001",
				Platform:  order.PlatformMinne,
			},
			ok: true,
		},
		{
			name:    "creema notification",
			from:    "Creema <info@mail.creema.jp>",
			subject: "ご注文が入りました 注文番号:C-2026-0042",
			expected: order.OrderRef{
				MessageID: "msg-1",
				OrderID:   "C-2026-0042",
				Platform:  order.PlatformCreema,
			},
			ok: true,
		},
		{
			name:    "unknown sender",
			from:    "newsletter@example.com",
			subject: "ご注文番号: ORD-001",
			ok:      false,
		},
		{
			name:    "no order number in subject",
			from:    "no-reply@minne.com",
			subject: "【minne】今週のおすすめ作品",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := ParseOrderRef("msg-1", tt.from, tt.subject)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, ref)
			}
		})
	}
}
