package labels

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shared/valueobject"
	"github.com/kobo/backend/internal/domain/shipping"
	"github.com/kobo/backend/internal/infrastructure/config"
)

type stubRenderer struct {
	pdf  []byte
	err  error
	html string
}

func (s *stubRenderer) RenderPDF(_ context.Context, html string) ([]byte, error) {
	s.html = html
	if s.err != nil {
		return nil, s.err
	}
	return s.pdf, nil
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.FromRaw(order.RawOrder{
		OrderID:     "ORD-001",
		Platform:    "minne",
		BuyerName:   "山田 太郎",
		PostalCode:  "150-0001",
		Prefecture:  "東京都",
		City:        "渋谷区",
		Street:      "神宮前1-2-3",
		ProductName: "つまみ細工かんざし",
		PriceYen:    2500,
		OrderedAt:   time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return o
}

var numberPattern = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}$`)

func TestClickPostIssuer_Issue(t *testing.T) {
	renderer := &stubRenderer{pdf: []byte("%PDF-1.4 fake")}
	issuer := NewClickPostIssuer(renderer, config.LabelsConfig{
		SenderName:       "工房はなこ",
		SenderPostalCode: "530-0001",
		SenderAddress:    "大阪府大阪市北区梅田1-1-1",
	}, nil)

	label, err := issuer.Issue(context.Background(), testOrder(t), valueobject.ShippingMethodClickPost)
	require.NoError(t, err)

	assert.Equal(t, valueobject.ShippingMethodClickPost, label.Kind)
	assert.Equal(t, "ORD-001", label.OrderID.String())
	assert.Regexp(t, numberPattern, label.TrackingNumber.String())
	assert.Nil(t, label.ExpiresAt)
	assert.NoError(t, label.Validate())

	decoded, err := base64.StdEncoding.DecodeString(label.PDFData)
	require.NoError(t, err)
	assert.Equal(t, renderer.pdf, decoded)

	assert.Contains(t, renderer.html, "山田 太郎")
	assert.Contains(t, renderer.html, "150-0001")
	assert.Contains(t, renderer.html, "工房はなこ")
	assert.Contains(t, renderer.html, label.TrackingNumber.String())
}

func TestClickPostIssuer_Issue_WrongMethod(t *testing.T) {
	issuer := NewClickPostIssuer(&stubRenderer{pdf: []byte("x")}, config.LabelsConfig{}, nil)

	_, err := issuer.Issue(context.Background(), testOrder(t), valueobject.ShippingMethodYamatoCompact)
	assert.ErrorIs(t, err, valueobject.ErrInvalidShippingMethod)
}

func TestClickPostIssuer_Issue_RendererFailure(t *testing.T) {
	renderer := &stubRenderer{err: errors.New("chrome crashed")}
	issuer := NewClickPostIssuer(renderer, config.LabelsConfig{}, nil)

	_, err := issuer.Issue(context.Background(), testOrder(t), valueobject.ShippingMethodClickPost)
	assert.Error(t, err)
}

func TestYamatoCompactIssuer_Issue(t *testing.T) {
	issuer := NewYamatoCompactIssuer(nil)
	issuedAt := time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issuedAt }

	label, err := issuer.Issue(context.Background(), testOrder(t), valueobject.ShippingMethodYamatoCompact)
	require.NoError(t, err)

	assert.Equal(t, valueobject.ShippingMethodYamatoCompact, label.Kind)
	assert.Regexp(t, numberPattern, label.WaybillNumber)
	require.NotNil(t, label.ExpiresAt)
	assert.Equal(t, issuedAt.AddDate(0, 0, shipping.YamatoCompactValidityDays), *label.ExpiresAt)
	assert.NoError(t, label.Validate())

	raw, err := base64.StdEncoding.DecodeString(label.QRCode)
	require.NoError(t, err)
	var payload yamatoQRPayload
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, label.WaybillNumber, payload.WaybillNumber)
	assert.Equal(t, "ORD-001", payload.OrderID)
	assert.Equal(t, "150-0001", payload.ToPostalCode)
}

func TestYamatoCompactIssuer_Issue_WrongMethod(t *testing.T) {
	issuer := NewYamatoCompactIssuer(nil)

	_, err := issuer.Issue(context.Background(), testOrder(t), valueobject.ShippingMethodClickPost)
	assert.ErrorIs(t, err, valueobject.ErrInvalidShippingMethod)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1234-5678-9012", formatNumber("123456789012"))
	assert.Equal(t, "123", formatNumber("123"))
}
