package labels

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"html/template"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shared/valueobject"
	"github.com/kobo/backend/internal/domain/shipping"
	"github.com/kobo/backend/internal/infrastructure/config"
)

// clickPostTemplate is the printable Click Post label layout
var clickPostTemplate = template.Must(template.New("clickpost").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="UTF-8">
<style>
  body { font-family: "Hiragino Sans", "Noto Sans JP", sans-serif; font-size: 11pt; margin: 0; }
  .label { border: 1px solid #000; padding: 8mm 6mm; }
  .service { font-size: 14pt; font-weight: bold; letter-spacing: 2px; }
  .tracking { font-size: 10pt; margin-top: 2mm; }
  .to { margin-top: 8mm; }
  .to .postal { font-size: 13pt; letter-spacing: 3px; }
  .to .address { margin-top: 2mm; line-height: 1.5; }
  .to .name { font-size: 14pt; font-weight: bold; margin-top: 3mm; }
  .from { margin-top: 10mm; font-size: 9pt; color: #333; border-top: 1px dashed #999; padding-top: 3mm; }
</style>
</head>
<body>
<div class="label">
  <div class="service">クリックポスト</div>
  <div class="tracking">お問い合わせ番号: {{.TrackingNumber}}</div>
  <div class="to">
    <div class="postal">〒{{.ToPostalCode}}</div>
    <div class="address">{{.ToAddress}}</div>
    <div class="name">{{.ToName}} 様</div>
  </div>
  <div class="from">
    <div>差出人: {{.FromName}}</div>
    <div>〒{{.FromPostalCode}} {{.FromAddress}}</div>
  </div>
</div>
</body>
</html>`))

type clickPostLabelData struct {
	TrackingNumber string
	ToPostalCode   string
	ToAddress      string
	ToName         string
	FromName       string
	FromPostalCode string
	FromAddress    string
}

// ClickPostIssuer issues Click Post labels: it allocates a tracking number,
// renders the printable label and carries the PDF base64-encoded.
type ClickPostIssuer struct {
	renderer PDFRenderer
	sender   config.LabelsConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewClickPostIssuer creates a new ClickPostIssuer
func NewClickPostIssuer(renderer PDFRenderer, cfg config.LabelsConfig, logger *zap.Logger) *ClickPostIssuer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClickPostIssuer{
		renderer: renderer,
		sender:   cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Issue produces a Click Post label for the order
func (i *ClickPostIssuer) Issue(ctx context.Context, o *order.Order, method valueobject.ShippingMethod) (*shipping.Label, error) {
	if method != valueobject.ShippingMethodClickPost {
		return nil, valueobject.ErrInvalidShippingMethod
	}

	tracking, err := valueobject.NewTrackingNumber(formatNumber(randomDigits(12)))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = clickPostTemplate.Execute(&buf, clickPostLabelData{
		TrackingNumber: tracking.String(),
		ToPostalCode:   o.Buyer.Address.PostalCode(),
		ToAddress:      o.Buyer.Address.FullAddress(),
		ToName:         o.Buyer.Name,
		FromName:       i.sender.SenderName,
		FromPostalCode: i.sender.SenderPostalCode,
		FromAddress:    i.sender.SenderAddress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build label html: %w", err)
	}

	pdf, err := i.renderer.RenderPDF(ctx, buf.String())
	if err != nil {
		return nil, err
	}

	labelID, err := shipping.NewLabelID(uuid.New().String())
	if err != nil {
		return nil, err
	}

	i.logger.Info("Click Post label rendered",
		zap.String("order_id", o.ID.String()),
		zap.String("tracking_number", tracking.String()),
		zap.Int("pdf_bytes", len(pdf)),
	)

	return shipping.NewClickPostLabel(labelID, o.ID, base64.StdEncoding.EncodeToString(pdf), tracking, i.now())
}

// randomDigits returns n random decimal digits
func randomDigits(n int) string {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits)
}

// formatNumber groups a 12-digit number as dddd-dddd-dddd
func formatNumber(digits string) string {
	if len(digits) != 12 {
		return digits
	}
	return digits[0:4] + "-" + digits[4:8] + "-" + digits[8:12]
}

var _ shipping.Issuer = (*ClickPostIssuer)(nil)
