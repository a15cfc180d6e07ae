package storage

import (
	"context"
	"encoding/base64"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shared/valueobject"
	"github.com/kobo/backend/internal/domain/shipping"
)

type capturingS3Client struct {
	input *s3.PutObjectInput
	err   error
}

func (c *capturingS3Client) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	c.input = params
	if c.err != nil {
		return nil, c.err
	}
	return &s3.PutObjectOutput{}, nil
}

func newClickPostLabel(t *testing.T) *shipping.Label {
	t.Helper()
	orderID, err := order.NewID("ORD-001")
	require.NoError(t, err)
	labelID, err := shipping.NewLabelID("LBL-001")
	require.NoError(t, err)
	tracking, err := valueobject.NewTrackingNumber("1234-5678-9012")
	require.NoError(t, err)

	label, err := shipping.NewClickPostLabel(labelID, orderID,
		base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake")), tracking,
		time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return label
}

func TestS3LabelArchiver_Archive_ClickPost(t *testing.T) {
	client := &capturingS3Client{}
	archiver := &S3LabelArchiver{
		client:    client,
		bucket:    "kobo-labels",
		keyPrefix: "labels",
		logger:    zap.NewNop(),
	}

	require.NoError(t, archiver.Archive(context.Background(), newClickPostLabel(t)))

	require.NotNil(t, client.input)
	assert.Equal(t, "kobo-labels", *client.input.Bucket)
	assert.Equal(t, "labels/ORD-001/LBL-001.pdf", *client.input.Key)
	assert.Equal(t, "application/pdf", *client.input.ContentType)

	body, err := io.ReadAll(client.input.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), body)
}

func TestS3LabelArchiver_Archive_YamatoPayload(t *testing.T) {
	orderID, err := order.NewID("ORD-002")
	require.NoError(t, err)
	labelID, err := shipping.NewLabelID("LBL-002")
	require.NoError(t, err)
	label, err := shipping.NewYamatoCompactLabel(labelID, orderID,
		base64.StdEncoding.EncodeToString([]byte(`{"waybill_number":"4401-0000-1111"}`)),
		"4401-0000-1111", time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	client := &capturingS3Client{}
	archiver := &S3LabelArchiver{client: client, bucket: "kobo-labels", logger: zap.NewNop()}

	require.NoError(t, archiver.Archive(context.Background(), label))
	assert.Equal(t, "ORD-002/LBL-002.json", *client.input.Key)
	assert.Equal(t, "application/json", *client.input.ContentType)
}

func TestS3LabelArchiver_Archive_InvalidPDFData(t *testing.T) {
	label := newClickPostLabel(t)
	label.PDFData = "not base64 !!!"

	archiver := &S3LabelArchiver{client: &capturingS3Client{}, bucket: "kobo-labels", logger: zap.NewNop()}
	err := archiver.Archive(context.Background(), label)
	assert.Error(t, err)
}
