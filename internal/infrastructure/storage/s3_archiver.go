// Package storage archives issued label artifacts to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/kobo/backend/internal/domain/shared/valueobject"
	"github.com/kobo/backend/internal/domain/shipping"
	infraconfig "github.com/kobo/backend/internal/infrastructure/config"
)

// s3Client is the subset of the S3 API the archiver uses
type s3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3LabelArchiver implements shipping.Archiver by writing label artifacts to
// an S3-compatible bucket. Click Post labels are stored as PDF, Yamato
// compact labels as their JSON QR payload.
type S3LabelArchiver struct {
	client    s3Client
	bucket    string
	keyPrefix string
	logger    *zap.Logger
}

// NewS3LabelArchiver creates an archiver from storage configuration. It works
// against AWS S3 and S3-compatible backends (MinIO etc.) via a custom endpoint.
func NewS3LabelArchiver(cfg *infraconfig.StorageConfig, logger *zap.Logger) (*S3LabelArchiver, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3LabelArchiver{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
		logger:    logger,
	}, nil
}

// Archive uploads the label artifact under <prefix>/<order-id>/<label-id>.<ext>
func (a *S3LabelArchiver) Archive(ctx context.Context, label *shipping.Label) error {
	data, contentType, ext, err := artifact(label)
	if err != nil {
		return err
	}

	key := path.Join(a.keyPrefix, label.OrderID.String(), label.ID.String()+ext)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to archive label %s: %w", label.ID.String(), err)
	}

	a.logger.Info("Label archived",
		zap.String("label_id", label.ID.String()),
		zap.String("bucket", a.bucket),
		zap.String("key", key),
	)
	return nil
}

// artifact extracts the uploadable bytes for a label variant
func artifact(label *shipping.Label) (data []byte, contentType, ext string, err error) {
	switch label.Kind {
	case valueobject.ShippingMethodClickPost:
		pdf, err := base64.StdEncoding.DecodeString(label.PDFData)
		if err != nil {
			return nil, "", "", fmt.Errorf("label %s carries invalid PDF data: %w", label.ID.String(), err)
		}
		return pdf, "application/pdf", ".pdf", nil
	case valueobject.ShippingMethodYamatoCompact:
		payload, err := base64.StdEncoding.DecodeString(label.QRCode)
		if err != nil {
			return nil, "", "", fmt.Errorf("label %s carries invalid QR payload: %w", label.ID.String(), err)
		}
		return payload, "application/json", ".json", nil
	default:
		return nil, "", "", valueobject.ErrInvalidShippingMethod
	}
}

var _ shipping.Archiver = (*S3LabelArchiver)(nil)
