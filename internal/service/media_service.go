package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"app/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MediaUploader stores course images on an external asset host and returns
// a stable reference. Callers are responsible for validating the content
// type before invoking Upload.
type MediaUploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (model.ImageRef, error)
}

// s3Uploader is the S3-compatible implementation of MediaUploader.
type s3Uploader struct {
	client      *s3.Client
	bucket      string
	endpointURL string
	logger      zerolog.Logger
}

// NewS3Uploader creates a MediaUploader backed by an S3-compatible bucket.
func NewS3Uploader(client *s3.Client, bucket, endpointURL string, logger zerolog.Logger) MediaUploader {
	return &s3Uploader{
		client:      client,
		bucket:      bucket,
		endpointURL: strings.TrimSuffix(endpointURL, "/"),
		logger:      logger.With().Str("service", "S3Uploader").Logger(),
	}
}

// Upload writes the image under a fresh key and returns its reference.
func (u *s3Uploader) Upload(ctx context.Context, data []byte, contentType string) (model.ImageRef, error) {
	key := fmt.Sprintf("courses/%s%s", uuid.NewString(), extensionFor(contentType))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.logger.Error().Err(err).Str("key", key).Msg("Failed to upload image to object store")
		return model.ImageRef{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return model.ImageRef{
		PublicID: key,
		URL:      fmt.Sprintf("%s/%s/%s", u.endpointURL, u.bucket, key),
	}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	default:
		return ""
	}
}
