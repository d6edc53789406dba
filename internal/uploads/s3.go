package uploads

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/workcafe/workcafe-api/internal/config"
)

// Uploader stores venue photos in an S3-compatible bucket (MinIO in dev).
type Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewUploader(cfg *config.Config) *Uploader {
	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		// MinIO and most self-hosted gateways only speak path-style.
		o.UsePathStyle = true
	})

	return &Uploader{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: cfg.S3PublicURL,
	}
}

// UploadPhoto normalizes the image and stores it under a random key.
// Returns the public URL of the stored object.
func (u *Uploader) UploadPhoto(ctx context.Context, r io.Reader) (string, error) {
	data, err := ProcessImage(r)
	if err != nil {
		return "", fmt.Errorf("process image: %w", err)
	}

	key := fmt.Sprintf("venues/%s.webp", uuid.NewString())

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("photo upload failed")
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("%s/%s", u.publicURL, key), nil
}
