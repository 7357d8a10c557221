package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ImageStorage hands out presigned PUT URLs for project-image uploads.
// The bucket contents are served by the CDN; this service never proxies
// image bytes.
type ImageStorage struct {
	presigner *s3.PresignClient
	bucket    string
}

func NewImageStorage(ctx context.Context, bucket string) (*ImageStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("IMAGE_BUCKET is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &ImageStorage{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
	}, nil
}

// PresignUpload returns the object key for a new project image together
// with a presigned URL the client PUTs the bytes to.
func (s *ImageStorage) PresignUpload(ctx context.Context, projectID uuid.UUID, contentType string, expires time.Duration) (key string, url string, err error) {
	key = fmt.Sprintf("project_images/%s/%s", projectID, uuid.New())

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign image upload: %w", err)
	}

	return key, req.URL, nil
}
