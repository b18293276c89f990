package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type S3Storage struct {
	client *s3.Client
	bucket string
}

func NewS3Storage(ctx context.Context, bucket string) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &S3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

// Upload writes the object under folder/date/uuid-filename and returns that
// key. The key is what gets persisted on attendance and leave rows.
func (s *S3Storage) Upload(ctx context.Context, body io.Reader, filename, contentType, folder string) (string, error) {
	filename = strings.ReplaceAll(path.Base(filename), " ", "_")
	key := path.Join(
		folder,
		time.Now().UTC().Format("2006/01/02"),
		uuid.NewString()+"-"+filename,
	)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s to bucket %s: %w", key, s.bucket, err)
	}

	return key, nil
}

func (s *S3Storage) Download(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectPath),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s from bucket %s: %w", objectPath, s.bucket, err)
	}

	return resp.Body, nil
}

func (s *S3Storage) Delete(ctx context.Context, objectPath string) (bool, error) {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectPath),
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete object %s from bucket %s: %w", objectPath, s.bucket, err)
	}

	return true, nil
}
