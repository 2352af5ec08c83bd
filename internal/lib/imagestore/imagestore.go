package imagestore

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// Uploader stores an image blob under a key and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
}

// S3Store uploads menu item images to a public S3 bucket.
type S3Store struct {
	client *s3.S3
	bucket string
	region string
}

func New(bucket, region string) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	return &S3Store{
		client: s3.New(sess),
		bucket: bucket,
		region: region,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// MenuImageKey builds a unique object key for an uploaded menu image,
// keeping the original file extension.
func MenuImageKey(filename string) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("menu/%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
