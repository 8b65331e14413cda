package repositories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader copies exported files to a bucket.
type S3Uploader struct {
	client S3API
	bucket string
}

func NewS3Uploader(client S3API, bucket string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket}
}

// UploadFile stores the file at path under <prefix>/<basename> and returns
// its s3:// location.
func (u *S3Uploader) UploadFile(ctx context.Context, prefix, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	key := filepath.Base(path)
	if prefix != "" {
		key = prefix + "/" + key
	}
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("text/csv; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, u.bucket, err)
	}
	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}
