package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"ai-doc-assistant/config"
	s3client "ai-doc-assistant/pkg/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// archiveToS3 stores the raw upload under its content hash so re-uploads of
// the same file land on the same key.
func archiveToS3(ctx context.Context, raw []byte, filename string) error {
	client, err := s3client.GetClient()
	if err != nil {
		return fmt.Errorf("s3 client: %w", err)
	}

	bucket := config.Cfg.S3.Bucket
	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		_, crtErr := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)})
		if crtErr != nil {
			var owned *s3types.BucketAlreadyOwnedByYou
			if !errors.As(crtErr, &owned) {
				return fmt.Errorf("create bucket: %w", crtErr)
			}
		}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("documents/%s%s", contentHash(raw), ext)

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(raw),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}
