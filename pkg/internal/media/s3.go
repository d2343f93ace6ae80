package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
}

type S3Store struct {
	bucket    string
	publicURL string
	uploader  *s3manager.Uploader
	svc       *s3.S3
}

func NewS3Store(config S3Config) (*S3Store, error) {
	if len(config.Bucket) == 0 {
		return nil, fmt.Errorf("media.s3.bucket is required for the s3 driver")
	}

	awsConfig := &aws.Config{Region: aws.String(config.Region)}
	if len(config.Endpoint) > 0 {
		// S3 compatible services usually want path style addressing.
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, err
	}

	publicURL := config.PublicURL
	if len(publicURL) == 0 {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", config.Bucket, config.Region)
	}

	return &S3Store{
		bucket:    config.Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		uploader:  s3manager.NewUploader(sess),
		svc:       s3.New(sess),
	}, nil
}

func (v *S3Store) Save(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := v.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(v.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

func (v *S3Store) Delete(ctx context.Context, key string) error {
	_, err := v.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (v *S3Store) URL(key string) string {
	return v.publicURL + "/" + strings.TrimPrefix(key, "/")
}
