package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Hamuko/daiseihai/config"
)

var (
	storageClient *s3.Client
	storageBucket string
	cdnBaseURL    string
)

// InitStorage sets up the S3 client for the R2 blob store. Uploads use
// plain PutObject semantics: a colliding key overwrites the previous
// object and no historical versions are retained. That is the intended
// storage mode for logos and chat logs, not an accident.
func InitStorage(cfg *config.Config) error {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2AccessKeyID, cfg.R2AccessKeySecret, "",
		)),
		awsconfig.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load blob store config: %w", err)
	}

	storageClient = s3.NewFromConfig(awsCfg)
	storageBucket = cfg.R2Bucket
	cdnBaseURL = cfg.CDNBaseURL
	if cdnBaseURL == "" {
		cdnBaseURL = endpoint
	}
	return nil
}

// UploadFile stores a multipart upload under the given key, overwriting
// any existing object, and returns the public URL.
func UploadFile(ctx context.Context, fileHeader *multipart.FileHeader, key string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	_, err = storageClient.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(storageBucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return ObjectURL(key), nil
}

// DeleteObject removes an object from the blob store.
func DeleteObject(ctx context.Context, key string) error {
	_, err := storageClient.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(storageBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// ObjectURL returns the public CDN URL for a blob-store key.
func ObjectURL(key string) string {
	return fmt.Sprintf("%s/%s", cdnBaseURL, key)
}
