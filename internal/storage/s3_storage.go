package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/toshniwal-akshay/ecommerce-project/config"
)

const presignExpiry = 15 * time.Minute

// S3Storage hands out pre-signed PUT URLs for image uploads (product
// photos, profile pictures, shop cover photos). The server never
// proxies file bytes.
type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
}

func NewS3Storage(cfg config.S3Config) *S3Storage {
	var awsCfg aws.Config

	// Static credentials when configured, otherwise the default chain
	// (environment, shared credentials file, IAM role).
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		}
	} else {
		loaded, err := awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.Region),
		)
		if err != nil {
			awsCfg = aws.Config{Region: cfg.Region}
		} else {
			awsCfg = loaded
		}
	}

	return &S3Storage{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		baseURL: cfg.BaseURL,
	}
}

// PresignUpload generates a pre-signed PUT URL for one file under the
// given folder. The object key is randomized; only the extension of the
// original filename survives.
func (s *S3Storage) PresignUpload(filename, contentType, folder string) (*PresignedUpload, error) {
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	presignClient := s3.NewPresignClient(s.client)
	presignedReq, err := presignClient.PresignPutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	var fileURL string
	if s.baseURL != "" {
		// CloudFront or custom domain
		fileURL = fmt.Sprintf("%s/%s", s.baseURL, key)
	} else {
		fileURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
	}

	return &PresignedUpload{
		UploadURL: presignedReq.URL,
		FileURL:   fileURL,
		Key:       key,
	}, nil
}

// ValidateContentType checks the content type against a whitelist.
func (s *S3Storage) ValidateContentType(contentType string, allowedTypes []string) error {
	for _, allowed := range allowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("content type %s is not allowed", contentType)
}
