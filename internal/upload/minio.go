package upload

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioProvider stores transcripts in a MinIO or S3-compatible bucket.
type MinioProvider struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewMinioProvider() *MinioProvider {
	return &MinioProvider{}
}

func (m *MinioProvider) Name() string {
	return "minio"
}

// Configure builds the client from the options map. Required keys:
// endpoint, access_key, secret_key, bucket. Optional: secure (default
// true), region (default us-east-1), prefix.
func (m *MinioProvider) Configure(config map[string]any) error {
	endpoint, err := requireString(config, "endpoint")
	if err != nil {
		return err
	}
	accessKey, err := requireString(config, "access_key")
	if err != nil {
		return err
	}
	secretKey, err := requireString(config, "secret_key")
	if err != nil {
		return err
	}
	bucket, err := requireString(config, "bucket")
	if err != nil {
		return err
	}

	// An explicit scheme on the endpoint decides the transport and
	// overrides the secure option.
	secure := optionalBool(config, "secure", true)
	if host, ok := strings.CutPrefix(endpoint, "http://"); ok {
		endpoint, secure = host, false
	} else if host, ok := strings.CutPrefix(endpoint, "https://"); ok {
		endpoint, secure = host, true
	}
	if endpoint == "" {
		return fmt.Errorf("minio: invalid endpoint URL")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
		Region: optionalString(config, "region", "us-east-1"),
	})
	if err != nil {
		return fmt.Errorf("minio: failed to create client: %w", err)
	}

	m.client = client
	m.bucket = bucket
	m.prefix = optionalString(config, "prefix", "")

	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return fmt.Errorf("minio: failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("minio: bucket %s does not exist", bucket)
	}

	return nil
}

func (m *MinioProvider) Upload(ctx context.Context, reader io.Reader, remotePath string) error {
	if m.client == nil {
		return fmt.Errorf("minio: provider not configured")
	}

	objectName := remotePath
	if m.prefix != "" {
		objectName = path.Join(m.prefix, remotePath)
	}

	// Size -1 lets the client stream without knowing the length.
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, -1, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("minio: failed to upload to %s: %w", objectName, err)
	}

	return nil
}

func requireString(config map[string]any, key string) (string, error) {
	if val, ok := config[key]; ok {
		if str, ok := val.(string); ok && str != "" {
			return str, nil
		}
	}
	return "", fmt.Errorf("minio: %s is required", key)
}

func optionalString(config map[string]any, key, fallback string) string {
	if val, ok := config[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return fallback
}

func optionalBool(config map[string]any, key string, fallback bool) bool {
	if val, ok := config[key]; ok {
		switch v := val.(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
	}
	return fallback
}
