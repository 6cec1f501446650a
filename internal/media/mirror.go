package media

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// BucketMirror writes images to a Cloud Storage bucket.
type BucketMirror struct {
	client     *storage.Client
	bucketName string
	prefix     string
}

// NewBucketMirror creates a mirror for bucketName. Objects are stored under
// prefix followed by the upload-relative path.
func NewBucketMirror(ctx context.Context, bucketName, prefix string) (*BucketMirror, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &BucketMirror{client: client, bucketName: bucketName, prefix: prefix}, nil
}

func (m *BucketMirror) Put(ctx context.Context, name string, data []byte) error {
	writer := m.client.Bucket(m.bucketName).Object(m.prefix + name).NewWriter(ctx)
	writer.ContentType = "image/jpeg"

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("writing object data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing object writer: %w", err)
	}
	return nil
}

func (m *BucketMirror) Close() error {
	return m.client.Close()
}
