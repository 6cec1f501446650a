package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// CloudStorage stores drafts as JSON objects in a Cloud Storage bucket.
type CloudStorage struct {
	client     *storage.Client
	bucketName string
	prefix     string
}

// NewCloudStorage creates a Cloud Storage draft archive.
func NewCloudStorage(ctx context.Context, bucketName string) (*CloudStorage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &CloudStorage{client: client, bucketName: bucketName, prefix: "drafts/"}, nil
}

func (c *CloudStorage) objectName(id string) string {
	return c.prefix + id + ".json"
}

func (c *CloudStorage) Put(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		return errors.New("draft id is required")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling draft: %w", err)
	}

	writer := c.client.Bucket(c.bucketName).Object(c.objectName(entry.ID)).NewWriter(ctx)
	writer.ContentType = "application/json"

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("writing object data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing object writer: %w", err)
	}
	return nil
}

func (c *CloudStorage) Get(ctx context.Context, id string) (*Entry, error) {
	reader, err := c.client.Bucket(c.bucketName).Object(c.objectName(id)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("opening object reader: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading object data: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("unmarshaling draft: %w", err)
	}
	return &entry, nil
}

// List reads every draft object and returns up to limit, newest first.
func (c *CloudStorage) List(ctx context.Context, limit int) ([]Entry, error) {
	it := c.client.Bucket(c.bucketName).Objects(ctx, &storage.Query{Prefix: c.prefix})

	var entries []Entry
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing objects: %w", err)
		}
		if !strings.HasSuffix(attrs.Name, ".json") {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(attrs.Name, c.prefix), ".json")
		entry, err := c.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return newestFirst(entries, limit), nil
}

// Prune deletes draft objects whose creation time is before cutoff.
func (c *CloudStorage) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	bucket := c.client.Bucket(c.bucketName)
	it := bucket.Objects(ctx, &storage.Query{Prefix: c.prefix})

	removed := 0
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return removed, fmt.Errorf("listing objects: %w", err)
		}
		if !attrs.Created.Before(cutoff) {
			continue
		}
		if err := bucket.Object(attrs.Name).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
			return removed, fmt.Errorf("deleting object %s: %w", attrs.Name, err)
		}
		removed++
	}
	return removed, nil
}

// Close closes the Cloud Storage client
func (c *CloudStorage) Close() error {
	return c.client.Close()
}
