package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"mdnotes/mdnotes/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const notesPrefix = "notes"

// MinIOClient archives exported notes in a bucket under notes/.
type MinIOClient struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient connects and creates the bucket when it does not exist.
func NewMinIOClient(ctx context.Context, cfg config.Config) (*MinIOClient, error) {
	if cfg.MinIOEndpoint == "" {
		return nil, fmt.Errorf("minio: MINIO_ENDPOINT is not set")
	}
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: cfg.MinIOSecure,
		},
	)
	if err != nil {
		return nil, err
	}
	bucket := cfg.MinIOBucket
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinIOClient{client: client, bucket: bucket}, nil
}

// ObjectKey is the key an exported file is stored under.
func ObjectKey(name string) string {
	return path.Join(notesPrefix, path.Base(name))
}

func (m *MinIOClient) Put(ctx context.Context, name string, data []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, ObjectKey(name), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/markdown; charset=utf-8"})
	return err
}

// Get reads back an archived note.
func (m *MinIOClient) Get(ctx context.Context, name string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, ObjectKey(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}
