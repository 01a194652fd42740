package cloudstorage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/cockroachdb/errors"
	"google.golang.org/api/option"
)

type FileStore interface {
	GetFile(ctx context.Context, url string) ([]byte, error)
	WriteFile(ctx context.Context, url string, fileContent []byte) error
	FileURL(objectPath string) string
}

func NewGoogleFileStore(ctx context.Context, storageHost string, bucketName string, opts ...option.ClientOption) (GoogleFileStore, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return GoogleFileStore{}, errors.Wrap(err, "Failed to create Google Cloud Storage client")
	}

	return GoogleFileStore{
		storageClient: client,
		bucketName:    bucketName,
		storageHost:   storageHost,
	}, nil
}

type GoogleFileStore struct {
	storageClient *storage.Client
	bucketName    string
	storageHost   string
}

func (g GoogleFileStore) hostPrefix() string {
	return fmt.Sprintf("%s/%s/", g.storageHost, g.bucketName)
}

func (g GoogleFileStore) objectPath(fileURL string) (string, error) {
	prefix := g.hostPrefix()
	if !strings.HasPrefix(fileURL, prefix) {
		return "", errors.Errorf("File URL %s is not in the expected bucket %s", fileURL, g.bucketName)
	}

	return strings.TrimPrefix(fileURL, prefix), nil
}

func (g GoogleFileStore) GetFile(ctx context.Context, fileURL string) ([]byte, error) {
	objectPath, err := g.objectPath(fileURL)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to resolve object path from URL")
	}

	reader, err := g.storageClient.Bucket(g.bucketName).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to open reader for storage object")
	}
	defer reader.Close()

	contents, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read storage object contents")
	}

	return contents, nil
}

func (g GoogleFileStore) WriteFile(ctx context.Context, fileURL string, fileContent []byte) error {
	objectPath, err := g.objectPath(fileURL)
	if err != nil {
		return errors.Wrap(err, "Failed to resolve object path from URL")
	}

	writer := g.storageClient.Bucket(g.bucketName).Object(objectPath).NewWriter(ctx)

	_, err = writer.Write(fileContent)
	if err != nil {
		_ = writer.Close()
		return errors.Wrap(err, "Failed to write storage object contents")
	}

	err = writer.Close()
	if err != nil {
		return errors.Wrap(err, "Failed to finalize storage object write")
	}

	return nil
}

func (g GoogleFileStore) FileURL(objectPath string) string {
	return g.hostPrefix() + objectPath
}
