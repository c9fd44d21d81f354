package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/poiesic/inflow/core"
)

// ObjectStore is the subset of the MinIO client the S3 source needs.
type ObjectStore interface {
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
}

// NewObjectStoreFromEnv connects to an S3-compatible endpoint using the
// MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY, and MINIO_USE_SSL
// environment variables.
func NewObjectStoreFromEnv() (ObjectStore, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
}

// S3Source reads a document from S3-compatible object storage.
type S3Source struct {
	bucket  string
	key     string
	docType core.DocumentType
	store   ObjectStore
}

var _ core.Source = (*S3Source)(nil)

// NewS3Source creates a source for an s3://bucket/key URI. The document type
// is inferred from the object key extension.
func NewS3Source(uri string, store ObjectStore) (*S3Source, error) {
	trimmed := strings.TrimPrefix(uri, "s3://")
	bucket, key, ok := strings.Cut(trimmed, "/")
	if bucket == "" || key == "" || !ok {
		return nil, fmt.Errorf("invalid s3 URI %q: want s3://bucket/key", uri)
	}
	return &S3Source{
		bucket:  bucket,
		key:     key,
		docType: TypeForPath(key),
		store:   store,
	}, nil
}

// WithType overrides the inferred document type.
func (s *S3Source) WithType(t core.DocumentType) *S3Source {
	s.docType = t
	return s
}

// URI returns the s3:// URI of the source.
func (s *S3Source) URI() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

// Type returns the document type the source yields.
func (s *S3Source) Type() core.DocumentType {
	return s.docType
}

// Open returns a reader over the object bytes.
func (s *S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	obj, err := s.store.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}
