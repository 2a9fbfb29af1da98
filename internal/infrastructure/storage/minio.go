// Package storage guarda las imágenes de producto en MinIO o cualquier S3 compatible.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Orcamentos-api/internal/application/ports"
	"github.com/jhoicas/Orcamentos-api/pkg/config"
)

// MinIOStorage implementa ports.ImageStorage.
type MinIOStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
	log     zerolog.Logger
}

var _ ports.ImageStorage = (*MinIOStorage)(nil)

// NewMinIOStorage conecta con el endpoint y crea el bucket si no existe.
func NewMinIOStorage(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cliente minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: verificar bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: crear bucket: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("bucket creado")
	}
	return newMinIOStorage(client, cfg.Bucket, cfg.PublicBaseURL, log), nil
}

func newMinIOStorage(client *minio.Client, bucket, publicBaseURL string, log zerolog.Logger) *MinIOStorage {
	base := strings.TrimRight(publicBaseURL, "/")
	if base == "" {
		// path-style: <endpoint>/<bucket>
		base = strings.TrimRight(client.EndpointURL().String(), "/") + "/" + bucket
	}
	return &MinIOStorage{client: client, bucket: bucket, baseURL: base, log: log}
}

// Put sube el objeto. size -1 deja que minio use multipart.
func (s *MinIOStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("storage: subir %s: %w", key, err)
	}
	s.log.Debug().Str("key", key).Int64("size", size).Msg("objeto subido")
	return nil
}

// Remove borra el objeto. Un objeto inexistente no es error.
func (s *MinIOStorage) Remove(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("storage: borrar %s: %w", key, err)
	}
	s.log.Debug().Str("key", key).Msg("objeto borrado")
	return nil
}

func (s *MinIOStorage) List(ctx context.Context, prefix string) ([]ports.StoredObject, error) {
	var out []ports.StoredObject
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("storage: listar %s: %w", prefix, obj.Err)
		}
		out = append(out, ports.StoredObject{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	return out, nil
}

func (s *MinIOStorage) URL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}
