package ports

import (
	"context"
	"io"
	"time"
)

// StoredObject metadatos de un objeto del storage.
type StoredObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ImageStorage puerto de salida para los archivos de imagen de productos (MinIO/S3).
type ImageStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	// List recorre recursivamente los objetos bajo prefix.
	List(ctx context.Context, prefix string) ([]StoredObject, error)
	// URL pública del objeto.
	URL(key string) string
}
