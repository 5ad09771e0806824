// Package storage persists the source images behind enrolled biometrics.
// Images are kept only for audit and re-extraction; the matching path
// never reads them.
package storage

import "context"

// ImageStore stores and retrieves enrollment images by key.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// NoopStore discards images. Used when no object storage is configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

func (s *NoopStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return nil
}

func (s *NoopStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrImageNotFound
}

func (s *NoopStore) Delete(ctx context.Context, key string) error {
	return nil
}

var _ ImageStore = (*NoopStore)(nil)
