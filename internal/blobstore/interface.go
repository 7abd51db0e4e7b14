package blobstore

import (
	"context"
	"io"
)

// Usage is the aggregate accounting of a blob store, recomputed from the
// store's current contents on every call.
type Usage struct {
	FileCount  int
	TotalBytes int64
}

// BlobStore is the byte-storage abstraction used by the ingestion service.
// Blobs are write-once: Create fails for a name already in use and stored
// bytes are never mutated afterwards.
type BlobStore interface {
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name string, r io.Reader) (int64, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Usage(ctx context.Context) (Usage, error)
}
