// Package fileshare implements the content-addressed ingestion service:
// deciding whether uploaded bytes are new or duplicate content, enforcing
// the storage quota and media-type whitelist, and mapping identifiers to
// physical blobs.
package fileshare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"fshare/internal/blobstore"
	"fshare/internal/fingerprint"
	"fshare/internal/mediatype"
	"fshare/internal/models"
)

// Catalog is the durable record store mapping identifiers to blob
// references and presentation metadata.
type Catalog interface {
	InsertFile(ctx context.Context, file *models.StoredFile) (int64, error)
	GetFile(ctx context.Context, id int64) (*models.StoredFile, error)
	FindFirstByFingerprint(ctx context.Context, fp string) (*models.StoredFile, error)
}

// FileContent is the result of a load: the byte stream plus the metadata
// needed to present it.
type FileContent struct {
	Reader       io.ReadCloser
	MediaType    string
	OriginalName string
}

// Service orchestrates save, load and info over a catalog and a blob store.
type Service struct {
	catalog    Catalog
	blobs      blobstore.BlobStore
	quotaBytes int64
	logger     *slog.Logger

	// mu serializes the fingerprint-lookup-then-write sequence so two
	// concurrent saves of identical bytes cannot both take the first-time
	// branch, and quota checks see a settled usage total.
	mu sync.Mutex
}

// NewService constructs a Service. quotaBytes is the ceiling on aggregate
// stored bytes, enforced only against first-time content.
func NewService(catalog Catalog, blobs blobstore.BlobStore, quotaBytes int64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		catalog:    catalog,
		blobs:      blobs,
		quotaBytes: quotaBytes,
		logger:     logger,
	}
}

// Save stores a payload and returns its identifier.
//
// The dedup lookup runs before quota and media-type validation, so
// re-uploading existing content never fails either check: an exact
// re-upload (same bytes, same filename) returns the existing identifier
// unchanged, and same bytes under new metadata get a fresh catalog record
// sharing the existing blob.
func (s *Service) Save(ctx context.Context, data []byte, originalName, declaredType string) (int64, error) {
	if s == nil || s.catalog == nil || s.blobs == nil {
		return 0, fmt.Errorf("%w: service is not configured", ErrStorage)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fp := fingerprint.Sum(data)
	log := s.logger.With("fingerprint", fp, "size", len(data))

	existing, err := s.catalog.FindFirstByFingerprint(ctx, fp)
	if err != nil {
		return 0, fmt.Errorf("%w: fingerprint lookup: %v", ErrStorage, err)
	}

	if existing != nil {
		if existing.OriginalName == originalName {
			log.Debug("exact re-upload, returning existing id", "id", existing.ID)
			return existing.ID, nil
		}

		record := &models.StoredFile{
			BlobName:     existing.BlobName,
			OriginalName: originalName,
			MediaType:    existing.MediaType,
			Fingerprint:  fp,
			CreatedAt:    time.Now().UTC(),
		}
		if declared, normErr := mediatype.Normalize(declaredType); normErr == nil && declared != "" {
			record.MediaType = declared
		}
		id, err := s.catalog.InsertFile(ctx, record)
		if err != nil {
			return 0, fmt.Errorf("%w: catalog insert: %v", ErrStorage, err)
		}
		log.Debug("deduplicated upload, reusing blob", "id", id, "blob", existing.BlobName)
		return id, nil
	}

	usage, err := s.blobs.Usage(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: usage scan: %v", ErrStorage, err)
	}
	if s.quotaBytes-usage.TotalBytes < int64(len(data)) {
		log.Debug("quota exceeded", "quota", s.quotaBytes, "used", usage.TotalBytes)
		return 0, ErrPayloadTooLarge
	}

	if !mediatype.Classify(data, declaredType) {
		log.Debug("media type rejected", "declared", declaredType, "sniffed", mediatype.Detect(data))
		return 0, ErrUnsupportedMediaType
	}
	declared, err := mediatype.Normalize(declaredType)
	if err != nil {
		return 0, ErrUnsupportedMediaType
	}

	blobName := uuid.NewString()
	if _, err := s.blobs.Create(ctx, blobName, bytes.NewReader(data)); err != nil {
		return 0, fmt.Errorf("%w: blob write: %v", ErrStorage, err)
	}

	id, err := s.catalog.InsertFile(ctx, &models.StoredFile{
		BlobName:     blobName,
		OriginalName: originalName,
		MediaType:    declared,
		Fingerprint:  fp,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("%w: catalog insert: %v", ErrStorage, err)
	}

	log.Info("stored new file", "id", id, "blob", blobName, "media_type", declared)
	return id, nil
}

// Load resolves an identifier to its byte stream and metadata. A malformed
// identifier fails ErrInvalidID; an unknown identifier or a catalog record
// whose blob is gone both fail ErrNotFound, since metadata without bytes is
// not a usable result.
func (s *Service) Load(ctx context.Context, rawID string) (*FileContent, error) {
	if s == nil || s.catalog == nil || s.blobs == nil {
		return nil, fmt.Errorf("%w: service is not configured", ErrStorage)
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, rawID)
	}

	record, err := s.catalog.GetFile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog lookup: %v", ErrStorage, err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}

	exists, err := s.blobs.Exists(ctx, record.BlobName)
	if err != nil {
		return nil, fmt.Errorf("%w: blob stat: %v", ErrStorage, err)
	}
	if !exists {
		s.logger.Warn("catalog record references missing blob", "id", id, "blob", record.BlobName)
		return nil, fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}

	rc, err := s.blobs.Open(ctx, record.BlobName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: id=%d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: blob open: %v", ErrStorage, err)
	}

	return &FileContent{
		Reader:       rc,
		MediaType:    record.MediaType,
		OriginalName: record.OriginalName,
	}, nil
}

// Info returns live physical storage accounting: blob count and total
// bytes, recomputed from the blob store on every call.
func (s *Service) Info(ctx context.Context) (blobstore.Usage, error) {
	if s == nil || s.blobs == nil {
		return blobstore.Usage{}, fmt.Errorf("%w: service is not configured", ErrStorage)
	}
	usage, err := s.blobs.Usage(ctx)
	if err != nil {
		return blobstore.Usage{}, fmt.Errorf("%w: usage scan: %v", ErrStorage, err)
	}
	return usage, nil
}
