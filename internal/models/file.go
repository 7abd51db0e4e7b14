package models

import "time"

// StoredFile is one immutable catalog entry mapping an external identifier
// to a physical blob. Several entries may share one BlobName when their
// content is identical; identifiers are never shared.
type StoredFile struct {
	ID           int64     `json:"id"`
	BlobName     string    `json:"blob_name"`
	OriginalName string    `json:"original_name"`
	MediaType    string    `json:"media_type"`
	Fingerprint  string    `json:"fingerprint"`
	CreatedAt    time.Time `json:"created_at"`
}
