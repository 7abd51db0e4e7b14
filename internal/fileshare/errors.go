package fileshare

import "errors"

// Typed failures surfaced by the service. The HTTP layer maps each to a
// distinct response code, so none of these may be collapsed into a generic
// failure.
var (
	// ErrPayloadTooLarge means a first-time payload would exceed the
	// configured storage quota. Duplicate content never triggers it.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrUnsupportedMediaType means the payload bytes are not structurally
	// consistent with the declared media type.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrInvalidID means a load was attempted with a malformed identifier.
	ErrInvalidID = errors.New("invalid file id")

	// ErrNotFound means no catalog record exists for the identifier, or the
	// record's blob is missing from storage.
	ErrNotFound = errors.New("file not found")

	// ErrStorage wraps faults from the catalog or the blob store.
	ErrStorage = errors.New("storage failure")
)
