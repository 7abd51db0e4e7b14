package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument = 1000
	ErrCodeInvalidID       = 1001
	ErrCodeMissingFile     = 1002
	ErrCodeBadMultipart    = 1003

	// Domain state (2xxx)
	ErrCodeFileNotFound = 2001

	// Limits (3xxx)
	ErrCodePayloadTooLarge      = 3001
	ErrCodeUnsupportedMediaType = 3002
	ErrCodeRequestTooLarge      = 3003

	// Internal/system (4xxx)
	ErrCodeInternal       = 4001
	ErrCodeStorageFailure = 4002
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 404:
		return ErrCodeFileNotFound
	case 413:
		return ErrCodePayloadTooLarge
	case 415:
		return ErrCodeUnsupportedMediaType
	case 500:
		return ErrCodeInternal
	default:
		return 0
	}
}
