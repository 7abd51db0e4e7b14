package api

import "fmt"

// ErrorResponse is a generic JSON error wrapper.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// APIError is a typed error decoded from a server error response.
type APIError struct {
	Status    int
	Code      string
	ErrorCode int
	Message   string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// UploadResponse is returned on a successful upload.
type UploadResponse struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// InfoResponse reports physical storage accounting.
type InfoResponse struct {
	TotalFiles int   `json:"total_files"`
	TotalBytes int64 `json:"total_bytes"`
}
