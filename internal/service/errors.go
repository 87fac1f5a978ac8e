package service

import (
	"fmt"

	"github.com/timmy/fidghost/internal/domain"
)

// ErrInvalidArgument marks caller mistakes; handlers map it to 400. Request
// decoding errors from the domain package match it too.
var ErrInvalidArgument = domain.ErrInvalidArgument

// argumentError carries the caller-facing message and matches ErrInvalidArgument.
type argumentError struct {
	msg string
}

func (e *argumentError) Error() string {
	return e.msg
}

func (e *argumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalidArgument(format string, args ...interface{}) error {
	return &argumentError{msg: fmt.Sprintf(format, args...)}
}

// UpstreamFetchError reports a failed source image download. StatusCode is 0
// when the request never produced a response.
type UpstreamFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("Failed to download %s - %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("Failed to download %s: %v", e.URL, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}

// Artifact names used in UploadError.
const (
	ArtifactImage    = "image"
	ArtifactMetadata = "metadata"
)

// UploadError reports that an artifact could not be pinned, either because the
// uploader failed or because its response carried no content id.
type UploadError struct {
	Artifact string
	Err      error
}

func (e *UploadError) Error() string {
	msg := fmt.Sprintf("Failed to obtain %s CID", e.Artifact)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
