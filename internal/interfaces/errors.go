package interfaces

import "fmt"

// Error taxonomy for the upload-and-generate pipeline. Every failure that
// crosses a service boundary is one of these types so handlers can map it to
// an HTTP status and the UI can offer the right retry affordance. None of
// these errors is retried automatically; retry is always user-initiated.

// ValidationError indicates a file failed local checks before any network
// call. The pipeline recovers from it by substituting a placeholder asset
// rather than surfacing it to the user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("file validation failed: %s", e.Reason)
}

// NetworkError represents a transport-level failure on a remote call.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError represents a non-2xx response from the ticket or campaign
// endpoints. Status and body are surfaced verbatim to aid debugging.
type ServerError struct {
	Status   int
	Body     string
	Endpoint string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error from %s (status: %d): %s", e.Endpoint, e.Status, e.Body)
}

// UploadError represents a non-2xx response from the object-storage PUT.
// The consumed ticket is dead; a retry must request a fresh one.
type UploadError struct {
	Status int
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("object upload failed (status: %d)", e.Status)
}

// MalformedResponseError indicates a generation response body could not be
// parsed into the canonical result shape. This signals an API contract break
// and is fatal for the run; it is never recovered by fallback.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed generation response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed generation response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
