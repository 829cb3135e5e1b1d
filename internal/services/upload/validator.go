// Package upload implements the client side of the direct-to-object-storage
// upload flow: local file validation, presigned ticket acquisition, the
// binary PUT, and the placeholder asset synthesized when the original file
// bytes were lost across a storage round-trip.
package upload

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"github.com/viralforge/studio/internal/interfaces"
)

// MaxFileSize is the fixed upload ceiling (10 MB).
const MaxFileSize = 10 << 20

// allowedMIMETypes is the upload allow-list. Anything else is rejected
// before any network call is made.
var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// FileMeta describes a candidate file for validation.
type FileMeta struct {
	Name     string
	Size     int64
	MIMEType string
}

// Validate checks a candidate file against the size ceiling and MIME
// allow-list. Pure function, no side effects; must run before any network
// call. Returns nil when the file is acceptable, otherwise a
// *interfaces.ValidationError describing the rejection.
func Validate(meta FileMeta) error {
	if meta.Size > MaxFileSize {
		return &interfaces.ValidationError{
			Reason: fmt.Sprintf("file size %d exceeds maximum of %d bytes", meta.Size, MaxFileSize),
		}
	}
	if !allowedMIMETypes[meta.MIMEType] {
		return &interfaces.ValidationError{
			Reason: fmt.Sprintf("unsupported file type %q (allowed: image/jpeg, image/png, image/webp)", meta.MIMEType),
		}
	}
	return nil
}

// DetectMIME sniffs the MIME type from raw bytes. Used when the declared
// type was lost during state serialization.
func DetectMIME(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return mimetype.Detect(data).String()
}
