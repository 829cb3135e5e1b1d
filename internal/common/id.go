package common

import (
	"github.com/google/uuid"
)

// NewSessionID generates a unique wizard session ID with the "ses_" prefix
// Format: ses_<uuid>
func NewSessionID() string {
	return "ses_" + uuid.New().String()
}

// NewAssetName generates a unique placeholder asset file name
// Format: placeholder-<short uuid>.jpg
func NewAssetName() string {
	return "placeholder-" + uuid.New().String()[:8] + ".jpg"
}
