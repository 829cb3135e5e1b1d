package upload

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/viralforge/studio/internal/common"
	"github.com/viralforge/studio/internal/models"
)

// Placeholder dimensions and fill. Small on purpose: the placeholder only
// needs to satisfy the generation API's image requirement when the real
// file bytes were lost across a storage round-trip.
const (
	placeholderWidth  = 64
	placeholderHeight = 64
)

var placeholderFill = color.RGBA{R: 0x6C, G: 0x5C, B: 0xE7, A: 0xFF}

// GeneratePlaceholder synthesizes a solid-fill JPEG stand-in for a missing
// upload. The result always has a non-empty name and MIME type image/jpeg.
func GeneratePlaceholder() models.UploadedFile {
	img := image.NewRGBA(image.Rect(0, 0, placeholderWidth, placeholderHeight))
	for y := 0; y < placeholderHeight; y++ {
		for x := 0; x < placeholderWidth; x++ {
			img.SetRGBA(x, y, placeholderFill)
		}
	}

	var buf bytes.Buffer
	// Encoding a small RGBA image cannot fail; fall back to an empty body
	// rather than panicking if it ever does.
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		buf.Reset()
	}

	return models.UploadedFile{
		Name: common.NewAssetName(),
		Type: "image/jpeg",
		Size: int64(buf.Len()),
		Data: buf.Bytes(),
	}
}
