package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/nfnt/resize"
)

const (
	// maxFrameWidth bounds upload size; frames wider than this are
	// scaled down preserving aspect ratio.
	maxFrameWidth = 1280

	jpegQuality = 80
)

// EncodeFrame downscales a frame to at most maxFrameWidth and encodes
// it as JPEG.
func EncodeFrame(img image.Image) ([]byte, error) {
	if img.Bounds().Dx() > maxFrameWidth {
		img = resize.Resize(maxFrameWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}

	return buf.Bytes(), nil
}
