package media

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	DisplayMaxSize   = 1920
	ThumbnailMaxSize = 400
)

// Resize fits an image inside a maxSize square keeping its aspect ratio and
// re-encodes it in the format the extension names. Smaller images are left at
// their size.
func Resize(data []byte, ext string, maxSize int) ([]byte, error) {
	format, err := imaging.FormatFromExtension(strings.TrimPrefix(ext, "."))
	if err != nil {
		return nil, fmt.Errorf("unsupported image format %s: %w", ext, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	out := imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
