package render

import (
	"bytes"
	"image"
	"image/png"

	herrors "github.com/matzehuels/heatmap/pkg/errors"
)

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
