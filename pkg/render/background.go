package render

import (
	"bytes"
	"errors"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	herrors "github.com/matzehuels/heatmap/pkg/errors"
)

// LoadBackground opens and decodes the image at path. EXIF orientation is
// applied. Any failure is reported as ErrCodeImageLoad.
func LoadBackground(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if errors.Is(err, os.ErrNotExist) {
		return nil, herrors.Wrap(herrors.ErrCodeImageLoad, err, "background image %s not found", path)
	}
	if err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeImageLoad, err, "decode background image %s", path)
	}
	return img, nil
}

// DecodeBackground decodes an image from r.
func DecodeBackground(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeImageLoad, err, "decode background image")
	}
	return img, nil
}

// DecodeBackgroundBytes decodes an in-memory image.
func DecodeBackgroundBytes(data []byte) (image.Image, error) {
	return DecodeBackground(bytes.NewReader(data))
}
