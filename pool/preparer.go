package pool

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Preparer turns a catalog path into an image ready for display
type Preparer interface {
	Prepare(path string) (image.Image, error)
}

// PreparerFunc adapts a plain function to the Preparer interface
type PreparerFunc func(path string) (image.Image, error)

// Prepare calls f(path)
func (f PreparerFunc) Prepare(path string) (image.Image, error) { return f(path) }

// ImagePreparer decodes jpg, png, gif and bmp files and scales them down to fit
// inside MaxWidth x MaxHeight. Images already inside the box are left as is.
type ImagePreparer struct {
	MaxWidth  int
	MaxHeight int
}

// Prepare decodes the image at path and fits it into the configured box
func (p ImagePreparer) Prepare(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if p.MaxWidth <= 0 || p.MaxHeight <= 0 {
		return img, nil
	}

	// Fit never upscales
	return imaging.Fit(img, p.MaxWidth, p.MaxHeight, imaging.Lanczos), nil
}
