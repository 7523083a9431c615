package output

import (
	"image"

	"github.com/nfnt/resize"
)

// Thumbnail scales img down to fit in maxSize x maxSize, preserving aspect ratio.
// Images already inside the box are returned unchanged.
func Thumbnail(img image.Image, maxSize uint) image.Image {
	return resize.Thumbnail(maxSize, maxSize, img, resize.Bilinear)
}
