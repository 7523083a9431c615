package loaders

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/environment"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads a PNG, JPEG, GIF, BMP or TIFF image and converts it to a Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	img, err := imaging.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", filename, err)
	}
	return imageToData(img), nil
}

// imageToData converts any image to row-major linear [0,1] colors
func imageToData(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// FaceImage converts the image into a cube map face
func (d *ImageData) FaceImage() *environment.FaceImage {
	return &environment.FaceImage{
		Width:  d.Width,
		Height: d.Height,
		Pixels: d.Pixels,
	}
}
