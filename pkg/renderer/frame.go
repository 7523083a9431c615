package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Frame holds the unclamped radiance and hit flag of every pixel.
// Tiles write disjoint regions, so concurrent writers need no locking.
type Frame struct {
	Width  int
	Height int
	Colors []core.Vec3 // Row-major, y=0 is the top row
	Hits   []bool      // True where the camera ray hit a sphere
}

// NewFrame allocates a black frame with no hits
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Colors: make([]core.Vec3, width*height),
		Hits:   make([]bool, width*height),
	}
}

// Set stores the traced result for pixel (x, y)
func (f *Frame) Set(x, y int, c core.Vec3, hit bool) {
	idx := y*f.Width + x
	f.Colors[idx] = c
	f.Hits[idx] = hit
}

// At returns the traced result for pixel (x, y)
func (f *Frame) At(x, y int) (core.Vec3, bool) {
	idx := y*f.Width + x
	return f.Colors[idx], f.Hits[idx]
}

// Image converts the frame to 8-bit RGBA using the given gamma
func (f *Frame) Image(gamma float64) *image.RGBA {
	return f.RegionImage(image.Rect(0, 0, f.Width, f.Height), gamma)
}

// RegionImage converts the pixels inside bounds to an image anchored at (0,0)
func (f *Frame) RegionImage(bounds image.Rectangle, gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, _ := f.At(x, y)
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, vec3ToColor(c, gamma))
		}
	}
	return img
}

// Mask returns the coverage mask: 255 where a sphere was hit, 0 on background
func (f *Frame) Mask() *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, f.Width, f.Height))
	for i, hit := range f.Hits {
		if hit {
			mask.Pix[i] = 255
		}
	}
	return mask
}

// vec3ToColor converts a Vec3 color to RGBA with gamma correction and clamping.
// gamma <= 1 leaves values linear.
func vec3ToColor(colorVec core.Vec3, gamma float64) color.RGBA {
	if gamma > 1 {
		colorVec = colorVec.GammaCorrect(gamma)
	}

	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: 255,
	}
}
