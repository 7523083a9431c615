package environment

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CubeFace indexes the six faces of a cube map
type CubeFace int

const (
	FacePositiveX CubeFace = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ
)

// FaceNames are the conventional file stems for each face, in CubeFace order
var FaceNames = [6]string{"posx", "negx", "posy", "negy", "posz", "negz"}

// FaceImage is a precomputed face of linear RGB texels, row-major from the top-left
type FaceImage struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// CubeMap samples six precomputed faces using the OpenGL cube map convention
type CubeMap struct {
	faces  [6]*FaceImage
	swapYZ bool
}

// NewCubeMap creates a cube map from six faces. When swapYZ is set, lookups use
// (x, z, y) so that Z-up scenes can use Y-up environment images.
func NewCubeMap(faces [6]*FaceImage, swapYZ bool) (*CubeMap, error) {
	for i, face := range faces {
		if face == nil {
			return nil, fmt.Errorf("cube map face %s is missing", FaceNames[i])
		}
		if face.Width <= 0 || face.Height <= 0 || len(face.Pixels) != face.Width*face.Height {
			return nil, fmt.Errorf("cube map face %s has invalid size %dx%d (%d pixels)",
				FaceNames[i], face.Width, face.Height, len(face.Pixels))
		}
	}
	return &CubeMap{faces: faces, swapYZ: swapYZ}, nil
}

// Lookup implements Environment. A zero direction returns black.
func (cm *CubeMap) Lookup(direction core.Vec3) core.Vec3 {
	d := direction
	if cm.swapYZ {
		d = core.NewVec3(d.X, d.Z, d.Y)
	}

	face, u, v, ok := faceCoordinates(d)
	if !ok {
		return core.Vec3{}
	}
	return cm.faces[face].bilinear(u, v)
}

// faceCoordinates selects the major axis face and returns texture coordinates in [0,1]
func faceCoordinates(d core.Vec3) (CubeFace, float64, float64, bool) {
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)

	var face CubeFace
	var sc, tc, ma float64
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if d.X > 0 {
			face, sc, tc = FacePositiveX, -d.Z, -d.Y
		} else {
			face, sc, tc = FaceNegativeX, d.Z, -d.Y
		}
	case ay >= az:
		ma = ay
		if d.Y > 0 {
			face, sc, tc = FacePositiveY, d.X, d.Z
		} else {
			face, sc, tc = FaceNegativeY, d.X, -d.Z
		}
	default:
		ma = az
		if d.Z > 0 {
			face, sc, tc = FacePositiveZ, d.X, -d.Y
		} else {
			face, sc, tc = FaceNegativeZ, -d.X, -d.Y
		}
	}

	if ma == 0 || math.IsNaN(ma) {
		return 0, 0, 0, false
	}
	u := 0.5 * (sc/ma + 1)
	v := 0.5 * (tc/ma + 1)
	return face, u, v, true
}

// bilinear samples the face with clamp-to-edge addressing
func (f *FaceImage) bilinear(u, v float64) core.Vec3 {
	x := u*float64(f.Width) - 0.5
	y := v*float64(f.Height) - 0.5

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	c00 := f.at(x0, y0)
	c10 := f.at(x0+1, y0)
	c01 := f.at(x0, y0+1)
	c11 := f.at(x0+1, y0+1)

	top := c00.Multiply(1 - fx).Add(c10.Multiply(fx))
	bottom := c01.Multiply(1 - fx).Add(c11.Multiply(fx))
	return top.Multiply(1 - fy).Add(bottom.Multiply(fy))
}

func (f *FaceImage) at(x, y int) core.Vec3 {
	x = max(0, min(f.Width-1, x))
	y = max(0, min(f.Height-1, y))
	return f.Pixels[y*f.Width+x]
}
