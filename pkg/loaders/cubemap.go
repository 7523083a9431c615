package loaders

import (
	"fmt"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/environment"
)

// LoadCubeMap loads posx/negx/posy/negy/posz/negz.<ext> from dir
func LoadCubeMap(dir, ext string, swapYZ bool) (*environment.CubeMap, error) {
	if ext == "" {
		ext = "png"
	}

	var faces [6]*environment.FaceImage
	for i, name := range environment.FaceNames {
		path := filepath.Join(dir, name+"."+ext)
		data, err := LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("cube map face %s: %w", name, err)
		}
		faces[i] = data.FaceImage()
	}

	return environment.NewCubeMap(faces, swapYZ)
}
