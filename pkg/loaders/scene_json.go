package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fogleman/fauxgl"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/environment"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Color is a JSON color: either "#rrggbb" / "#rgb" or an [r, g, b] array of floats.
// Array values are taken as-is and may exceed 1 for bright lights.
type Color core.Vec3

// UnmarshalJSON accepts hex strings and float triples
func (c *Color) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		if err := validateHexColor(hex); err != nil {
			return err
		}
		fc := fauxgl.HexColor(hex)
		*c = Color{X: fc.R, Y: fc.G, Z: fc.B}
		return nil
	}

	var v Vector
	if err := v.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("color must be a hex string or [r, g, b] array: %w", err)
	}
	*c = Color(v)
	return nil
}

// validateHexColor requires "#" followed by 3 or 6 hex digits.
// fauxgl.HexColor maps anything else to black without an error.
func validateHexColor(hex string) error {
	body, ok := strings.CutPrefix(hex, "#")
	if !ok {
		return fmt.Errorf("color string %q must start with '#'", hex)
	}
	if len(body) != 3 && len(body) != 6 {
		return fmt.Errorf("color string %q must have 3 or 6 hex digits", hex)
	}
	if _, err := strconv.ParseUint(body, 16, 32); err != nil {
		return fmt.Errorf("color string %q is not valid hex", hex)
	}
	return nil
}

// Vec3 returns the color as a core vector
func (c Color) Vec3() core.Vec3 {
	return core.Vec3(c)
}

// Vector is a JSON [x, y, z] array
type Vector core.Vec3

// UnmarshalJSON decodes a three-element array
func (v *Vector) UnmarshalJSON(data []byte) error {
	var xyz []float64
	if err := json.Unmarshal(data, &xyz); err != nil {
		return err
	}
	if len(xyz) != 3 {
		return fmt.Errorf("expected 3 components, got %d", len(xyz))
	}
	*v = Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	return nil
}

// Vec3 returns the vector as a core vector
func (v Vector) Vec3() core.Vec3 {
	return core.Vec3(v)
}

type materialJSON struct {
	Diffuse   Color   `json:"diffuse"`
	Specular  Color   `json:"specular"`
	Shininess float64 `json:"shininess"`
}

type sphereJSON struct {
	Center   Vector        `json:"center"`
	Radius   float64       `json:"radius"`
	Material string        `json:"material"`
	Inline   *materialJSON `json:"inline,omitempty"`
}

type lightJSON struct {
	Position  Vector `json:"position"`
	Intensity Color  `json:"intensity"`
}

type environmentJSON struct {
	Type   string `json:"type"` // uniform, gradient, cubemap
	Color  Color  `json:"color"`
	Top    Color  `json:"top"`
	Bottom Color  `json:"bottom"`
	Dir    string `json:"dir"`
	Ext    string `json:"ext"`
	SwapYZ bool   `json:"swapYZ"`
}

type cameraJSON struct {
	Center      Vector  `json:"center"`
	LookAt      Vector  `json:"lookAt"`
	Up          Vector  `json:"up"`
	Width       int     `json:"width"`
	AspectRatio float64 `json:"aspectRatio"`
	VFov        float64 `json:"vfov"`
}

type sceneJSON struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Group       string                  `json:"group"`
	BounceLimit *int                    `json:"bounceLimit"`
	Camera      cameraJSON              `json:"camera"`
	Environment environmentJSON         `json:"environment"`
	Materials   map[string]materialJSON `json:"materials"`
	Spheres     []sphereJSON            `json:"spheres"`
	Lights      []lightJSON             `json:"lights"`
}

// SceneDescription is a parsed scene file ready to be turned into a scene
type SceneDescription struct {
	Name        string
	Description string
	BounceLimit *int // nil when the file leaves it to the caller
	Camera      geometry.CameraConfig
	Environment environment.Environment
	Spheres     []*geometry.Sphere
	Lights      []*lights.PointLight
}

// LoadSceneFile reads a JSON scene. Cube map directories are resolved relative to the file.
func LoadSceneFile(filename string) (*SceneDescription, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := ParseScene(file, filepath.Dir(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return desc, nil
}

// ParseScene decodes a JSON scene from r. baseDir resolves relative asset paths.
func ParseScene(r io.Reader, baseDir string) (*SceneDescription, error) {
	var raw sceneJSON
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	desc := &SceneDescription{
		Name:        raw.Name,
		Description: raw.Description,
		BounceLimit: raw.BounceLimit,
		Camera: geometry.CameraConfig{
			Center:      raw.Camera.Center.Vec3(),
			LookAt:      raw.Camera.LookAt.Vec3(),
			Up:          raw.Camera.Up.Vec3(),
			Width:       raw.Camera.Width,
			AspectRatio: raw.Camera.AspectRatio,
			VFov:        raw.Camera.VFov,
		},
	}

	env, err := buildEnvironment(raw.Environment, baseDir)
	if err != nil {
		return nil, err
	}
	desc.Environment = env

	for i, s := range raw.Spheres {
		var mat materialJSON
		switch {
		case s.Inline != nil:
			mat = *s.Inline
		case s.Material != "":
			named, ok := raw.Materials[s.Material]
			if !ok {
				return nil, fmt.Errorf("sphere %d: unknown material %q", i, s.Material)
			}
			mat = named
		default:
			return nil, fmt.Errorf("sphere %d: no material", i)
		}
		desc.Spheres = append(desc.Spheres, geometry.NewSphere(
			s.Center.Vec3(),
			s.Radius,
			material.NewMaterial(mat.Diffuse.Vec3(), mat.Specular.Vec3(), mat.Shininess),
		))
	}

	for _, l := range raw.Lights {
		desc.Lights = append(desc.Lights, lights.NewPointLight(l.Position.Vec3(), l.Intensity.Vec3()))
	}

	if len(desc.Spheres) == 0 {
		return nil, errors.New("scene has no spheres")
	}
	return desc, nil
}

func buildEnvironment(raw environmentJSON, baseDir string) (environment.Environment, error) {
	switch raw.Type {
	case "", "uniform":
		return environment.NewUniform(raw.Color.Vec3()), nil
	case "gradient":
		return environment.NewGradient(raw.Top.Vec3(), raw.Bottom.Vec3()), nil
	case "cubemap":
		if raw.Dir == "" {
			return nil, errors.New("cubemap environment requires dir")
		}
		dir := raw.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		cm, err := LoadCubeMap(dir, raw.Ext, raw.SwapYZ)
		if err != nil {
			return nil, err
		}
		return cm, nil
	default:
		return nil, fmt.Errorf("unknown environment type %q", raw.Type)
	}
}
