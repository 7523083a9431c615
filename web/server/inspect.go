package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit         bool              `json:"hit"`
	SphereIndex int               `json:"sphereIndex"`
	Point       [3]float64        `json:"point"`
	Normal      [3]float64        `json:"normal"`
	Distance    float64           `json:"distance"`
	Color       [3]float64        `json:"color"` // Traced, unclamped
	Material    *MaterialInfo     `json:"material,omitempty"`
	Sphere      *SphereInfo       `json:"sphere,omitempty"`
	Lights      []LightVisibility `json:"lights,omitempty"`
}

// MaterialInfo describes the Blinn-Phong coefficients of the hit sphere
type MaterialInfo struct {
	Diffuse   [3]float64 `json:"diffuse"`
	Specular  [3]float64 `json:"specular"`
	Shininess float64    `json:"shininess"`
	Color     string     `json:"color"` // Diffuse as #rrggbb
}

// SphereInfo describes the hit sphere
type SphereInfo struct {
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

// LightVisibility reports whether a light reaches the hit point
type LightVisibility struct {
	Index    int     `json:"index"`
	Visible  bool    `json:"visible"`
	Distance float64 `json:"distance"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	c := v.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

func extractMaterialInfo(mat material.Material) *MaterialInfo {
	return &MaterialInfo{
		Diffuse:   toArray(mat.Diffuse),
		Specular:  toArray(mat.Specular),
		Shininess: mat.Shininess,
		Color:     hexColor(mat.Diffuse),
	}
}

// lightVisibility casts one shadow ray per light from the hit point
func lightVisibility(hit *geometry.HitInfo, sceneObj *scene.Scene) []LightVisibility {
	origin := hit.Position.Add(hit.Normal.Multiply(core.Epsilon))
	result := make([]LightVisibility, 0, len(sceneObj.Lights))
	for i, light := range sceneObj.Lights {
		dir, distance := light.Illuminate(hit.Position)
		visible := distance > 0 && !geometry.Occluded(core.NewRay(origin, dir), sceneObj.Spheres, distance)
		result = append(result, LightVisibility{Index: i, Visible: visible, Distance: distance})
	}
	return result
}

// inspectPixel casts the camera ray through a pixel centre and describes what it sees
func inspectPixel(sceneObj *scene.Scene, camera *geometry.Camera, pixelX, pixelY int) InspectResponse {
	ray := camera.GetRay(pixelX, pixelY)
	color, _ := integrator.Trace(ray, sceneObj)

	hit := sceneObj.Intersect(ray)
	if hit == nil {
		return InspectResponse{Hit: false, SphereIndex: -1, Color: toArray(color)}
	}

	sphere := sceneObj.Spheres[hit.Index]
	return InspectResponse{
		Hit:         true,
		SphereIndex: hit.Index,
		Point:       toArray(hit.Position),
		Normal:      toArray(hit.Normal),
		Distance:    hit.T,
		Color:       toArray(color),
		Material:    extractMaterialInfo(hit.Material),
		Sphere:      &SphereInfo{Center: toArray(sphere.Center), Radius: sphere.Radius},
		Lights:      lightVisibility(hit, sceneObj),
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	inspectReq, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
	}

	pixelX, err := strconv.Atoi(c.QueryParam("x"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid x coordinate")
	}
	pixelY, err := strconv.Atoi(c.QueryParam("y"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid y coordinate")
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		return errorJSON(c, sceneErrorStatus(err), err.Error())
	}
	if err := sceneObj.Validate(); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	camera := geometry.NewCamera(sceneObj.CameraConfig)
	if pixelX < 0 || pixelX >= camera.Width() || pixelY < 0 || pixelY >= camera.Height() {
		return errorJSON(c, http.StatusBadRequest, "Pixel coordinates out of bounds")
	}

	return c.JSON(http.StatusOK, inspectPixel(sceneObj, camera, pixelX, pixelY))
}
