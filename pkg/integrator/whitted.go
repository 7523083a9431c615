package integrator

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// WhittedIntegrator traces Blinn-Phong direct lighting plus bounded mirror reflections
type WhittedIntegrator struct{}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{}
}

// RayColor implements Integrator
func (wi *WhittedIntegrator) RayColor(ray core.Ray, s *scene.Scene) (core.Vec3, bool) {
	return Trace(ray, s)
}

// Shade computes the direct illumination at a hit seen from viewDir (pointing away from the surface).
// Each unoccluded light contributes its Blinn-Phong response scaled by its intensity.
// There is no ambient term and no clamping.
func Shade(hit *geometry.HitInfo, viewDir core.Vec3, s *scene.Scene) core.Vec3 {
	color := core.Vec3{}
	view := viewDir.Normalize()
	shadowOrigin := hit.Position.Add(hit.Normal.Multiply(core.Epsilon))

	for _, light := range s.Lights {
		lightDir, distance := light.Illuminate(hit.Position)
		if distance == 0 {
			continue
		}

		shadowRay := core.NewRay(shadowOrigin, lightDir)
		if geometry.Occluded(shadowRay, s.Spheres, distance) {
			continue
		}

		response := hit.Material.Evaluate(hit.Normal, lightDir, view)
		color = color.Add(response.MultiplyVec(light.Intensity))
	}

	return color
}

// Trace returns the color seen along ray and whether it hit any sphere.
// A miss returns the environment color for the ray direction. A hit returns the local
// shading plus up to BounceLimit mirror reflections, each weighted by the product of
// specular coefficients along the chain.
// Trace panics if the ray direction is zero.
func Trace(ray core.Ray, s *scene.Scene) (core.Vec3, bool) {
	if err := ray.Validate(); err != nil {
		panic(fmt.Sprintf("integrator.Trace: %v", err))
	}

	hit := s.Intersect(ray)
	if hit == nil {
		return s.Environment.Lookup(ray.Direction), false
	}

	state := bounceState{
		color:       Shade(hit, ray.Direction.Negate(), s),
		attenuation: hit.Material.Specular,
		incoming:    ray.Direction,
		hit:         hit,
	}
	for bounce := 0; bounce < s.BounceLimit && !state.done; bounce++ {
		state = state.reflect(s)
	}

	return state.color, true
}

// bounceState is the accumulator folded over reflection bounces
type bounceState struct {
	color       core.Vec3         // Radiance gathered so far
	attenuation core.Vec3         // Product of k_s along the chain
	incoming    core.Vec3         // Direction that arrived at hit
	hit         *geometry.HitInfo // Surface the next reflection leaves from
	done        bool
}

// reflect follows one mirror bounce from the current hit
func (b bounceState) reflect(s *scene.Scene) bounceState {
	if b.attenuation.AllNonPositive() {
		b.done = true
		return b
	}

	direction := b.incoming.Reflect(b.hit.Normal)
	origin := b.hit.Position.Add(b.hit.Normal.Multiply(core.Epsilon))
	next := s.Intersect(core.NewRay(origin, direction))

	if next == nil {
		b.color = b.color.Add(b.attenuation.MultiplyVec(s.Environment.Lookup(direction)))
		b.done = true
		return b
	}

	b.color = b.color.Add(b.attenuation.MultiplyVec(Shade(next, direction.Negate(), s)))
	b.attenuation = b.attenuation.MultiplyVec(next.Material.Specular)
	b.incoming = direction
	b.hit = next
	return b
}
