package scene

import (
	"github.com/rmorris/go-pathtracer/pkg/core"
	"github.com/rmorris/go-pathtracer/pkg/renderer"
)

// Scene holds everything needed to render: shapes, camera, background and
// the scene's recommended sampling configuration. It is read-only during
// rendering and safe for concurrent use.
type Scene struct {
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	Shapes         []core.Shape
	TopColor       core.Vec3 // Background gradient at the zenith
	BottomColor    core.Vec3 // Background gradient at the horizon
	SamplingConfig renderer.SamplingConfig
}

// GetCamera returns the scene's camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetBackgroundColors returns the background gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// Hit finds the closest intersection along the ray by shrinking tMax to the
// best t found so far. Which object wins an exact tie is arbitrary.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range s.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
