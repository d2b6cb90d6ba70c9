package scene

import (
	"math/rand"

	"github.com/rmorris/go-pathtracer/pkg/core"
	"github.com/rmorris/go-pathtracer/pkg/geometry"
	"github.com/rmorris/go-pathtracer/pkg/material"
	"github.com/rmorris/go-pathtracer/pkg/renderer"
)

// NewCoverScene creates the classic procedural scene: a grid of small
// randomly placed spheres with randomly chosen materials around three large
// feature spheres, all resting on a gray ground sphere. The layout is
// deterministic for a given seed.
func NewCoverScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	random := rand.New(rand.NewSource(seed))

	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	// Ground sphere shares one material instance across every render
	groundMaterial := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	shapes := []core.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, groundMaterial),
	}

	// Small spheres on a grid with jittered positions
	glassMaterial := material.NewDielectric(1.5)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				0.2,
				float64(b)+0.9*random.Float64(),
			)

			// Keep clear of the large feature spheres
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			chooseMaterial := random.Float64()
			var sphereMaterial core.Material
			switch {
			case chooseMaterial < 0.8:
				// Diffuse with squared-random albedo for saturated colors
				albedo := core.NewVec3(
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
				)
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMaterial < 0.95:
				albedo := core.NewVec3(
					0.5+0.5*random.Float64(),
					0.5+0.5*random.Float64(),
					0.5+0.5*random.Float64(),
				)
				sphereMaterial = material.NewMetal(albedo, 0.5*random.Float64())
			default:
				sphereMaterial = glassMaterial
			}

			shapes = append(shapes, geometry.NewSphere(center, 0.2, sphereMaterial))
		}
	}

	// Three large feature spheres, one per material variant
	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return &Scene{
		Camera:       renderer.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Shapes:       shapes,
		TopColor:     core.NewVec3(0.5, 0.7, 1.0),
		BottomColor:  core.NewVec3(1.0, 1.0, 1.0),
		SamplingConfig: renderer.SamplingConfig{
			SamplesPerPixel: 200,
			MaxDepth:        50,
		},
	}
}
