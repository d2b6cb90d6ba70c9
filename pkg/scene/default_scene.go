package scene

import (
	"github.com/rmorris/go-pathtracer/pkg/core"
	"github.com/rmorris/go-pathtracer/pkg/geometry"
	"github.com/rmorris/go-pathtracer/pkg/material"
	"github.com/rmorris/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates a compact scene with one sphere per material
// variant resting on a large ground sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.0, // Pinhole; the cover scene shows off depth of field
		FocusDistance: 0.0, // Auto-calculate from look-at distance
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.5)
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	return &Scene{
		Camera:       renderer.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Shapes: []core.Shape{
			geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100.0, materialGround),
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, materialCenter),
			geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialLeft),
			geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, materialRight),
		},
		TopColor:    core.NewVec3(0.5, 0.7, 1.0), // Sky blue
		BottomColor: core.NewVec3(1.0, 1.0, 1.0), // White at the horizon
		SamplingConfig: renderer.SamplingConfig{
			SamplesPerPixel: 100,
			MaxDepth:        50,
		},
	}
}
