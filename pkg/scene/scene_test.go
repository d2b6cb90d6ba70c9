package scene

import (
	"context"
	"math"
	"testing"

	"github.com/rmorris/go-pathtracer/pkg/core"
	"github.com/rmorris/go-pathtracer/pkg/geometry"
	"github.com/rmorris/go-pathtracer/pkg/material"
	"github.com/rmorris/go-pathtracer/pkg/renderer"
)

type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}

func TestScene_Hit_ReturnsClosest(t *testing.T) {
	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	s := &Scene{
		Shapes: []core.Shape{
			geometry.NewSphere(core.NewVec3(0, 0, -10), 1.0, gray),
			geometry.NewSphere(core.NewVec3(0, 0, -5), 1.0, gray),
			geometry.NewSphere(core.NewVec3(0, 0, -20), 1.0, gray),
		},
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := s.Hit(ray, 0.001, math.Inf(1))

	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	// The closest sphere's near surface is at z=-4, so t=4
	if math.Abs(hit.T-4.0) > 1e-9 {
		t.Errorf("Expected closest hit at t=4, got t=%f", hit.T)
	}
}

func TestScene_Hit_EmptyScene(t *testing.T) {
	s := &Scene{}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := s.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Expected miss in an empty scene")
	}
}

func TestScene_Hit_RespectsTMax(t *testing.T) {
	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s := &Scene{
		Shapes: []core.Shape{
			geometry.NewSphere(core.NewVec3(0, 0, -5), 1.0, gray),
		},
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, isHit := s.Hit(ray, 0.001, 3.0); isHit {
		t.Error("Expected miss when tMax is closer than the sphere")
	}
}

func TestNewDefaultScene(t *testing.T) {
	s := NewDefaultScene()

	if len(s.Shapes) != 4 {
		t.Errorf("Expected 4 shapes, got %d", len(s.Shapes))
	}
	if s.Camera == nil {
		t.Fatal("Expected a constructed camera")
	}
	if s.SamplingConfig.SamplesPerPixel < 1 || s.SamplingConfig.MaxDepth < 1 {
		t.Errorf("Invalid sampling config %+v", s.SamplingConfig)
	}
}

func TestNewCoverScene_DeterministicForSeed(t *testing.T) {
	a := NewCoverScene(42)
	b := NewCoverScene(42)

	if len(a.Shapes) != len(b.Shapes) {
		t.Fatalf("Expected identical layouts, got %d vs %d shapes", len(a.Shapes), len(b.Shapes))
	}

	for i := range a.Shapes {
		sphereA := a.Shapes[i].(*geometry.Sphere)
		sphereB := b.Shapes[i].(*geometry.Sphere)
		if sphereA.Center != sphereB.Center || sphereA.Radius != sphereB.Radius {
			t.Fatalf("Sphere %d differs between identical seeds", i)
		}
	}

	// A different seed moves the small spheres
	c := NewCoverScene(7)
	same := 0
	for i := range a.Shapes {
		if i >= len(c.Shapes) {
			break
		}
		if a.Shapes[i].(*geometry.Sphere).Center == c.Shapes[i].(*geometry.Sphere).Center {
			same++
		}
	}
	if same == len(a.Shapes) {
		t.Error("Different seeds produced identical layouts")
	}
}

func TestNewCoverScene_CameraOverrides(t *testing.T) {
	s := NewCoverScene(42, renderer.CameraConfig{VFov: 35, AspectRatio: 2.0})

	if s.CameraConfig.VFov != 35 {
		t.Errorf("Expected overridden VFov 35, got %f", s.CameraConfig.VFov)
	}
	if s.CameraConfig.Aperture != 0.1 {
		t.Errorf("Expected default aperture 0.1, got %f", s.CameraConfig.Aperture)
	}
}

func TestEndToEnd_GroundAndSky(t *testing.T) {
	// One large gray ground sphere and one small sphere above it, rendered
	// at low resolution: the top rows must trend towards sky blue, the
	// bottom rows towards neutral gray, with no invalid channels anywhere
	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	s := &Scene{
		Camera: renderer.NewCamera(renderer.CameraConfig{
			LookFrom:    core.NewVec3(0, 1, 5),
			LookAt:      core.NewVec3(0, 1, 0),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        60,
			AspectRatio: 2.0,
		}),
		Shapes: []core.Shape{
			geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, gray),
			geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, gray),
		},
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}

	rt := renderer.NewRaytracer(s, 20, 10)
	rt.SetSamplingConfig(renderer.SamplingConfig{SamplesPerPixel: 4, MaxDepth: 5})

	img, _, err := rt.Render(context.Background(), renderer.ParallelConfig{
		TileSize:   8,
		NumWorkers: 2,
		Seed:       42,
	}, nopLogger{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Sky at the top corner: blue channel dominates red
	top := img.RGBAAt(1, 0)
	if top.B <= top.R {
		t.Errorf("Expected blue-ish sky at the top, got R=%d B=%d", top.R, top.B)
	}

	// Ground at the bottom: all channels close to each other (gray-ish)
	bottom := img.RGBAAt(10, 9)
	maxC := max(bottom.R, max(bottom.G, bottom.B))
	minC := min(bottom.R, min(bottom.G, bottom.B))
	if maxC-minC > 60 {
		t.Errorf("Expected near-gray ground at the bottom, got RGB (%d, %d, %d)", bottom.R, bottom.G, bottom.B)
	}

	// Every pixel was written and is fully opaque
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			if img.RGBAAt(x, y).A != 255 {
				t.Fatalf("Pixel (%d,%d) not written", x, y)
			}
		}
	}
}
