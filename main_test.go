package main

import (
	"testing"

	"github.com/rmorris/go-pathtracer/pkg/config"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"cover scene", "cover", false},
		{"default scene", "default", false},
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	cfg := config.Default()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType, cfg)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
				}
				if scene == nil {
					t.Fatalf("Expected a scene for type '%s'", tt.sceneType)
				}
				if scene.Camera == nil {
					t.Errorf("Scene '%s' has no camera", tt.sceneType)
				}
			}
		})
	}
}

func TestCreateScene_AppliesCameraOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.VFov = 33
	cfg.Image.Width = 200
	cfg.Image.Height = 100

	scene, err := createScene("cover", cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if scene.CameraConfig.VFov != 33 {
		t.Errorf("Expected VFov override 33, got %f", scene.CameraConfig.VFov)
	}
	if scene.CameraConfig.AspectRatio != 2.0 {
		t.Errorf("Expected aspect ratio 2.0 from image dimensions, got %f", scene.CameraConfig.AspectRatio)
	}
}
