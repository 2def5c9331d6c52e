package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadParticleTable 测试粒子类别表加载
func TestLoadParticleTable(t *testing.T) {
	write := func(t *testing.T, yaml string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "particles.yaml")
		if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		return path
	}

	t.Run("valid table", func(t *testing.T) {
		validYAML := `particles:
  - name: splash
    color: "#8ecbff"
    radius: 0.08
    gravity: -9.0
    lifetime: 0.9
  - name: bubble
    color: "#f6f9ffd0"
    radius: 0.1
    gravity: 2.2
    lifetime: 1.6
`
		table, err := LoadParticleTable(write(t, validYAML))
		if err != nil {
			t.Fatalf("LoadParticleTable() failed: %v", err)
		}

		if table.Len() != 2 {
			t.Fatalf("Expected 2 particle classes, got %d", table.Len())
		}

		splash, ok := table.Class("splash")
		if !ok {
			t.Fatal("Expected to find class splash")
		}
		if splash.Gravity != -9.0 {
			t.Errorf("splash: expected gravity -9.0, got %v", splash.Gravity)
		}
		if splash.Lifetime != 0.9 {
			t.Errorf("splash: expected lifetime 0.9, got %v", splash.Lifetime)
		}

		bubble, ok := table.Class("bubble")
		if !ok {
			t.Fatal("Expected to find class bubble")
		}
		if bubble.Gravity <= 0 {
			t.Errorf("bubble should be a rising class, got gravity %v", bubble.Gravity)
		}

		if _, ok := table.Class("nonexistent"); ok {
			t.Error("Expected Class to miss for unknown name")
		}
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadParticleTable("nonexistent-particles.yaml")
		if err == nil {
			t.Error("Expected error for nonexistent file, got nil")
		}
	})

	t.Run("empty table rejected", func(t *testing.T) {
		_, err := LoadParticleTable(write(t, "particles: []\n"))
		if err == nil {
			t.Error("Expected error for empty particle table, got nil")
		}
	})

	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", `particles:
  - color: "#ffffff"
    radius: 0.1
    lifetime: 1.0
`},
		{"duplicate names", `particles:
  - name: splash
    color: "#ffffff"
    radius: 0.1
    lifetime: 1.0
  - name: splash
    color: "#000000"
    radius: 0.2
    lifetime: 2.0
`},
		{"zero radius", `particles:
  - name: splash
    color: "#ffffff"
    radius: 0
    lifetime: 1.0
`},
		{"zero lifetime", `particles:
  - name: splash
    color: "#ffffff"
    radius: 0.1
    lifetime: 0
`},
		{"bad color", `particles:
  - name: splash
    color: "blue"
    radius: 0.1
    lifetime: 1.0
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadParticleTable(write(t, tt.yaml))
			if err == nil {
				t.Errorf("Expected validation error for %q, got nil", tt.name)
			}
		})
	}
}
