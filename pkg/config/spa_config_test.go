package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultSpaConfig 验证内置默认参数通过自身校验
func TestDefaultSpaConfig(t *testing.T) {
	cfg := DefaultSpaConfig()
	if err := validateSpaConfig(cfg); err != nil {
		t.Fatalf("DefaultSpaConfig() failed validation: %v", err)
	}

	// 抽查关键出厂值
	if cfg.Scrub.Increment != 0.025 {
		t.Errorf("Expected scrub increment 0.025, got %v", cfg.Scrub.Increment)
	}
	if cfg.Brush.Target != 14 {
		t.Errorf("Expected brush target 14, got %d", cfg.Brush.Target)
	}
	if cfg.Stars.Three != 12 || cfg.Stars.Two != 7 {
		t.Errorf("Expected star thresholds 12/7, got %d/%d", cfg.Stars.Three, cfg.Stars.Two)
	}
}

// TestLoadSpaConfig 测试水疗参数文件加载
func TestLoadSpaConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "spa.yaml")

		validYAML := `scrub:
  increment: 0.05
  settleDelay: 0.5
time:
  fast: 6
  medium: 12
  slow: 20
evenness:
  great: 0.1
  good: 0.2
  fair: 0.3
brush:
  target: 10
  flipEvery: 2
  minStrokePx: 16
  streakGreat: 5
  streakGood: 3
  streakFair: 1
stars:
  three: 11
  two: 6
burst:
  count: 4
  celebration: 30
`
		if err := os.WriteFile(testFile, []byte(validYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		cfg, err := LoadSpaConfig(testFile)
		if err != nil {
			t.Fatalf("LoadSpaConfig() failed: %v", err)
		}

		if cfg.Scrub.Increment != 0.05 {
			t.Errorf("Expected scrub increment 0.05, got %v", cfg.Scrub.Increment)
		}
		if cfg.Scrub.SettleDelay != 0.5 {
			t.Errorf("Expected settle delay 0.5, got %v", cfg.Scrub.SettleDelay)
		}
		if cfg.Time.Fast != 6 || cfg.Time.Medium != 12 || cfg.Time.Slow != 20 {
			t.Errorf("Expected time thresholds 6/12/20, got %v/%v/%v",
				cfg.Time.Fast, cfg.Time.Medium, cfg.Time.Slow)
		}
		if cfg.Brush.FlipEvery != 2 {
			t.Errorf("Expected flipEvery 2, got %d", cfg.Brush.FlipEvery)
		}
		if cfg.Burst.Celebration != 30 {
			t.Errorf("Expected celebration burst 30, got %d", cfg.Burst.Celebration)
		}
	})

	t.Run("missing fields use defaults", func(t *testing.T) {
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "partial.yaml")

		// 只覆盖擦洗增量，其余字段应回落到默认值
		partialYAML := `scrub:
  increment: 0.1
`
		if err := os.WriteFile(testFile, []byte(partialYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		cfg, err := LoadSpaConfig(testFile)
		if err != nil {
			t.Fatalf("LoadSpaConfig() failed: %v", err)
		}

		if cfg.Scrub.Increment != 0.1 {
			t.Errorf("Expected overridden increment 0.1, got %v", cfg.Scrub.Increment)
		}

		def := DefaultSpaConfig()
		if cfg.Time.Fast != def.Time.Fast {
			t.Errorf("Expected default fast threshold %v, got %v", def.Time.Fast, cfg.Time.Fast)
		}
		if cfg.Brush.Target != def.Brush.Target {
			t.Errorf("Expected default brush target %d, got %d", def.Brush.Target, cfg.Brush.Target)
		}
		if cfg.Evenness.Great != def.Evenness.Great {
			t.Errorf("Expected default evenness great %v, got %v", def.Evenness.Great, cfg.Evenness.Great)
		}
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadSpaConfig("nonexistent-spa.yaml")
		if err == nil {
			t.Error("Expected error for nonexistent file, got nil")
		}
	})

	t.Run("invalid YAML", func(t *testing.T) {
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "invalid.yaml")

		invalidYAML := `scrub:
  increment: [not a number
`
		if err := os.WriteFile(testFile, []byte(invalidYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		_, err := LoadSpaConfig(testFile)
		if err == nil {
			t.Error("Expected error for invalid YAML, got nil")
		}
	})
}

// TestValidateSpaConfig 测试参数校验规则
func TestValidateSpaConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SpaConfig)
	}{
		{"increment zero", func(c *SpaConfig) { c.Scrub.Increment = 0 }},
		{"increment above one", func(c *SpaConfig) { c.Scrub.Increment = 1.5 }},
		{"negative settle delay", func(c *SpaConfig) { c.Scrub.SettleDelay = -1 }},
		{"time thresholds out of order", func(c *SpaConfig) { c.Time.Medium = c.Time.Slow + 1 }},
		{"evenness thresholds out of order", func(c *SpaConfig) { c.Evenness.Good = c.Evenness.Fair + 0.1 }},
		{"brush target zero", func(c *SpaConfig) { c.Brush.Target = 0 }},
		{"flip interval zero", func(c *SpaConfig) { c.Brush.FlipEvery = 0 }},
		{"stroke threshold zero", func(c *SpaConfig) { c.Brush.MinStrokePx = 0 }},
		{"streak thresholds out of order", func(c *SpaConfig) { c.Brush.StreakGood = c.Brush.StreakGreat }},
		{"star thresholds inverted", func(c *SpaConfig) { c.Stars.Three = c.Stars.Two }},
		{"burst count zero", func(c *SpaConfig) { c.Burst.Count = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSpaConfig()
			tt.mutate(cfg)
			if err := validateSpaConfig(cfg); err == nil {
				t.Errorf("Expected validation error for %q, got nil", tt.name)
			}
		})
	}
}
