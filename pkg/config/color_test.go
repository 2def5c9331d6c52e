package config

import (
	"image/color"
	"testing"
)

// TestParseHexColor 测试十六进制颜色解析
func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"opaque rgb", "#d94f4f", color.RGBA{R: 0xd9, G: 0x4f, B: 0x4f, A: 0xff}, false},
		{"rgb with alpha", "#8ecbffcc", color.RGBA{R: 0x8e, G: 0xcb, B: 0xff, A: 0xcc}, false},
		{"uppercase digits", "#FFAA00", color.RGBA{R: 0xff, G: 0xaa, B: 0x00, A: 0xff}, false},
		{"black", "#000000", color.RGBA{A: 0xff}, false},
		{"missing hash", "d94f4f", color.RGBA{}, true},
		{"too short", "#d94", color.RGBA{}, true},
		{"too long", "#d94f4f4f4f", color.RGBA{}, true},
		{"non-hex digits", "#gggggg", color.RGBA{}, true},
		{"empty", "", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHexColor(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %+v, expected %+v", tt.input, got, tt.want)
			}
		})
	}
}

// TestHexColorOr 测试带回落的解析
func TestHexColorOr(t *testing.T) {
	fallback := color.RGBA{R: 1, G: 2, B: 3, A: 0xff}

	if got := HexColorOr("#102030", fallback); got.R != 0x10 || got.G != 0x20 || got.B != 0x30 {
		t.Errorf("HexColorOr with valid input should parse, got %+v", got)
	}
	if got := HexColorOr("not-a-color", fallback); got != fallback {
		t.Errorf("HexColorOr with invalid input should return fallback, got %+v", got)
	}
	if got := HexColorOr("", fallback); got != fallback {
		t.Errorf("HexColorOr with empty input should return fallback, got %+v", got)
	}
}
