package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor 解析 "#rrggbb" 或 "#rrggbbaa" 格式的十六进制颜色
//
// 配置文件中所有颜色（宠物配色、饰品颜色、粒子颜色）都使用这种写法。
// 省略 alpha 时默认完全不透明。
//
// 参数：
//   - s: 颜色字符串，如 "#ffd166" 或 "#ffffff80"
//
// 返回：
//   - color.RGBA: 解析后的颜色
//   - error: 格式非法时返回错误
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected #rrggbb or #rrggbbaa", s)
	}

	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	if len(hex) == 6 {
		return color.RGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 0xff,
		}, nil
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// HexColorOr 解析颜色，失败时返回给定的回退值
//
// 用于渲染路径上的“宽容”读取：配置在加载阶段已经校验过，
// 这里兜底只是防御式编程，不会在正常流程中触发。
func HexColorOr(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return fallback
	}
	return c
}
