package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/petspa/pkg/game"
)

// 调试字体的字符单元尺寸（ebitenutil.DebugPrintAt 固定字号）
const (
	debugCharWidth  = 6
	debugLineHeight = 16
)

// 场景共用的界面配色
var (
	menuBackgroundColor = color.RGBA{0xf6, 0xef, 0xe6, 0xff} // 奶油底色
	spaBackgroundColor  = color.RGBA{0xdc, 0xee, 0xf2, 0xff} // 浴室浅蓝
	panelColor          = color.RGBA{0xff, 0xfb, 0xf4, 0xff}
	panelBorderColor    = color.RGBA{0xc9, 0xba, 0xa4, 0xff}
	inkColor            = color.RGBA{0x4a, 0x40, 0x38, 0xff}
	accentColor         = color.RGBA{0xe8, 0x7a, 0xa4, 0xff} // 主题粉
	starGoldColor       = color.RGBA{0xe8, 0xc3, 0x4a, 0xff}
	starEmptyColor      = color.RGBA{0xcf, 0xc6, 0xb8, 0xff}
	dimOverlayColor     = color.RGBA{0x00, 0x00, 0x00, 0x8c} // 结果页压暗层
)

// uiText 从文案表取一条界面文案
func uiText(key string) string {
	return game.GetGameState().GetSpaStrings().GetString(key)
}

// uiTextf 取带格式占位的文案并填入参数
func uiTextf(key string, args ...interface{}) string {
	return fmt.Sprintf(uiText(key), args...)
}

// rect 整数像素矩形，场景里的按钮与卡片命中判定用
type rect struct {
	x, y, w, h int
}

func (r rect) contains(px, py int) bool {
	return px >= r.x && px < r.x+r.w && py >= r.y && py < r.y+r.h
}

// fill 绘制矩形底色与描边
func (r rect) fill(screen *ebiten.Image, fillColor, borderColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), fillColor, true)
	vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 1, borderColor, true)
}

// drawTextLeft 绘制一行调试字体文本（仅 ASCII）
//
// 调试字体是白色字形，浅色背景上直接绘制看不清，所以先垫一块
// 深色底条再写字。
func drawTextLeft(screen *ebiten.Image, text string, x, y int) {
	if text == "" {
		return
	}
	w := float32(len(text)*debugCharWidth + 8)
	vector.DrawFilledRect(screen, float32(x-4), float32(y-1), w, debugLineHeight+2, fadeColor(inkColor, 0.85), false)
	ebitenutil.DebugPrintAt(screen, text, x, y)
}

// drawTextCentered 以 centerX 为中心绘制一行调试字体文本（仅 ASCII）
func drawTextCentered(screen *ebiten.Image, text string, centerX, y int) {
	drawTextLeft(screen, text, centerX-len(text)*debugCharWidth/2, y)
}

// drawStarRow 绘制一行星级圆点，earned 颗点亮
func drawStarRow(screen *ebiten.Image, centerX, centerY, earned, total int) {
	const gap = 28
	startX := float32(centerX) - float32(total-1)*gap/2
	for i := 0; i < total; i++ {
		clr := starEmptyColor
		if i < earned {
			clr = starGoldColor
		}
		vector.DrawFilledCircle(screen, startX+float32(i)*gap, float32(centerY), 9, clr, true)
	}
}

// fadeColor 返回按 alpha 衰减后的颜色（预乘 alpha）
func fadeColor(clr color.RGBA, alpha float64) color.RGBA {
	if alpha <= 0 {
		return color.RGBA{}
	}
	if alpha >= 1 {
		return clr
	}
	return color.RGBA{
		R: uint8(float64(clr.R) * alpha),
		G: uint8(float64(clr.G) * alpha),
		B: uint8(float64(clr.B) * alpha),
		A: uint8(float64(clr.A) * alpha),
	}
}
