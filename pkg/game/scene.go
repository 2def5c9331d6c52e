package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is one full-screen state of the app (the pet select menu or a
// grooming session). The scene manager drives exactly one scene's
// Update and Draw per tick.
type Scene interface {
	// Update advances the scene by deltaTime seconds.
	Update(deltaTime float64)

	// Draw renders the scene onto screen.
	Draw(screen *ebiten.Image)
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 用户通过 OS 命令关闭程序
//
// 美容会话场景靠它在强制退出时落盘已有的进度与设置。
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
