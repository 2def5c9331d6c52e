package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// MenuSceneFactory 菜单场景工厂函数类型
// 用于创建宠物选择菜单，避免 game 包对 scenes 包的循环依赖
type MenuSceneFactory func() Scene

// SpaSceneFactory 美容场景工厂函数类型
// 按宠物 ID 创建一次美容会话场景
type SpaSceneFactory func(petID string) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	menuFactory  MenuSceneFactory
	spaFactory   SpaSceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or the Open
// helpers to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetMenuFactory 设置菜单场景工厂函数
func (sm *SceneManager) SetMenuFactory(factory MenuSceneFactory) {
	sm.menuFactory = factory
}

// SetSpaFactory 设置美容场景工厂函数
func (sm *SceneManager) SetSpaFactory(factory SpaSceneFactory) {
	sm.spaFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The new scene's Update and Draw methods will be called on subsequent game loop iterations.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景
//
// 用于游戏关闭时检查当前场景是否需要保存状态
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// OpenMenu 切换到宠物选择菜单
func (sm *SceneManager) OpenMenu() {
	if sm.menuFactory == nil {
		log.Printf("[SceneManager] 错误: MenuSceneFactory 未设置")
		return
	}

	scene := sm.menuFactory()
	if scene == nil {
		log.Printf("[SceneManager] 错误: 无法创建菜单场景")
		return
	}
	sm.SwitchTo(scene)
	log.Printf("[SceneManager] 已切换到菜单")
}

// OpenSpa 为指定宠物打开一次美容会话
// petID: 宠物 ID，如 "cat"
func (sm *SceneManager) OpenSpa(petID string) {
	log.Printf("[SceneManager] 打开美容会话: %s", petID)

	if sm.spaFactory == nil {
		log.Printf("[SceneManager] 错误: SpaSceneFactory 未设置")
		return
	}

	scene := sm.spaFactory(petID)
	if scene == nil {
		log.Printf("[SceneManager] 错误: 无法创建美容场景: %s", petID)
		return
	}
	sm.SwitchTo(scene)
	log.Printf("[SceneManager] 成功切换到美容会话: %s", petID)
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
