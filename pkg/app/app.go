// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/petspa/pkg/config"
	"github.com/gonewx/petspa/pkg/game"
	"github.com/gonewx/petspa/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// PetID 指定直接护理的宠物（如 "cat"），为空则进入选择菜单
	PetID string
	// SkipMenu 跳过宠物选择菜单，直接进入美容会话（配合 --pet 参数）
	SkipMenu bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(48000)

	// 打开跨平台存储；失败时降级为仅内存模式，游戏仍可运行
	gdataManager, err := gdata.Open(gdata.Config{AppName: "petspa"})
	if err != nil {
		log.Printf("[App] 打开本地存储失败: %v（存档与设置仅保存在内存）", err)
		gdataManager = nil
	}

	// 加载配置
	tuning, err := config.LoadSpaConfig("data/config/spa.yaml")
	if err != nil {
		return nil, fmt.Errorf("护理调参配置加载失败: %w", err)
	}
	pets, err := config.LoadAllPetConfigs("data/pets")
	if err != nil {
		return nil, fmt.Errorf("宠物配置加载失败: %w", err)
	}
	catalog, err := config.LoadCosmeticCatalog("data/cosmetics.yaml")
	if err != nil {
		return nil, fmt.Errorf("饰品目录加载失败: %w", err)
	}
	particles, err := config.LoadParticleTable("data/particles.yaml")
	if err != nil {
		return nil, fmt.Errorf("粒子配置加载失败: %w", err)
	}
	spaStrings, err := game.NewSpaStrings("data/strings.txt")
	if err != nil {
		// 文案缺失不致命，退回内置文案继续跑
		log.Printf("[App] 界面文案加载失败: %v（使用内置文案）", err)
		spaStrings = game.DefaultSpaStrings()
	}
	log.Printf("[App] 配置加载完成: 宠物 %d 个, 饰品 %d 件", len(pets), len(catalog.All()))

	// 创建管理器并注入 GameState
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器创建失败: %w", err)
	}
	saveManager, err := game.NewSaveManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("存档管理器创建失败: %w", err)
	}

	// 新档或目录扩充后补齐初始饰品
	saveManager.EnsureStarters(catalog, pets)
	if err := saveManager.Save(); err != nil {
		log.Printf("[App] 保存初始饰品失败: %v", err)
	}

	audioManager := game.NewAudioManager(audioContext, settingsManager)

	gameState := game.GetGameState()
	gameState.SetSettingsManager(settingsManager)
	gameState.SetSaveManager(saveManager)
	gameState.SetAudioManager(audioManager)
	gameState.SetSpaStrings(spaStrings)
	log.Printf("[App] 管理器初始化完成")

	// 恢复上次的全屏偏好
	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	// 创建场景管理器并注册场景工厂
	sceneManager := game.NewSceneManager()
	sceneManager.SetMenuFactory(func() game.Scene {
		return scenes.NewMenuScene(sceneManager, pets, catalog)
	})
	sceneManager.SetSpaFactory(func(petID string) game.Scene {
		pet := findPet(pets, petID)
		if pet == nil {
			log.Printf("[App] 未知宠物: %s", petID)
			return nil
		}
		scene, err := scenes.NewSpaScene(sceneManager, pet, catalog, tuning, particles)
		if err != nil {
			log.Printf("[App] 创建美容场景失败: %v", err)
			return nil
		}
		return scene
	})

	// 根据配置决定启动场景
	if cfg.SkipMenu && cfg.PetID != "" {
		log.Printf("[App] 跳过菜单，直接护理: %s", cfg.PetID)
		sceneManager.OpenSpa(cfg.PetID)
	} else if cfg.PetID != "" {
		gameState.SelectPet(cfg.PetID)
	}
	if sceneManager.GetCurrentScene() == nil {
		sceneManager.OpenMenu()
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}, nil
}

// findPet 按 ID 查找宠物配置，找不到返回 nil
func findPet(pets []*config.PetConfig, petID string) *config.PetConfig {
	for _, pet := range pets {
		if pet.ID == petID {
			return pet
		}
	}
	return nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 窗口关闭请求：给当前场景一次落盘机会后正常退出
	// （需要 main 侧先调用 ebiten.SetWindowClosingHandled(true)）
	if ebiten.IsWindowBeingClosed() {
		if saveable, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
			if !saveable.SaveOnExit() {
				log.Printf("[App] 退出前保存失败")
			}
		}
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏，偏好随设置持久化
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settingsManager.SetFullscreen(!isFullscreen)
		if err := a.settingsManager.Save(); err != nil {
			log.Printf("[App] 保存全屏设置失败: %v", err)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear // 使用线性滤波减少锯齿和模糊
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时保存存档
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
