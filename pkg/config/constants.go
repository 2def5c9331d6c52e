package config

// 窗口与界面布局常量
//
// 逻辑分辨率固定为 960x640，Ebitengine 会按窗口大小自动缩放。
// 所有场景和 HUD 布局都基于这套逻辑坐标，不要直接使用窗口像素。
const (
	// GameWindowWidth 逻辑屏幕宽度（像素）
	GameWindowWidth = 960
	// GameWindowHeight 逻辑屏幕高度（像素）
	GameWindowHeight = 640
)

// HUD 布局常量（水疗场景）
const (
	// HUDBannerHeight 顶部阶段横幅高度
	HUDBannerHeight = 64
	// HUDProgressBarY 进度条的 Y 坐标
	HUDProgressBarY = 76
	// HUDProgressBarWidth 进度条宽度
	HUDProgressBarWidth = 420
	// HUDProgressBarHeight 进度条高度
	HUDProgressBarHeight = 14
	// HUDRackHeight 底部饰品架高度（换装阶段）
	HUDRackHeight = 120
	// HUDRackSlotSize 饰品架单个格子的边长
	HUDRackSlotSize = 84
	// HUDRackSlotGap 饰品架格子间距
	HUDRackSlotGap = 14
)

// 菜单布局常量
const (
	// MenuCardWidth 宠物选择卡片宽度
	MenuCardWidth = 220
	// MenuCardHeight 宠物选择卡片高度
	MenuCardHeight = 300
	// MenuCardGap 卡片间距
	MenuCardGap = 40
	// MenuCardY 卡片顶部 Y 坐标
	MenuCardY = 180
)
