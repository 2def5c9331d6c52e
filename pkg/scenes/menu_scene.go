package scenes

import (
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/petspa/pkg/config"
	"github.com/gonewx/petspa/pkg/game"
	"github.com/gonewx/petspa/pkg/utils"
)

// MenuScene 宠物选择菜单
//
// 把可护理的宠物排成一行卡片，卡片上显示名字、历史最佳星级和
// 护理次数；点击卡片开始该宠物的美容会话。右上角提供音效开关。
type MenuScene struct {
	sceneManager *game.SceneManager
	pets         []*config.PetConfig
	catalog      *config.CosmeticCatalog

	hoveredIndex int       // 指针悬停的卡片下标，-1 表示无
	hoverLift    []float64 // 每张卡片的悬停抬升进度 [0,1]
	clock        float64
}

// NewMenuScene 创建宠物选择菜单
//
// 参数:
//   - sm: 场景管理器，用于切换到美容场景
//   - pets: 宠物列表（加载顺序即卡片排列顺序）
//   - catalog: 饰品目录，页脚的衣柜统计用
//
// 返回:
//   - 新创建的 MenuScene 指针
func NewMenuScene(sm *game.SceneManager, pets []*config.PetConfig, catalog *config.CosmeticCatalog) *MenuScene {
	return &MenuScene{
		sceneManager: sm,
		pets:         pets,
		catalog:      catalog,
		hoveredIndex: -1,
		hoverLift:    make([]float64, len(pets)),
	}
}

// Update 处理悬停高亮与点击
func (m *MenuScene) Update(deltaTime float64) {
	m.clock += deltaTime

	px, py := utils.GetPointerPosition()
	m.hoveredIndex = m.cardIndexAt(px, py)

	// 悬停抬升渐入渐出
	for i := range m.hoverLift {
		target := 0.0
		if i == m.hoveredIndex {
			target = 1.0
		}
		m.hoverLift[i] = utils.Lerp(m.hoverLift[i], target, math.Min(deltaTime*10, 1))
	}

	pressed, cx, cy := utils.IsPointerJustPressed()
	if !pressed {
		return
	}

	if m.soundToggleRect().contains(cx, cy) {
		m.toggleSound()
		return
	}

	if idx := m.cardIndexAt(cx, cy); idx >= 0 {
		m.selectPet(m.pets[idx])
	}
}

// selectPet 记录选择并切换到该宠物的美容会话
func (m *MenuScene) selectPet(pet *config.PetConfig) {
	gs := game.GetGameState()
	gs.SelectPet(pet.ID)
	if am := gs.GetAudioManager(); am != nil {
		am.Play(game.SoundClick)
	}
	log.Printf("[MenuScene] 选择宠物: %s", pet.ID)
	m.sceneManager.OpenSpa(pet.ID)
}

// toggleSound 切换音效开关并立即持久化
func (m *MenuScene) toggleSound() {
	gs := game.GetGameState()
	settings := gs.GetSettingsManager()
	enabled := !settings.GetSettings().SoundEnabled
	settings.SetSoundEnabled(enabled)
	if err := settings.Save(); err != nil {
		log.Printf("[MenuScene] 保存设置失败: %v", err)
	}
	if enabled {
		if am := gs.GetAudioManager(); am != nil {
			am.Play(game.SoundClick)
		}
	}
}

// cardIndexAt 返回坐标命中的卡片下标，未命中返回 -1
func (m *MenuScene) cardIndexAt(x, y int) int {
	for i := range m.pets {
		if m.cardRect(i).contains(x, y) {
			return i
		}
	}
	return -1
}

// cardRect 第 index 张卡片的屏幕矩形（整行水平居中）
func (m *MenuScene) cardRect(index int) rect {
	count := len(m.pets)
	total := count*config.MenuCardWidth + (count-1)*config.MenuCardGap
	startX := (config.GameWindowWidth - total) / 2
	return rect{
		x: startX + index*(config.MenuCardWidth+config.MenuCardGap),
		y: config.MenuCardY,
		w: config.MenuCardWidth,
		h: config.MenuCardHeight,
	}
}

func (m *MenuScene) soundToggleRect() rect {
	return rect{x: config.GameWindowWidth - 104, y: 16, w: 88, h: 28}
}

// Draw 渲染标题、卡片一行与页脚
func (m *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(menuBackgroundColor)

	drawTextCentered(screen, uiText("MENU_TITLE"), config.GameWindowWidth/2, 56)
	drawTextCentered(screen, uiText("MENU_SUBTITLE"), config.GameWindowWidth/2, 88)

	saves := game.GetGameState().GetSaveManager()
	for i, pet := range m.pets {
		m.drawCard(screen, i, pet, saves)
	}

	m.drawSoundToggle(screen)
	m.drawFooter(screen, saves)
}

// drawCard 渲染单张宠物卡片
func (m *MenuScene) drawCard(screen *ebiten.Image, index int, pet *config.PetConfig, saves *game.SaveManager) {
	r := m.cardRect(index)
	hovered := index == m.hoveredIndex
	// 绘制位置随悬停抬升，命中判定仍用原始矩形
	r.y -= int(10 * utils.EaseOutCubic(m.hoverLift[index]))

	border := panelBorderColor
	if hovered {
		border = accentColor
	}
	vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), panelColor, true)
	vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 2, border, true)

	// 头像：身体色大圆叠点缀色小圆，悬停时轻微弹跳
	bounce := float32(0)
	if hovered {
		bounce = float32(4 * math.Abs(math.Sin(m.clock*6)))
	}
	cx := float32(r.x + r.w/2)
	cy := float32(r.y+112) - bounce
	body := config.HexColorOr(pet.Palette.Body, color.RGBA{0xc8, 0xa8, 0x80, 0xff})
	accent := config.HexColorOr(pet.Palette.Accent, color.RGBA{0xe8, 0xd8, 0xc0, 0xff})
	vector.DrawFilledCircle(screen, cx, cy, 56, body, true)
	vector.DrawFilledCircle(screen, cx, cy+16, 32, accent, true)

	drawTextCentered(screen, strings.ToUpper(pet.Name), r.x+r.w/2, r.y+194)
	drawStarRow(screen, r.x+r.w/2, r.y+230, saves.BestStars(pet.ID), 3)

	label := uiText("MENU_NOT_WASHED")
	if sessions := saves.Sessions(pet.ID); sessions > 0 {
		label = uiTextf("MENU_WASH_COUNT", sessions)
	}
	drawTextCentered(screen, label, r.x+r.w/2, r.y+260)
}

// drawSoundToggle 右上角音效开关按钮
func (m *MenuScene) drawSoundToggle(screen *ebiten.Image) {
	r := m.soundToggleRect()
	r.fill(screen, panelColor, panelBorderColor)

	label := uiText("MENU_SOUND_ON")
	if !game.GetGameState().GetSettingsManager().GetSettings().SoundEnabled {
		label = uiText("MENU_SOUND_OFF")
	}
	drawTextCentered(screen, label, r.x+r.w/2, r.y+7)
}

// drawFooter 页脚：悬停时显示宠物简介，否则显示衣柜解锁进度
func (m *MenuScene) drawFooter(screen *ebiten.Image, saves *game.SaveManager) {
	y := config.GameWindowHeight - 40
	if m.hoveredIndex >= 0 && m.hoveredIndex < len(m.pets) {
		drawTextCentered(screen, strings.ToUpper(m.pets[m.hoveredIndex].Description), config.GameWindowWidth/2, y)
		return
	}
	if m.catalog == nil {
		return
	}
	text := uiTextf("MENU_WARDROBE", len(saves.UnlockedCosmetics()), len(m.catalog.All()))
	drawTextCentered(screen, text, config.GameWindowWidth/2, y)
}
