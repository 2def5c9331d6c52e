package scenes

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/petspa/pkg/config"
	"github.com/gonewx/petspa/pkg/game"
	"github.com/gonewx/petspa/pkg/grooming"
	"github.com/gonewx/petspa/pkg/petview"
	"github.com/gonewx/petspa/pkg/utils"
)

// SpaScene 美容会话场景
//
// 持有一次护理会话的全部运行件：护理引擎、宠物视图、表情动画器
// 和拖拽状态机。场景负责把指针输入翻译成引擎事件、绘制阶段 HUD，
// 并在引擎交付结果时写存档、播放星级音效。
type SpaScene struct {
	sceneManager *game.SceneManager

	pet     *config.PetConfig
	catalog *config.CosmeticCatalog

	engine *grooming.Engine
	view   *petview.View
	drag   *utils.DragManager

	outcome         grooming.Outcome
	outcomeReceived bool
	rewardID        string // 三星奖励解锁的饰品 ID，空表示没有

	clock           float64
	bannerClock     float64 // 距上次阶段切换的时间，横幅闪烁用
	starClock       float64 // 结果页星星逐颗弹出的计时
	shownProgress   float64 // 进度条显示值，向真实进度平滑逼近
	lastPhase       grooming.Phase
	lastBrushStreak int
	leaving         bool
}

// NewSpaScene 创建美容场景并立即开始一次会话
//
// 装配顺序：表情动画器与宠物视图 → 护理引擎 → 用存档里的解锁
// 列表和上次装扮启动会话。任一步失败返回错误，由场景工厂决定
// 回退行为。
//
// 参数:
//   - sm: 场景管理器
//   - pet: 宠物配置
//   - catalog: 饰品目录
//   - tuning: 护理调参
//   - particles: 粒子股表
func NewSpaScene(sm *game.SceneManager, pet *config.PetConfig, catalog *config.CosmeticCatalog, tuning *config.SpaConfig, particles *config.ParticleTable) (*SpaScene, error) {
	if pet == nil {
		return nil, fmt.Errorf("nil pet config")
	}

	scene := &SpaScene{
		sceneManager: sm,
		pet:          pet,
		catalog:      catalog,
		drag:         utils.NewDragManager(),
		lastPhase:    grooming.PhaseWash,
	}

	animator := petview.NewAnimator()
	view := petview.New(pet, catalog, animator, config.GameWindowWidth, config.GameWindowHeight)

	engine, err := grooming.NewEngine(grooming.EngineOptions{
		View:      view,
		Animator:  animator,
		Tuning:    tuning,
		Particles: particles,
		Catalog:   catalog,
		OnOutcome: scene.handleOutcome,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create grooming engine: %w", err)
	}

	saves := game.GetGameState().GetSaveManager()
	err = engine.Start(grooming.PetDescriptor{
		ID:   pet.ID,
		Name: pet.Name,
		Cosmetics: grooming.CosmeticState{
			Unlocked: saves.UnlockedCosmetics(),
			Equipped: saves.LastEquipped(pet.ID),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start grooming session: %w", err)
	}

	scene.engine = engine
	scene.view = view
	log.Printf("[SpaScene] 开始护理会话: %s", pet.ID)
	return scene, nil
}

// handleOutcome 引擎结果回调
//
// 正常结算与取消都会走到，且恰好一次。取消交付空结果，不留痕迹；
// 正常结果立即写存档并播放星级音效，不等玩家离开结果页。
func (s *SpaScene) handleOutcome(outcome grooming.Outcome) {
	s.outcome = outcome
	s.outcomeReceived = true
	if outcome.Empty() {
		return
	}

	gs := game.GetGameState()
	saves := gs.GetSaveManager()
	s.rewardID = saves.RecordSession(s.pet.ID, outcome, s.catalog)
	if err := saves.Save(); err != nil {
		log.Printf("[SpaScene] 保存存档失败: %v", err)
	}
	gs.RecordOutcome(outcome.Stars)
	if am := gs.GetAudioManager(); am != nil {
		am.PlayStarChime(outcome.Stars)
	}
	s.starClock = 0
}

// Update 每 tick 推进会话
func (s *SpaScene) Update(deltaTime float64) {
	s.clock += deltaTime
	s.bannerClock += deltaTime

	if phase := s.engine.Phase(); phase != s.lastPhase {
		s.onPhaseChanged(phase)
	}
	if s.engine.Phase() == grooming.PhaseResult {
		s.starClock += deltaTime
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.leave()
		return
	}

	s.handlePointerInput()
	s.engine.Update(deltaTime)
	s.view.Update(deltaTime)
	s.watchBrushStreak()
	s.shownProgress = utils.Lerp(s.shownProgress, s.engine.OverallProgress(), math.Min(deltaTime*12, 1))
}

// onPhaseChanged 阶段切换时重置横幅计时并提示音
func (s *SpaScene) onPhaseChanged(phase grooming.Phase) {
	s.lastPhase = phase
	s.bannerClock = 0
	s.lastBrushStreak = 0
	s.shownProgress = 0 // 新阶段的进度条从空开始长，不做回缩动画
	// 结算阶段的声音由 handleOutcome 的星级音效负责
	if phase != grooming.PhaseResult {
		s.playSound(game.SoundAdvance)
	}
}

// watchBrushStreak 连击被清零时播放失误音
func (s *SpaScene) watchBrushStreak() {
	state, ok := s.engine.BrushState()
	if !ok {
		return
	}
	if state.Streak == 0 && s.lastBrushStreak > 0 {
		s.playSound(game.SoundMiss)
	}
	s.lastBrushStreak = state.Streak
}

// handlePointerInput 把拖拽状态机翻译成引擎指针事件
//
// 按下发 PointerDown，按住期间每 tick 发 PointerDrag，松开发
// PointerUp。HUD 按钮（返回、完成装扮、饰品架）在按下瞬间拦截，
// 不喂给引擎；结果页任意点击返回菜单。
func (s *SpaScene) handlePointerInput() {
	s.drag.Update()

	if s.engine.Phase() == grooming.PhaseResult {
		if s.drag.JustStarted() {
			s.leave()
		}
		return
	}

	info := s.drag.GetInfo()
	switch {
	case s.drag.JustStarted():
		if s.handleHUDPress(info.StartX, info.StartY) {
			s.drag.Reset()
			return
		}
		s.engine.HandlePointer(grooming.PointerEvent{Type: grooming.PointerDown, X: float64(info.StartX), Y: float64(info.StartY)})
		s.playPhaseTouchSound()
	case s.drag.IsDragging():
		s.engine.HandlePointer(grooming.PointerEvent{Type: grooming.PointerDrag, X: float64(info.CurrentX), Y: float64(info.CurrentY)})
	case s.drag.JustEnded():
		s.engine.HandlePointer(grooming.PointerEvent{Type: grooming.PointerUp, X: float64(info.CurrentX), Y: float64(info.CurrentY)})
	}
}

// handleHUDPress 处理按在 HUD 控件上的触点，返回是否已消费
func (s *SpaScene) handleHUDPress(x, y int) bool {
	if backButtonRect().contains(x, y) {
		s.leave()
		return true
	}

	if s.engine.Phase() != grooming.PhaseDressup {
		return false
	}

	if doneButtonRect().contains(x, y) {
		s.engine.FinishDressup()
		return true
	}

	ids := s.engine.UnlockedCosmetics()
	for i, id := range ids {
		if rackSlotRect(i, len(ids)).contains(x, y) {
			s.engine.ToggleCosmetic(id)
			s.playSound(game.SoundEquip)
			return true
		}
	}
	return false
}

// playPhaseTouchSound 按下时播放当前阶段的动作音
func (s *SpaScene) playPhaseTouchSound() {
	switch s.engine.Phase() {
	case grooming.PhaseWash, grooming.PhaseRinse:
		s.playSound(game.SoundSplash)
	case grooming.PhaseSoap:
		s.playSound(game.SoundBubble)
	case grooming.PhaseDry:
		s.playSound(game.SoundDryer)
	case grooming.PhaseBrush:
		s.playSound(game.SoundBrush)
	}
}

func (s *SpaScene) playSound(soundID string) {
	if am := game.GetGameState().GetAudioManager(); am != nil {
		am.Play(soundID)
	}
}

// leave 退出场景返回菜单；未结算的会话按取消处理
func (s *SpaScene) leave() {
	if s.leaving {
		return
	}
	s.leaving = true
	s.engine.Cancel()
	s.sceneManager.OpenMenu()
}

// SaveOnExit 窗口直接关闭时的兜底落盘
//
// 会话结算在 handleOutcome 里已即时保存，这里只补写可能还在
// 内存里的存档与设置变更。
func (s *SpaScene) SaveOnExit() bool {
	gs := game.GetGameState()
	ok := true
	if err := gs.GetSaveManager().Save(); err != nil {
		log.Printf("[SpaScene] 退出时保存存档失败: %v", err)
		ok = false
	}
	if err := gs.GetSettingsManager().Save(); err != nil {
		log.Printf("[SpaScene] 退出时保存设置失败: %v", err)
		ok = false
	}
	return ok
}

func backButtonRect() rect {
	return rect{x: 12, y: 14, w: 36, h: 36}
}

func doneButtonRect() rect {
	return rect{x: config.GameWindowWidth - 136, y: config.HUDBannerHeight + 12, w: 120, h: 32}
}

// rackSlotRect 饰品架第 index 个格子的屏幕矩形（整行水平居中）
func rackSlotRect(index, count int) rect {
	total := count*config.HUDRackSlotSize + (count-1)*config.HUDRackSlotGap
	startX := (config.GameWindowWidth - total) / 2
	y := config.GameWindowHeight - config.HUDRackHeight + (config.HUDRackHeight-config.HUDRackSlotSize)/2
	return rect{
		x: startX + index*(config.HUDRackSlotSize+config.HUDRackSlotGap),
		y: y,
		w: config.HUDRackSlotSize,
		h: config.HUDRackSlotSize,
	}
}

// phaseTitle 阶段在横幅上的显示文案
func phaseTitle(phase grooming.Phase) string {
	switch phase {
	case grooming.PhaseWash:
		return uiText("PHASE_TITLE_WASH")
	case grooming.PhaseSoap:
		return uiText("PHASE_TITLE_SOAP")
	case grooming.PhaseRinse:
		return uiText("PHASE_TITLE_RINSE")
	case grooming.PhaseDry:
		return uiText("PHASE_TITLE_DRY")
	case grooming.PhaseBrush:
		return uiText("PHASE_TITLE_BRUSH")
	case grooming.PhaseDressup:
		return uiText("PHASE_TITLE_DRESSUP")
	case grooming.PhaseResult:
		return uiText("PHASE_TITLE_RESULT")
	}
	return strings.ToUpper(phase.String())
}

// phaseHint 阶段的底部操作提示
func phaseHint(phase grooming.Phase) string {
	switch phase {
	case grooming.PhaseWash:
		return uiText("PHASE_HINT_WASH")
	case grooming.PhaseSoap:
		return uiText("PHASE_HINT_SOAP")
	case grooming.PhaseRinse:
		return uiText("PHASE_HINT_RINSE")
	case grooming.PhaseDry:
		return uiText("PHASE_HINT_DRY")
	case grooming.PhaseBrush:
		return uiText("PHASE_HINT_BRUSH")
	case grooming.PhaseDressup:
		return uiText("PHASE_HINT_DRESSUP")
	}
	return ""
}

// Draw 渲染宠物视图与阶段 HUD
func (s *SpaScene) Draw(screen *ebiten.Image) {
	screen.Fill(spaBackgroundColor)

	s.view.Draw(screen)
	s.view.DrawParticles(screen, s.engine.Particles())

	phase := s.engine.Phase()
	s.drawBanner(screen, phase)
	if phase != grooming.PhaseResult {
		s.drawProgressBar(screen)
	}

	switch phase {
	case grooming.PhaseBrush:
		s.drawBrushHUD(screen)
	case grooming.PhaseDressup:
		s.drawRack(screen)
	case grooming.PhaseResult:
		s.drawResult(screen)
	}

	s.drawBackButton(screen)
	s.drawHint(screen, phase)
}

// drawBanner 顶部阶段横幅，阶段切换后短暂高亮下沿
func (s *SpaScene) drawBanner(screen *ebiten.Image, phase grooming.Phase) {
	vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.HUDBannerHeight, panelColor, false)
	vector.StrokeLine(screen, 0, config.HUDBannerHeight, config.GameWindowWidth, config.HUDBannerHeight, 2, panelBorderColor, false)

	flash := 1 - utils.EaseOutQuad(math.Min(s.bannerClock/0.6, 1))
	if flash > 0 {
		vector.DrawFilledRect(screen, 0, config.HUDBannerHeight-6, config.GameWindowWidth, 4, fadeColor(accentColor, flash), false)
	}

	title := fmt.Sprintf("%s  -  %s", strings.ToUpper(s.pet.Name), phaseTitle(phase))
	drawTextCentered(screen, title, config.GameWindowWidth/2, 24)
}

// drawProgressBar 会话总进度条
func (s *SpaScene) drawProgressBar(screen *ebiten.Image) {
	x := float32((config.GameWindowWidth - config.HUDProgressBarWidth) / 2)
	y := float32(config.HUDProgressBarY)
	vector.DrawFilledRect(screen, x, y, config.HUDProgressBarWidth, config.HUDProgressBarHeight, fadeColor(inkColor, 0.35), true)
	filled := float32(s.shownProgress) * config.HUDProgressBarWidth
	if filled > 0 {
		vector.DrawFilledRect(screen, x, y, filled, config.HUDProgressBarHeight, accentColor, true)
	}
	vector.StrokeRect(screen, x, y, config.HUDProgressBarWidth, config.HUDProgressBarHeight, 1, panelBorderColor, true)
}

// drawBrushHUD 梳毛方向箭头与计数
//
// 箭头指示当前要求的拖拽方向，随时钟呼吸闪烁提醒换向。
func (s *SpaScene) drawBrushHUD(screen *ebiten.Image) {
	state, ok := s.engine.BrushState()
	if !ok {
		return
	}

	cx := float32(config.GameWindowWidth / 2)
	y := float32(150)
	pulse := 0.6 + 0.4*math.Sin(s.clock*5)
	clr := fadeColor(accentColor, pulse)

	dir := float32(1)
	if !state.RequireRight {
		dir = -1
	}
	half := float32(44)
	tip := cx + dir*half
	vector.StrokeLine(screen, cx-dir*half, y, tip, y, 5, clr, true)
	vector.StrokeLine(screen, tip, y, tip-dir*14, y-10, 5, clr, true)
	vector.StrokeLine(screen, tip, y, tip-dir*14, y+10, 5, clr, true)

	text := uiTextf("HUD_BRUSH_COUNT", state.Count, state.Target)
	if state.Streak > 1 {
		text = text + "  " + uiTextf("HUD_BRUSH_STREAK", state.Streak)
	}
	drawTextCentered(screen, text, config.GameWindowWidth/2, int(y)+22)
}

// drawRack 装扮阶段的底部饰品架与完成按钮
//
// 进入装扮阶段后饰品架从屏幕下沿滑入。命中判定用停靠位置的矩形，
// 滑入只持续零点几秒，不值得跟着动。
func (s *SpaScene) drawRack(screen *ebiten.Image) {
	slide := utils.EaseOutCubic(math.Min(s.bannerClock/0.35, 1))
	offset := int(utils.Lerp(config.HUDRackHeight, 0, slide))

	top := float32(config.GameWindowHeight - config.HUDRackHeight + offset)
	vector.DrawFilledRect(screen, 0, top, config.GameWindowWidth, config.HUDRackHeight, panelColor, false)
	vector.StrokeLine(screen, 0, top, config.GameWindowWidth, top, 2, panelBorderColor, false)

	ids := s.engine.UnlockedCosmetics()
	for i, id := range ids {
		r := rackSlotRect(i, len(ids))
		r.y += offset
		s.drawRackSlot(screen, r, id)
	}

	done := doneButtonRect()
	done.y += offset
	done.fill(screen, accentColor, panelBorderColor)
	drawTextCentered(screen, uiText("HUD_DONE"), done.x+done.w/2, done.y+9)
}

// drawRackSlot 单个饰品格：主色圆加名字，已穿戴的格子描粗边
func (s *SpaScene) drawRackSlot(screen *ebiten.Image, r rect, cosmeticID string) {
	item, ok := s.catalog.ByID(cosmeticID)
	if !ok {
		return
	}

	r.fill(screen, menuBackgroundColor, panelBorderColor)
	if s.engine.IsEquipped(cosmeticID) {
		vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 3, accentColor, true)
	}

	clr := config.HexColorOr(item.Color, accentColor)
	vector.DrawFilledCircle(screen, float32(r.x+r.w/2), float32(r.y+r.h/2-8), 20, clr, true)
	drawTextCentered(screen, strings.ToUpper(item.Name), r.x+r.w/2, r.y+r.h-20)
}

// drawResult 结算面板：星星逐颗弹出、各阶段评价与奖励提示
func (s *SpaScene) drawResult(screen *ebiten.Image) {
	if !s.outcomeReceived {
		return
	}
	dim := utils.EaseInOutCubic(math.Min(s.starClock/0.4, 1))
	vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight, fadeColor(dimOverlayColor, dim), false)

	const panelW, panelH = 480, 330
	px := (config.GameWindowWidth - panelW) / 2
	py := (config.GameWindowHeight - panelH) / 2
	panel := rect{x: px, y: py, w: panelW, h: panelH}
	panel.fill(screen, panelColor, panelBorderColor)

	drawTextCentered(screen, resultTitle(s.outcome.Stars), px+panelW/2, py+20)
	s.drawResultStars(screen, px+panelW/2, py+70)

	session := s.engine.Session()
	rowY := py + 116
	for _, result := range session.Results {
		line := fmt.Sprintf("%-6s %s", strings.ToUpper(result.Phase.String()), scoreLabel(result.Score))
		drawTextLeft(screen, line, px+150, rowY)
		rowY += 20
	}
	drawTextLeft(screen, fmt.Sprintf("%-6s %d/15", uiText("RESULT_TOTAL"), session.Cumulative), px+150, rowY+6)

	if s.rewardID != "" {
		if item, ok := s.catalog.ByID(s.rewardID); ok {
			drawTextCentered(screen, uiTextf("RESULT_REWARD", strings.ToUpper(item.Name)), px+panelW/2, py+panelH-48)
		}
	}
	if int(s.clock*2)%2 == 0 {
		drawTextCentered(screen, uiText("RESULT_CONTINUE"), px+panelW/2, py+panelH-24)
	}
}

// drawResultStars 按 starClock 逐颗弹出星星
func (s *SpaScene) drawResultStars(screen *ebiten.Image, centerX, centerY int) {
	const gap = 64
	startX := float32(centerX - gap)
	for i := 0; i < 3; i++ {
		t := (s.starClock - float64(i)*0.35) / 0.3
		if t <= 0 {
			continue
		}
		scale := utils.EaseOutExpo(math.Min(t, 1))
		clr := starEmptyColor
		if i < s.outcome.Stars {
			clr = starGoldColor
		}
		vector.DrawFilledCircle(screen, startX+float32(i)*gap, float32(centerY), float32(20*scale), clr, true)
	}
}

// resultTitle 按星级选择结算标题
func resultTitle(stars int) string {
	switch {
	case stars >= 3:
		return uiText("RESULT_TITLE_THREE_STARS")
	case stars == 2:
		return uiText("RESULT_TITLE_TWO_STARS")
	default:
		return uiText("RESULT_TITLE_ONE_STAR")
	}
}

// scoreLabel 单阶段得分的文字评价
func scoreLabel(score int) string {
	switch {
	case score >= 3:
		return uiText("SCORE_GREAT")
	case score == 2:
		return uiText("SCORE_GOOD")
	case score == 1:
		return uiText("SCORE_FAIR")
	default:
		return uiText("SCORE_MISSED")
	}
}

// drawBackButton 左上角返回按钮
func (s *SpaScene) drawBackButton(screen *ebiten.Image) {
	r := backButtonRect()
	r.fill(screen, panelColor, panelBorderColor)
	drawTextCentered(screen, "X", r.x+r.w/2, r.y+11)
}

// drawHint 底部操作提示（设置里可关）
func (s *SpaScene) drawHint(screen *ebiten.Image, phase grooming.Phase) {
	if !game.GetGameState().GetSettingsManager().GetSettings().ShowHints {
		return
	}
	hint := phaseHint(phase)
	if hint == "" {
		return
	}
	y := config.GameWindowHeight - 28
	if phase == grooming.PhaseDressup {
		// 装扮阶段底部被饰品架占用，提示挪到架子上方
		y = config.GameWindowHeight - config.HUDRackHeight - 24
	}
	drawTextCentered(screen, hint, config.GameWindowWidth/2, y)
}
