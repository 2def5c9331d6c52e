// Package main provides a windowed preview tool for the pet spa's
// rendering and audio stack: the procedural pet model, camera motion,
// particle bursts and all synthesized sound effects can be exercised
// interactively without playing through a grooming session.
//
// Usage:
//
//	go run ./cmd/spa_preview [flags]
//
// Flags:
//
//	--pet <id>       Start with specific pet (default "cat")
//	--verbose        Enable verbose logging (default off)
//
// Controls:
//
//	Arrow Keys        - Orbit camera (hold)
//	PgUp/PgDn, Wheel  - Zoom camera
//	Tab               - Switch to next pet
//	P                 - Cycle phase overlay tint
//	E                 - Cycle expression (neutral/happy/unhappy/bounce)
//	[ / ]             - Previous/next particle class
//	Click             - Spawn particle burst at pointer hit
//	Space             - Spawn particle burst above the pet
//	R                 - Clear all active particles
//	1-8               - Play sound effect (click/splash/bubble/dryer/brush/miss/equip/advance)
//	Z/X/C             - Play star chime for 1/2/3 stars
//	V                 - Equip next cosmetic
//	B                 - Remove all cosmetics
//	M                 - Toggle sound on/off
//	- / =             - Volume down/up
//	Q/Escape          - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/petspa/internal/geom"
	"github.com/gonewx/petspa/pkg/config"
	"github.com/gonewx/petspa/pkg/game"
	"github.com/gonewx/petspa/pkg/grooming"
	"github.com/gonewx/petspa/pkg/petview"
)

var (
	petFlag     = flag.String("pet", "cat", "Start with specific pet ID")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// 相机手感参数（只影响预览工具）
const (
	orbitSpeed = 1.6 // 弧度/秒
	zoomSpeed  = 4.0 // 世界单位/秒
	wheelZoom  = 0.4 // 每格滚轮的距离增量
)

// previewSound 数字键位到音效的映射项
type previewSound struct {
	id    string
	label string
}

var previewSounds = []previewSound{
	{game.SoundClick, "click"},
	{game.SoundSplash, "splash"},
	{game.SoundBubble, "bubble"},
	{game.SoundDryer, "dryer"},
	{game.SoundBrush, "brush"},
	{game.SoundMiss, "miss"},
	{game.SoundEquip, "equip"},
	{game.SoundAdvance, "advance"},
}

var previewExpressions = []string{
	grooming.ExpressionNeutral,
	grooming.ExpressionHappy,
	grooming.ExpressionUnhappy,
	grooming.ExpressionBounce,
}

var previewClasses = []string{
	config.ParticleClassSplash,
	config.ParticleClassBubble,
	config.ParticleClassDroplet,
	config.ParticleClassSteam,
	config.ParticleClassSpark,
	config.ParticleClassConfetti,
}

var previewPhases = []grooming.Phase{
	grooming.PhaseWash,
	grooming.PhaseSoap,
	grooming.PhaseRinse,
	grooming.PhaseDry,
	grooming.PhaseBrush,
	grooming.PhaseDressup,
	grooming.PhaseResult,
}

// PreviewGame implements ebiten.Game for the spa preview tool
type PreviewGame struct {
	pets    []*config.PetConfig
	catalog *config.CosmeticCatalog

	view     *petview.View
	animator *petview.Animator
	pool     *grooming.Pool

	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager

	petIndex        int
	phaseIndex      int
	expressionIndex int
	classIndex      int
	cosmeticIndex   int

	statusMessage string
}

// NewPreviewGame creates a preview game instance with all configs loaded
func NewPreviewGame() (*PreviewGame, error) {
	pets, err := config.LoadAllPetConfigs("data/pets")
	if err != nil {
		return nil, fmt.Errorf("failed to load pet configs: %w", err)
	}
	catalog, err := config.LoadCosmeticCatalog("data/cosmetics.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to load cosmetic catalog: %w", err)
	}
	particles, err := config.LoadParticleTable("data/particles.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to load particle table: %w", err)
	}

	audioContext := audio.NewContext(48000)
	settingsManager := game.NewSettingsManager(nil)
	audioManager := game.NewAudioManager(audioContext, settingsManager)

	g := &PreviewGame{
		pets:            pets,
		catalog:         catalog,
		animator:        petview.NewAnimator(),
		pool:            grooming.NewPool(particles, nil),
		settingsManager: settingsManager,
		audioManager:    audioManager,
	}

	// 应用 --pet 起始宠物
	for i, p := range pets {
		if p.ID == *petFlag {
			g.petIndex = i
			break
		}
	}
	if err := g.loadCurrentPet(); err != nil {
		return nil, err
	}

	log.Printf("Preview initialized: %d pets, %d cosmetics", len(pets), len(catalog.All()))
	return g, nil
}

// loadCurrentPet rebuilds the model view for the selected pet
func (g *PreviewGame) loadCurrentPet() error {
	if g.view != nil {
		g.view.Teardown()
	}

	pet := g.pets[g.petIndex]
	view := petview.New(pet, g.catalog, g.animator, config.GameWindowWidth, config.GameWindowHeight)
	zones, err := view.LoadModel(grooming.PetDescriptor{ID: pet.ID, Name: pet.Name})
	if err != nil {
		return fmt.Errorf("failed to load pet model %s: %w", pet.ID, err)
	}

	// 让区域覆盖层以满不透明度可见，便于核对着色
	view.SetPhaseOverlay(previewPhases[g.phaseIndex])
	for _, zone := range zones {
		view.SetZoneFade(zone, 1)
	}

	g.view = view
	g.statusMessage = fmt.Sprintf("Loaded pet: %s (%d zones)", pet.ID, len(zones))
	log.Printf("Loaded pet %s with %d zones", pet.ID, len(zones))
	return nil
}

// Update handles input and advances animation clocks
func (g *PreviewGame) Update() error {
	dt := 1.0 / 60.0

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return fmt.Errorf("quit requested")
	}

	g.updateCamera(dt)
	g.updateModelControls()
	g.updateParticleControls()
	g.updateAudioControls()

	g.pool.Update(dt)
	g.animator.Advance(dt)
	g.view.Update(dt)
	return nil
}

// updateCamera applies held-key orbit and zoom
func (g *PreviewGame) updateCamera(dt float64) {
	camera := g.view.Camera()

	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		camera.Orbit(-orbitSpeed*dt, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		camera.Orbit(orbitSpeed*dt, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		camera.Orbit(0, -orbitSpeed*dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		camera.Orbit(0, orbitSpeed*dt)
	}

	if ebiten.IsKeyPressed(ebiten.KeyPageUp) {
		camera.Zoom(-zoomSpeed * dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyPageDown) {
		camera.Zoom(zoomSpeed * dt)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		camera.Zoom(-wy * wheelZoom)
	}
}

// updateModelControls handles pet/phase/expression/cosmetic switching
func (g *PreviewGame) updateModelControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.petIndex = (g.petIndex + 1) % len(g.pets)
		if err := g.loadCurrentPet(); err != nil {
			log.Printf("Failed to switch pet: %v", err)
			g.statusMessage = fmt.Sprintf("Error: %v", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.phaseIndex = (g.phaseIndex + 1) % len(previewPhases)
		g.view.SetPhaseOverlay(previewPhases[g.phaseIndex])
		g.statusMessage = fmt.Sprintf("Phase overlay: %s", previewPhases[g.phaseIndex])
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.expressionIndex = (g.expressionIndex + 1) % len(previewExpressions)
		g.animator.SetExpression(previewExpressions[g.expressionIndex])
		g.statusMessage = fmt.Sprintf("Expression: %s", previewExpressions[g.expressionIndex])
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		all := g.catalog.All()
		if len(all) > 0 {
			item := all[g.cosmeticIndex%len(all)]
			g.cosmeticIndex++
			g.view.AttachCosmetic(item.Slot, item.ID)
			g.audioManager.Play(game.SoundEquip)
			g.statusMessage = fmt.Sprintf("Equipped: %s (%s)", item.Name, item.Slot)
			log.Printf("Equipped cosmetic %s into slot %s", item.ID, item.Slot)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		for _, item := range g.catalog.All() {
			g.view.DetachCosmetic(item.Slot)
		}
		g.statusMessage = "Cosmetics cleared"
	}
}

// updateParticleControls handles burst spawning and class selection
func (g *PreviewGame) updateParticleControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.classIndex = (g.classIndex - 1 + len(previewClasses)) % len(previewClasses)
		g.statusMessage = fmt.Sprintf("Particle class: %s", previewClasses[g.classIndex])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.classIndex = (g.classIndex + 1) % len(previewClasses)
		g.statusMessage = fmt.Sprintf("Particle class: %s", previewClasses[g.classIndex])
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.pool.SpawnBurst(geom.Vec3{Y: 1.6}, previewClasses[g.classIndex], 12)
		g.statusMessage = fmt.Sprintf("Burst: %s above pet", previewClasses[g.classIndex])
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if hit, ok := g.view.ResolvePointer(float64(x), float64(y)); ok {
			g.pool.SpawnBurst(hit.Point, previewClasses[g.classIndex], 12)
			g.statusMessage = fmt.Sprintf("Burst: %s at zone %s", previewClasses[g.classIndex], hit.Zone)
			log.Printf("Spawned %s burst at zone %s", previewClasses[g.classIndex], hit.Zone)
		} else {
			g.statusMessage = "Pointer missed the pet"
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.pool.Clear()
		g.statusMessage = "Cleared all particles"
	}
}

// updateAudioControls handles effect keys, chimes and volume
func (g *PreviewGame) updateAudioControls() {
	for i, snd := range previewSounds {
		key := ebiten.Key(int(ebiten.Key1) + i)
		if inpututil.IsKeyJustPressed(key) {
			if g.audioManager.Play(snd.id) {
				g.statusMessage = fmt.Sprintf("Sound: %s", snd.label)
			} else {
				g.statusMessage = fmt.Sprintf("Sound: %s (muted)", snd.label)
			}
		}
	}

	chimeKeys := []ebiten.Key{ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC}
	for i, key := range chimeKeys {
		if inpututil.IsKeyJustPressed(key) {
			stars := i + 1
			if g.audioManager.PlayStarChime(stars) {
				g.statusMessage = fmt.Sprintf("Star chime: %d stars", stars)
			} else {
				g.statusMessage = fmt.Sprintf("Star chime: %d stars (muted)", stars)
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		enabled := !g.settingsManager.GetSettings().SoundEnabled
		g.settingsManager.SetSoundEnabled(enabled)
		g.statusMessage = fmt.Sprintf("Sound enabled: %v", enabled)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.audioManager.SetSoundVolume(g.audioManager.GetSoundVolume() - 0.1)
		g.statusMessage = fmt.Sprintf("Volume: %.1f", g.audioManager.GetSoundVolume())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.audioManager.SetSoundVolume(g.audioManager.GetSoundVolume() + 0.1)
		g.statusMessage = fmt.Sprintf("Volume: %.1f", g.audioManager.GetSoundVolume())
	}
}

// Draw renders the model, particles and the info overlay
func (g *PreviewGame) Draw(screen *ebiten.Image) {
	g.view.Draw(screen)
	g.view.DrawParticles(screen, g.pool)
	g.drawUI(screen)
}

// drawUI draws the overlay with state info and controls
func (g *PreviewGame) drawUI(screen *ebiten.Image) {
	pet := g.pets[g.petIndex]
	camera := g.view.Camera()

	title := fmt.Sprintf("Pet Spa Preview - %s (%d/%d)", pet.ID, g.petIndex+1, len(g.pets))
	ebitenutil.DebugPrintAt(screen, title, 10, 10)

	cameraInfo := fmt.Sprintf("Camera: yaw=%.2f pitch=%.2f dist=%.1f", camera.Yaw, camera.Pitch, camera.Distance)
	ebitenutil.DebugPrintAt(screen, cameraInfo, 10, 30)

	stateInfo := fmt.Sprintf("Overlay: %s  Expression: %s", previewPhases[g.phaseIndex], g.animator.Expression())
	ebitenutil.DebugPrintAt(screen, stateInfo, 10, 50)

	particleInfo := fmt.Sprintf("Particles: class=%s active=%d", previewClasses[g.classIndex], g.pool.ActiveCount())
	ebitenutil.DebugPrintAt(screen, particleInfo, 10, 70)

	audioInfo := fmt.Sprintf("Audio: volume=%.1f enabled=%v", g.audioManager.GetSoundVolume(), g.settingsManager.GetSettings().SoundEnabled)
	ebitenutil.DebugPrintAt(screen, audioInfo, 10, 90)

	if g.statusMessage != "" {
		ebitenutil.DebugPrintAt(screen, g.statusMessage, 10, 110)
	}

	controls := []string{
		"Camera:  Arrows = Orbit  PgUp/PgDn/Wheel = Zoom",
		"Model:   Tab = Next Pet  P = Phase Overlay  E = Expression  V = Equip  B = Bare",
		"FX:      Click/Space = Burst  [/] = Class  R = Clear",
		"Audio:   1-8 = Effects  Z/X/C = Star Chimes  M = Mute  -/= = Volume  Q = Quit",
	}
	y := config.GameWindowHeight - len(controls)*20 - 10
	for i, line := range controls {
		ebitenutil.DebugPrintAt(screen, line, 10, y+i*20)
	}
}

// Layout returns the game's logical screen size
func (g *PreviewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

func main() {
	flag.Parse()

	log.Println("=== Pet Spa Preview ===")
	log.Printf("Start pet: %q", *petFlag)

	previewGame, err := NewPreviewGame()
	if err != nil {
		log.Fatal("Failed to initialize preview:", err)
	}

	// 默认静音运行：抑制模型与音频子系统的调试日志；如需详细调试，传入 --verbose
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Pet Spa Preview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(previewGame); err != nil {
		if err.Error() != "quit requested" {
			log.Fatal(err)
		}
	}

	log.Println("Preview closed")
	os.Exit(0)
}
