// verify_session 以脚本驱动完整护理会话，验证阶段推进与评分链路。
//
// 工具不开窗口：用真实的宠物视图做指针解析，把合成的指针事件喂给
// 引擎，跑完四个剧本（三星、两星、一星、取消）后核对结果。任一
// 断言失败以退出码 1 结束，适合接入 CI。
//
// 用法：
//
//	go run ./cmd/verify_session            # 跑全部剧本
//	go run ./cmd/verify_session -scenario three-star
//	go run ./cmd/verify_session -verbose   # 透出引擎日志
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/gonewx/petspa/internal/geom"
	"github.com/gonewx/petspa/pkg/config"
	"github.com/gonewx/petspa/pkg/grooming"
	"github.com/gonewx/petspa/pkg/petview"
)

var (
	scenarioFilter = flag.String("scenario", "", "只运行指定剧本（three-star/two-star/one-star/cancel）")
	petID          = flag.String("pet", "cat", "用于验证的宠物 ID")
	verbose        = flag.Bool("verbose", false, "透出引擎与视图日志")
)

const dt = 1.0 / 60.0

// driver 把脚本动作翻译成引擎输入的无头驱动器
type driver struct {
	engine *grooming.Engine
	view   *petview.View
	pet    *config.PetConfig

	outcomes  []grooming.Outcome
	simulated float64 // 累计模拟时长（秒）
}

// newDriver 装配一套全新的引擎与视图并开始会话
func newDriver(pet *config.PetConfig, catalog *config.CosmeticCatalog, tuning *config.SpaConfig, particles *config.ParticleTable) (*driver, error) {
	d := &driver{pet: pet}

	animator := petview.NewAnimator()
	view := petview.New(pet, catalog, animator, config.GameWindowWidth, config.GameWindowHeight)

	engine, err := grooming.NewEngine(grooming.EngineOptions{
		View:      view,
		Animator:  animator,
		Tuning:    tuning,
		Particles: particles,
		Catalog:   catalog,
		Rand:      rand.New(rand.NewSource(1)),
		OnOutcome: func(o grooming.Outcome) { d.outcomes = append(d.outcomes, o) },
	})
	if err != nil {
		return nil, err
	}

	err = engine.Start(grooming.PetDescriptor{
		ID:   pet.ID,
		Name: pet.Name,
		Cosmetics: grooming.CosmeticState{
			Unlocked: catalog.StarterIDs(),
		},
	})
	if err != nil {
		return nil, err
	}

	d.engine = engine
	d.view = view
	return d, nil
}

// tick 推进 n 个模拟帧
func (d *driver) tick(n int) {
	for i := 0; i < n; i++ {
		d.engine.Update(dt)
		d.simulated += dt
	}
}

// idle 干等指定的模拟秒数（拖低计时评分用）
func (d *driver) idle(seconds float64) {
	d.tick(int(seconds / dt))
}

// aimAt 返回能命中指定区域的屏幕坐标
//
// 先试区域中心的投影点；中心被更近的区域挡住时，在周围螺旋采样
// 找露出的部分。
func (d *driver) aimAt(zone string) (float64, float64, bool) {
	var center geom.Vec3
	found := false
	for _, z := range d.pet.Zones {
		if z.Name == zone {
			center = geom.Vec3{X: z.X, Y: z.Y, Z: z.Z}
			found = true
			break
		}
	}
	if !found {
		return 0, 0, false
	}

	sx, sy, _, ok := d.view.Camera().Project(center)
	if !ok {
		return 0, 0, false
	}
	if hit, ok := d.view.ResolvePointer(sx, sy); ok && hit.Zone == zone {
		return sx, sy, true
	}
	for r := 12.0; r <= 160; r += 12 {
		for a := 0.0; a < 2*math.Pi; a += math.Pi / 8 {
			x := sx + r*math.Cos(a)
			y := sy + r*math.Sin(a)
			if hit, ok := d.view.ResolvePointer(x, y); ok && hit.Zone == zone {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// scrubAt 在指定屏幕点按住擦洗 ticks 帧
func (d *driver) scrubAt(x, y float64, ticks int) {
	d.engine.HandlePointer(grooming.PointerEvent{Type: grooming.PointerDown, X: x, Y: y})
	for i := 0; i < ticks; i++ {
		d.engine.HandlePointer(grooming.PointerEvent{Type: grooming.PointerDrag, X: x, Y: y})
		d.tick(1)
	}
	d.engine.HandlePointer(grooming.PointerEvent{Type: grooming.PointerUp, X: x, Y: y})
}

// runScrubPhase 完成当前擦洗类阶段
//
// evenly 为 true 时在各区域间细粒度轮转（均匀度高），否则一次
// 磨完一个区域再换下一个（均匀度差）。idleBefore 是动手前的干等
// 秒数，用来把计时评分拖进指定档位。
func (d *driver) runScrubPhase(evenly bool, idleBefore float64) error {
	phase := d.engine.Phase()
	d.idle(idleBefore)

	aims := make(map[string][2]float64)
	for _, zone := range d.pet.ZoneNames() {
		x, y, ok := d.aimAt(zone)
		if !ok {
			return fmt.Errorf("阶段 %s：找不到区域 %s 的可命中点", phase, zone)
		}
		aims[zone] = [2]float64{x, y}
	}

	ticksPerVisit := 2
	if !evenly {
		// 1.0/0.025 = 40 帧磨满一个区域，多给余量
		ticksPerVisit = 48
	}

	deadline := d.simulated + 120
	zones := d.pet.ZoneNames()
	for i := 0; d.engine.Phase() == phase; i++ {
		if d.simulated > deadline {
			return fmt.Errorf("阶段 %s 超时未完成（模拟 %.0fs）", phase, d.simulated)
		}
		aim := aims[zones[i%len(zones)]]
		d.scrubAt(aim[0], aim[1], ticksPerVisit)
	}
	return nil
}

// brushStroke 横向拖一笔；right 为拖拽方向
func (d *driver) brushStroke(right bool) {
	y := float64(config.GameWindowHeight / 2)
	x0 := float64(config.GameWindowWidth/2 - 60)
	x1 := float64(config.GameWindowWidth/2 + 60)
	if !right {
		x0, x1 = x1, x0
	}

	d.engine.HandlePointer(grooming.PointerEvent{Type: grooming.PointerDown, X: x0, Y: y})
	for i := 1; i <= 4; i++ {
		x := x0 + (x1-x0)*float64(i)/4
		d.engine.HandlePointer(grooming.PointerEvent{Type: grooming.PointerDrag, X: x, Y: y})
		d.tick(1)
	}
	d.engine.HandlePointer(grooming.PointerEvent{Type: grooming.PointerUp, X: x1, Y: y})
	d.tick(1)
}

// runBrushPhase 完成梳毛阶段
//
// followArrow 为 true 时始终顺着要求方向梳（最佳连击拉满），为
// false 时正确与错误交替（连击始终被清零，但计数照常走完）。
func (d *driver) runBrushPhase(followArrow bool) error {
	deadline := d.simulated + 120
	spoil := false
	for d.engine.Phase() == grooming.PhaseBrush {
		if d.simulated > deadline {
			return fmt.Errorf("梳毛阶段超时未完成")
		}
		state, ok := d.engine.BrushState()
		if !ok {
			break
		}
		right := state.RequireRight
		if !followArrow && spoil {
			right = !right
		}
		spoil = !spoil
		d.brushStroke(right)
	}
	return nil
}

// runBrushPhaseCapped 以固定节奏梳毛：每连击满 limit 次故意梳错一笔
func (d *driver) runBrushPhaseCapped(limit int) error {
	deadline := d.simulated + 120
	for d.engine.Phase() == grooming.PhaseBrush {
		if d.simulated > deadline {
			return fmt.Errorf("梳毛阶段超时未完成")
		}
		state, ok := d.engine.BrushState()
		if !ok {
			break
		}
		if state.Streak >= limit {
			d.brushStroke(!state.RequireRight)
			continue
		}
		d.brushStroke(state.RequireRight)
	}
	return nil
}

// runDressup 穿上指定饰品并完成装扮
func (d *driver) runDressup(equipID string) {
	if equipID != "" {
		d.engine.ToggleCosmetic(equipID)
	}
	d.engine.FinishDressup()
	d.tick(1)
}

// scenario 一个脚本剧本
type scenario struct {
	name string
	run  func(d *driver) error
	// 期望的五个阶段得分（按 wash/soap/rinse/dry/brush 顺序）与星级
	wantScores []int
	wantStars  int
	// 期望结算时穿着的饰品（槽位 → ID），nil 表示不检查
	wantEquipped map[string]string
}

func scenarios(catalog *config.CosmeticCatalog) []scenario {
	starters := catalog.StarterIDs()
	firstStarter := ""
	firstSlot := ""
	if len(starters) > 0 {
		firstStarter = starters[0]
		if slot, ok := catalog.SlotOf(firstStarter); ok {
			firstSlot = slot
		}
	}

	return []scenario{
		{
			name: "three-star",
			run: func(d *driver) error {
				for i := 0; i < 4; i++ {
					if err := d.runScrubPhase(true, 0); err != nil {
						return err
					}
				}
				if err := d.runBrushPhase(true); err != nil {
					return err
				}
				d.runDressup(firstStarter)
				return nil
			},
			wantScores:   []int{3, 3, 3, 3, 3},
			wantStars:    3,
			wantEquipped: map[string]string{firstSlot: firstStarter},
		},
		{
			name: "two-star",
			run: func(d *driver) error {
				// 冲水快（3 分）
				if err := d.runScrubPhase(true, 0); err != nil {
					return err
				}
				// 打泡沫一个区域磨到底再换（峰值不均匀度高，0 分）
				if err := d.runScrubPhase(false, 0); err != nil {
					return err
				}
				// 清洗拖过中速线（1 分）
				if err := d.runScrubPhase(true, 17); err != nil {
					return err
				}
				// 吹干快（3 分）
				if err := d.runScrubPhase(true, 0); err != nil {
					return err
				}
				// 梳毛连击压在 4（2 分）
				if err := d.runBrushPhaseCapped(4); err != nil {
					return err
				}
				d.runDressup("")
				return nil
			},
			wantScores: []int{3, 0, 1, 3, 2},
			wantStars:  2,
		},
		{
			name: "one-star",
			run: func(d *driver) error {
				// 冲水拖到最慢档之外（0 分）
				if err := d.runScrubPhase(true, 29); err != nil {
					return err
				}
				// 打泡沫按区域计分，磨满一个再换一个（0 分）
				if err := d.runScrubPhase(false, 0); err != nil {
					return err
				}
				// 清洗与吹干同样拖过线（各 0 分）
				if err := d.runScrubPhase(true, 29); err != nil {
					return err
				}
				if err := d.runScrubPhase(true, 29); err != nil {
					return err
				}
				// 梳毛正确错误交替，最佳连击 1（0 分）
				if err := d.runBrushPhase(false); err != nil {
					return err
				}
				d.runDressup("")
				return nil
			},
			wantScores: []int{0, 0, 0, 0, 0},
			wantStars:  1, // 完成会话保底一星
		},
	}
}

// runScenario 跑一个剧本并核对全部断言
func runScenario(sc scenario, pet *config.PetConfig, catalog *config.CosmeticCatalog, tuning *config.SpaConfig, particles *config.ParticleTable) error {
	d, err := newDriver(pet, catalog, tuning, particles)
	if err != nil {
		return fmt.Errorf("驱动器装配失败: %w", err)
	}

	if err := sc.run(d); err != nil {
		return err
	}

	if got := d.engine.Phase(); got != grooming.PhaseResult {
		return fmt.Errorf("最终阶段 = %s，期望 result", got)
	}
	if len(d.outcomes) != 1 {
		return fmt.Errorf("结果交付了 %d 次，期望恰好 1 次", len(d.outcomes))
	}

	session := d.engine.Session()
	if len(session.Results) != grooming.ScoredPhaseCount {
		return fmt.Errorf("计分阶段 %d 个，期望 %d 个", len(session.Results), grooming.ScoredPhaseCount)
	}
	wantCumulative := 0
	for i, result := range session.Results {
		want := sc.wantScores[i]
		wantCumulative += want
		fmt.Printf("  %-6s 得分=%d 期望=%d\n", result.Phase, result.Score, want)
		if result.Score != want {
			return fmt.Errorf("阶段 %s 得分 = %d，期望 %d", result.Phase, result.Score, want)
		}
	}
	if session.Cumulative != wantCumulative {
		return fmt.Errorf("累计分 = %d，期望 %d", session.Cumulative, wantCumulative)
	}

	outcome := d.outcomes[0]
	if outcome.Stars != sc.wantStars {
		return fmt.Errorf("星级 = %d，期望 %d", outcome.Stars, sc.wantStars)
	}
	for slot, id := range sc.wantEquipped {
		if got := outcome.Equipped[slot]; got != id {
			return fmt.Errorf("槽位 %s = %q，期望 %q", slot, got, id)
		}
	}

	// 结算后取消仅做清理，不得重复交付
	d.engine.Cancel()
	if len(d.outcomes) != 1 {
		return fmt.Errorf("取消后重复交付结果（%d 次）", len(d.outcomes))
	}

	fmt.Printf("  星级=%d 累计分=%d 模拟用时=%.1fs\n", outcome.Stars, session.Cumulative, d.simulated)
	return nil
}

// runCancelScenario 验证中途取消的空结果路径
func runCancelScenario(pet *config.PetConfig, catalog *config.CosmeticCatalog, tuning *config.SpaConfig, particles *config.ParticleTable) error {
	d, err := newDriver(pet, catalog, tuning, particles)
	if err != nil {
		return fmt.Errorf("驱动器装配失败: %w", err)
	}

	// 洗到一半
	d.tick(30)
	if err := d.runScrubPhase(true, 0); err != nil {
		return err
	}
	d.engine.Cancel()

	if !d.engine.Cancelled() {
		return fmt.Errorf("Cancel 后 Cancelled() = false")
	}
	if len(d.outcomes) != 1 {
		return fmt.Errorf("取消交付了 %d 次，期望恰好 1 次", len(d.outcomes))
	}
	if !d.outcomes[0].Empty() {
		return fmt.Errorf("取消应交付空结果，得到星级 %d", d.outcomes[0].Stars)
	}

	// 取消之后的输入与推进必须全部失效
	d.engine.Update(dt)
	if err := d.engine.Start(grooming.PetDescriptor{ID: pet.ID}); err == nil {
		return fmt.Errorf("取消后的 Start 应当报错")
	}
	if len(d.outcomes) != 1 {
		return fmt.Errorf("取消后仍有结果交付")
	}

	fmt.Printf("  空结果交付一次，后续操作全部失效\n")
	return nil
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fmt.Println("=== 护理会话脚本验证 ===")

	tuning, err := config.LoadSpaConfig("data/config/spa.yaml")
	if err != nil {
		fmt.Printf("加载护理调参失败: %v\n", err)
		os.Exit(1)
	}
	pets, err := config.LoadAllPetConfigs("data/pets")
	if err != nil {
		fmt.Printf("加载宠物配置失败: %v\n", err)
		os.Exit(1)
	}
	catalog, err := config.LoadCosmeticCatalog("data/cosmetics.yaml")
	if err != nil {
		fmt.Printf("加载饰品目录失败: %v\n", err)
		os.Exit(1)
	}
	particles, err := config.LoadParticleTable("data/particles.yaml")
	if err != nil {
		fmt.Printf("加载粒子配置失败: %v\n", err)
		os.Exit(1)
	}

	var pet *config.PetConfig
	for _, p := range pets {
		if p.ID == *petID {
			pet = p
			break
		}
	}
	if pet == nil {
		fmt.Printf("未知宠物: %s\n", *petID)
		os.Exit(1)
	}
	fmt.Printf("宠物: %s（区域 %d 个）\n", pet.ID, len(pet.Zones))

	failed := false
	for _, sc := range scenarios(catalog) {
		if *scenarioFilter != "" && sc.name != *scenarioFilter {
			continue
		}
		fmt.Printf("\n--- 剧本: %s ---\n", sc.name)
		if err := runScenario(sc, pet, catalog, tuning, particles); err != nil {
			fmt.Printf("❌ %v\n", err)
			failed = true
			continue
		}
		fmt.Println("✅ 剧本通过")
	}

	if *scenarioFilter == "" || *scenarioFilter == "cancel" {
		fmt.Printf("\n--- 剧本: cancel ---\n")
		if err := runCancelScenario(pet, catalog, tuning, particles); err != nil {
			fmt.Printf("❌ %v\n", err)
			failed = true
		} else {
			fmt.Println("✅ 剧本通过")
		}
	}

	if failed {
		fmt.Println("\n=== 存在失败的剧本 ===")
		os.Exit(1)
	}
	fmt.Println("\n=== 全部剧本通过 ===")
}
