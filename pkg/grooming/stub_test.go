package grooming

import (
	"fmt"
	"math/rand"

	"github.com/gonewx/petspa/internal/geom"
	"github.com/gonewx/petspa/pkg/config"
)

// stubView 测试用模型视图：记录全部视觉调用，指针解析可按坐标注入
type stubView struct {
	zones   []string
	loadErr error

	overlayPhase Phase
	fades        map[string]float64
	attached     map[string]string // slot → id
	calls        []string          // 时序断言用的调用日志
	teardowns    int
}

func newStubView(zones ...string) *stubView {
	return &stubView{
		zones:    zones,
		fades:    make(map[string]float64),
		attached: make(map[string]string),
	}
}

func (v *stubView) LoadModel(pet PetDescriptor) ([]string, error) {
	if v.loadErr != nil {
		return nil, v.loadErr
	}
	return v.zones, nil
}

// ResolvePointer 把 x 坐标按百位映射到区域下标：x∈[0,100) 命中第 0 个
// 区域，以此类推；越界未命中。y 原样带入命中点。
func (v *stubView) ResolvePointer(x, y float64) (PointerHit, bool) {
	idx := int(x) / 100
	if x < 0 || idx >= len(v.zones) {
		return PointerHit{}, false
	}
	return PointerHit{Zone: v.zones[idx], Point: geom.Vec3{X: x, Y: y}}, true
}

func (v *stubView) SetPhaseOverlay(phase Phase) {
	v.overlayPhase = phase
	v.calls = append(v.calls, "overlay:"+phase.String())
}

func (v *stubView) SetZoneFade(zone string, alpha float64) {
	v.fades[zone] = alpha
}

func (v *stubView) AttachCosmetic(slot, cosmeticID string) {
	v.attached[slot] = cosmeticID
	v.calls = append(v.calls, fmt.Sprintf("attach:%s:%s", slot, cosmeticID))
}

func (v *stubView) DetachCosmetic(slot string) {
	delete(v.attached, slot)
	v.calls = append(v.calls, "detach:"+slot)
}

func (v *stubView) Teardown() {
	v.teardowns++
}

// stubAnimator 测试用动画协作方：记录表情切换序列与累计推进时长
type stubAnimator struct {
	expressions []string
	advanced    float64
}

func (a *stubAnimator) SetExpression(name string) {
	a.expressions = append(a.expressions, name)
}

func (a *stubAnimator) Advance(dt float64) {
	a.advanced += dt
}

func (a *stubAnimator) last() string {
	if len(a.expressions) == 0 {
		return ""
	}
	return a.expressions[len(a.expressions)-1]
}

// testCatalog 构建测试饰品目录：每个槽位两件，cap_red/bow_pink 为新手解锁
func testCatalog() *config.CosmeticCatalog {
	catalog, err := config.NewCosmeticCatalog([]config.CosmeticConfig{
		{ID: "cap_red", Name: "Red Cap", Slot: config.SlotHat, Color: "#d94f4f", Shape: config.CosmeticShapeCap, Starter: true},
		{ID: "crown_gold", Name: "Gold Crown", Slot: config.SlotHat, Color: "#e8c34a", Shape: config.CosmeticShapeCrown},
		{ID: "bow_pink", Name: "Pink Bow", Slot: config.SlotNeck, Color: "#e87aa4", Shape: config.CosmeticShapeBow, Starter: true},
		{ID: "scarf_green", Name: "Green Scarf", Slot: config.SlotNeck, Color: "#5aa86b", Shape: config.CosmeticShapeScarf},
		{ID: "cape_blue", Name: "Blue Cape", Slot: config.SlotBack, Color: "#4a6fe8", Shape: config.CosmeticShapeCape},
	})
	if err != nil {
		panic(err)
	}
	return catalog
}

// testParticles 构建测试粒子表：覆盖全部内置类别
func testParticles() *config.ParticleTable {
	table, err := config.NewParticleTable([]config.ParticleClassConfig{
		{Name: config.ParticleClassSplash, Color: "#8ecbff", Radius: 0.08, Gravity: -9, Lifetime: 0.9},
		{Name: config.ParticleClassBubble, Color: "#f6f9ff", Radius: 0.11, Gravity: 2.2, Lifetime: 1.6},
		{Name: config.ParticleClassDroplet, Color: "#6fb5f0", Radius: 0.06, Gravity: -11, Lifetime: 0.8},
		{Name: config.ParticleClassSteam, Color: "#f2e9dc", Radius: 0.13, Gravity: 2.8, Lifetime: 1.3},
		{Name: config.ParticleClassSpark, Color: "#ffd98a", Radius: 0.05, Gravity: -1.5, Lifetime: 0.7},
		{Name: config.ParticleClassConfetti, Color: "#f2b04a", Radius: 0.07, Gravity: -3.5, Lifetime: 2.2},
	})
	if err != nil {
		panic(err)
	}
	return table
}

// newTestEngine 装配带桩协作方的引擎（固定随机种子保证确定性）
func newTestEngine(zones ...string) (*Engine, *stubView, *stubAnimator, *[]Outcome) {
	view := newStubView(zones...)
	animator := &stubAnimator{}
	outcomes := &[]Outcome{}

	engine, err := NewEngine(EngineOptions{
		View:      view,
		Animator:  animator,
		Tuning:    config.DefaultSpaConfig(),
		Particles: testParticles(),
		Catalog:   testCatalog(),
		Rand:      rand.New(rand.NewSource(42)),
		OnOutcome: func(o Outcome) { *outcomes = append(*outcomes, o) },
	})
	if err != nil {
		panic(err)
	}
	return engine, view, animator, outcomes
}
