// Package grooming implements the interactive pet grooming session:
// a fixed sequence of care phases (wash, soap, rinse, dry, brush,
// dress-up) driven by pointer input, scored per phase and summarized
// as a 1-3 star outcome.
//
// The engine is single-threaded and cooperative. The host calls
// Update once per render tick and forwards pointer events on the same
// goroutine; exactly one logical actor mutates session state, so no
// locking exists anywhere in this package. Phase logic is an explicit
// state machine polled each tick, with one runner object per phase
// owning all phase-local state, which keeps cancellation a trivial
// transition instead of continuation cleanup.
//
// The engine owns no drawing and no persistence: rendering goes
// through the ModelView collaborator, the final Outcome is handed to
// the caller through a callback.
package grooming

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/petspa/pkg/config"
)

// PointerEventType 指针事件类型
type PointerEventType int

const (
	PointerDown PointerEventType = iota // 按下
	PointerDrag                         // 按住拖动（宿主在按住期间每 tick 发送）
	PointerUp                           // 释放
)

// PointerEvent 交互表面局部坐标系里的指针事件
type PointerEvent struct {
	Type PointerEventType
	X    float64
	Y    float64
}

// PhaseScore 单个阶段的计分结果，产出后不可变
type PhaseScore struct {
	Phase Phase
	Score int // 0~3
}

// Session 一次护理会话的记录
type Session struct {
	PetID      string
	PetName    string
	Results    []PhaseScore      // 按阶段顺序，完成时恰好五条
	Cumulative int               // 五个阶段得分之和 [0,15]
	Stars      int               // 1~3，结算时定级
	Equipped   map[string]string // 结算时冻结的槽位映射
}

// Outcome 交付给等待方的最终结果
//
// 正常完成时 Stars ∈ {1,2,3}；会话被取消时交付空结果（Stars 为 0、
// Equipped 为 nil）。无论哪种路径，结果都恰好交付一次。
type Outcome struct {
	Stars    int
	Equipped map[string]string
}

// Empty 判断是否为取消路径交付的空结果
func (o Outcome) Empty() bool {
	return o.Stars == 0
}

// EngineOptions 引擎装配参数
type EngineOptions struct {
	View      ModelView
	Animator  Animator
	Tuning    *config.SpaConfig
	Particles *config.ParticleTable
	Catalog   *config.CosmeticCatalog

	// Rand 粒子随机源；传 nil 使用全局随机源。测试注入固定种子。
	Rand *rand.Rand

	// OnOutcome 结果交付回调，见 Outcome。可为 nil（无头工具轮询
	// Session 快照时不需要回调）。
	OnOutcome func(Outcome)
}

// Engine 护理会话引擎
//
// 生命周期：NewEngine → Start → 每 tick Update/HandlePointer →
// 结算交付结果 → Cancel（兼作 dispose，释放视图资源）。
type Engine struct {
	view     ModelView
	animator Animator
	tuning   *config.SpaConfig
	catalog  *config.CosmeticCatalog

	pool     *Pool
	zones    *ZoneTracker
	rack     *Rack
	session  *Session
	pet      PetDescriptor
	unlocked map[string]bool

	phase  Phase
	runner phaseRunner

	started   bool
	cancelled bool
	delivered bool
	onOutcome func(Outcome)
}

// NewEngine 装配引擎并检查启动前置条件
//
// 任一协作方缺失都是致命的装配错误（一次性检查，不在会话内恢复）。
func NewEngine(opts EngineOptions) (*Engine, error) {
	if opts.View == nil {
		return nil, fmt.Errorf("grooming: model view is required")
	}
	if opts.Animator == nil {
		return nil, fmt.Errorf("grooming: animator is required")
	}
	if opts.Tuning == nil {
		return nil, fmt.Errorf("grooming: tuning config is required")
	}
	if opts.Particles == nil {
		return nil, fmt.Errorf("grooming: particle table is required")
	}
	if opts.Catalog == nil {
		return nil, fmt.Errorf("grooming: cosmetic catalog is required")
	}

	return &Engine{
		view:      opts.View,
		animator:  opts.Animator,
		tuning:    opts.Tuning,
		catalog:   opts.Catalog,
		pool:      NewPool(opts.Particles, opts.Rand),
		onOutcome: opts.OnOutcome,
	}, nil
}

// Start 开始会话：加载模型、预挂载已有装扮、进入冲水阶段
func (e *Engine) Start(pet PetDescriptor) error {
	if e.started {
		return fmt.Errorf("grooming: session already started")
	}
	if e.cancelled {
		return fmt.Errorf("grooming: session already cancelled")
	}

	zones, err := e.view.LoadModel(pet)
	if err != nil {
		return fmt.Errorf("grooming: failed to load pet model: %w", err)
	}
	if len(zones) == 0 {
		// 没有区域的会话永远无法推进，按启动前置条件不满足处理
		return fmt.Errorf("grooming: pet model reported no grooming zones")
	}

	e.pet = pet
	e.zones = NewZoneTracker(zones)
	e.rack = NewRack(e.catalog, e.view)

	e.unlocked = make(map[string]bool, len(pet.Cosmetics.Unlocked))
	for _, id := range pet.Cosmetics.Unlocked {
		e.unlocked[id] = true
	}

	// 预挂载进场前已穿戴的饰品；槽位以目录为准，未知 ID 静默跳过
	for _, id := range pet.Cosmetics.Equipped {
		e.rack.Equip(id)
	}

	e.session = &Session{
		PetID:   pet.ID,
		PetName: pet.Name,
		Results: make([]PhaseScore, 0, ScoredPhaseCount),
	}

	e.animator.SetExpression(ExpressionNeutral)
	e.started = true
	log.Printf("[Grooming] 会话开始: pet=%s zones=%d", pet.ID, len(zones))
	e.setPhase(PhaseWash)
	return nil
}

// Update 推进一个 tick：粒子积分、表情动画、阶段逻辑
//
// 所有工作量受固定池容量和区域集大小约束，不会阻塞 tick。
func (e *Engine) Update(dt float64) {
	if !e.started || e.cancelled {
		return
	}
	e.pool.Update(dt)
	e.animator.Advance(dt)
	e.runner.tick(e, dt)
}

// HandlePointer 把指针事件分发给当前阶段执行体
func (e *Engine) HandlePointer(ev PointerEvent) {
	if !e.started || e.cancelled || e.runner == nil {
		return
	}
	e.runner.handlePointer(e, ev)
}

// ToggleCosmetic 装扮阶段的点选入口
//
// 仅在装扮阶段有效；未解锁或未知的饰品 ID 静默忽略。
func (e *Engine) ToggleCosmetic(id string) {
	if !e.started || e.cancelled || e.phase != PhaseDressup {
		return
	}
	if !e.unlocked[id] {
		log.Printf("[Grooming] 忽略未解锁饰品: %s", id)
		return
	}
	e.rack.Toggle(id)
}

// FinishDressup 装扮完成的显式信号，推进到结算
func (e *Engine) FinishDressup() {
	if !e.started || e.cancelled || e.phase != PhaseDressup {
		return
	}
	e.advance()
}

// Cancel 取消会话（兼作 dispose）
//
// 幂等。脱离输入、停止 tick 推进、释放视图资源；若正常结算尚未
// 交付过，则向等待方交付空结果。拆除路径永不报错。
func (e *Engine) Cancel() {
	if e.cancelled {
		return
	}
	e.cancelled = true

	if e.runner != nil {
		e.runner.exit(e)
		e.runner = nil
	}
	e.pool.Clear()
	e.view.Teardown()
	e.deliver(Outcome{})
	log.Printf("[Grooming] 会话已取消/关闭")
}

// setPhase 切换到指定阶段：旧执行体退出，新执行体进入
func (e *Engine) setPhase(p Phase) {
	if e.runner != nil {
		e.runner.exit(e)
	}
	e.phase = p
	e.runner = runnerFor(p)
	log.Printf("[Grooming] 进入阶段: %s", p)
	e.runner.enter(e)
}

// advance 推进到下一阶段
func (e *Engine) advance() {
	if next, ok := nextPhase(e.phase); ok {
		e.setPhase(next)
	}
}

// recordScore 记录一个阶段的计分结果
func (e *Engine) recordScore(phase Phase, score int) {
	e.session.Results = append(e.session.Results, PhaseScore{Phase: phase, Score: score})
	log.Printf("[Grooming] 阶段 %s 得分: %d", phase, score)
}

// deliver 把结果交付给等待方，保证恰好一次
func (e *Engine) deliver(o Outcome) {
	if e.delivered {
		return
	}
	e.delivered = true
	if e.onOutcome != nil {
		e.onOutcome(o)
	}
}

// Phase 返回当前阶段
func (e *Engine) Phase() Phase {
	return e.phase
}

// Cancelled 返回会话是否已取消/关闭
func (e *Engine) Cancelled() bool {
	return e.cancelled
}

// AcceptingInput 返回当前阶段是否接受指针输入
//
// 阶段完成后的停顿期和结算阶段不接受输入；取消后恒为 false。
func (e *Engine) AcceptingInput() bool {
	if !e.started || e.cancelled || e.runner == nil {
		return false
	}
	switch r := e.runner.(type) {
	case *scrubRunner:
		return !r.settling
	case *brushRunner:
		return !r.settling
	case *dressupRunner:
		return true
	default:
		return false
	}
}

// OverallProgress 返回区域进度均值（HUD 进度条）
func (e *Engine) OverallProgress() float64 {
	if e.zones == nil {
		return 0
	}
	return e.zones.OverallProgress()
}

// BrushState 返回梳毛阶段快照；不在梳毛阶段时 ok 为 false
func (e *Engine) BrushState() (BrushState, bool) {
	if r, ok := e.runner.(*brushRunner); ok {
		return r.state(e), true
	}
	return BrushState{}, false
}

// Session 返回会话记录的快照副本
func (e *Engine) Session() Session {
	if e.session == nil {
		return Session{}
	}
	snap := *e.session
	snap.Results = make([]PhaseScore, len(e.session.Results))
	copy(snap.Results, e.session.Results)
	if e.session.Equipped != nil {
		snap.Equipped = make(map[string]string, len(e.session.Equipped))
		for k, v := range e.session.Equipped {
			snap.Equipped[k] = v
		}
	}
	return snap
}

// Particles 返回粒子池（只读遍历绘制用）
func (e *Engine) Particles() *Pool {
	return e.pool
}

// UnlockedCosmetics 按目录顺序返回本次会话可选的饰品 ID
func (e *Engine) UnlockedCosmetics() []string {
	if e.catalog == nil || e.unlocked == nil {
		return nil
	}
	var out []string
	for _, item := range e.catalog.All() {
		if e.unlocked[item.ID] {
			out = append(out, item.ID)
		}
	}
	return out
}

// IsEquipped 判断饰品当前是否穿戴中
func (e *Engine) IsEquipped(id string) bool {
	if e.rack == nil {
		return false
	}
	return e.rack.IsEquipped(id)
}

// EquippedCosmetics 返回当前槽位映射的副本
func (e *Engine) EquippedCosmetics() map[string]string {
	if e.rack == nil {
		return nil
	}
	return e.rack.Equipped()
}
