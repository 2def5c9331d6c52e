package grooming

import (
	"math"

	"github.com/gonewx/petspa/internal/geom"
	"github.com/gonewx/petspa/pkg/config"
)

// Phase 会话阶段，固定顺序推进
type Phase int

const (
	PhaseWash    Phase = iota // 冲水
	PhaseSoap                 // 打泡沫
	PhaseRinse                // 清洗
	PhaseDry                  // 吹干
	PhaseBrush                // 梳毛
	PhaseDressup              // 装扮（不计分）
	PhaseResult               // 结算
)

// ScoredPhaseCount 计分阶段数（装扮与结算不计分）
const ScoredPhaseCount = 5

// String 返回阶段标识
func (p Phase) String() string {
	switch p {
	case PhaseWash:
		return "wash"
	case PhaseSoap:
		return "soap"
	case PhaseRinse:
		return "rinse"
	case PhaseDry:
		return "dry"
	case PhaseBrush:
		return "brush"
	case PhaseDressup:
		return "dressup"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// nextPhase 返回下一阶段；结算是终点
func nextPhase(p Phase) (Phase, bool) {
	if p >= PhaseResult {
		return p, false
	}
	return p + 1, true
}

// 结算庆祝爆发的世界空间位置（宠物头顶上方）
var celebrationBurstPos = geom.Vec3{Y: 1.6}

// phaseRunner 阶段执行体
//
// 每个阶段是一个显式对象，自己持有阶段局部状态；输入的生命期
// 跟随执行体：引擎只把指针事件转发给当前执行体，阶段退出后旧
// 执行体被整体丢弃，不存在残留监听器污染后续阶段的可能。
type phaseRunner interface {
	enter(e *Engine)
	handlePointer(e *Engine, ev PointerEvent)
	tick(e *Engine, dt float64)
	exit(e *Engine)
}

// runnerFor 为阶段创建执行体
func runnerFor(phase Phase) phaseRunner {
	switch phase {
	case PhaseWash:
		return &scrubRunner{phase: PhaseWash, class: config.ParticleClassSplash}
	case PhaseSoap:
		return &scrubRunner{phase: PhaseSoap, class: config.ParticleClassBubble, samplePeak: true}
	case PhaseRinse:
		return &scrubRunner{phase: PhaseRinse, class: config.ParticleClassDroplet}
	case PhaseDry:
		return &scrubRunner{phase: PhaseDry, class: config.ParticleClassSteam}
	case PhaseBrush:
		return &brushRunner{}
	case PhaseDressup:
		return &dressupRunner{}
	case PhaseResult:
		return &resultRunner{}
	default:
		return &dressupRunner{} // 不可达
	}
}

// scrubRunner 擦洗类阶段（冲水/打泡沫/清洗/吹干）的公共执行体
//
// 四个阶段共享同一套区域进度玩法，差异只有粒子类别和评分方式：
// 打泡沫按峰值不均匀度计分，其余按用时计分。
type scrubRunner struct {
	phase      Phase
	class      string
	samplePeak bool

	elapsed    float64
	peak       float64
	settling   bool
	settleLeft float64
}

func (r *scrubRunner) enter(e *Engine) {
	e.zones.Reset()
	e.view.SetPhaseOverlay(r.phase)
	for _, zone := range e.zones.Names() {
		e.view.SetZoneFade(zone, 1)
	}
	// 上一阶段结束时的喜悦不带进新阶段
	e.animator.SetExpression(ExpressionNeutral)
}

func (r *scrubRunner) handlePointer(e *Engine, ev PointerEvent) {
	if r.settling {
		return // 完成后进入停顿，输入已脱离
	}
	if ev.Type == PointerUp {
		return
	}

	hit, ok := e.view.ResolvePointer(ev.X, ev.Y)
	if !ok {
		return
	}
	if !e.zones.Increment(hit.Zone, e.tuning.Scrub.Increment) {
		return
	}

	progress := e.zones.Progress(hit.Zone)
	e.view.SetZoneFade(hit.Zone, 1-progress)

	if r.samplePeak {
		if u := e.zones.Unevenness(); u > r.peak {
			r.peak = u
		}
	}

	e.pool.SpawnBurst(hit.Point, r.class, e.tuning.Burst.Count)

	if e.zones.AllComplete() {
		r.settling = true
		r.settleLeft = e.tuning.Scrub.SettleDelay

		var score int
		if r.samplePeak {
			score = EvennessScore(r.peak, e.tuning.Evenness)
		} else {
			score = TimeScore(r.elapsed, e.tuning.Time)
		}
		e.recordScore(r.phase, score)
		e.animator.SetExpression(ExpressionHappy)
	}
}

func (r *scrubRunner) tick(e *Engine, dt float64) {
	if r.settling {
		r.settleLeft -= dt
		if r.settleLeft <= 0 {
			e.advance()
		}
		return
	}
	// 用时从阶段进入累计到 AllComplete 首次成立
	r.elapsed += dt
}

func (r *scrubRunner) exit(e *Engine) {}

// BrushState 梳毛阶段的对外快照（HUD 绘制方向箭头和计数用）
type BrushState struct {
	Count        int
	Target       int
	Streak       int
	BestStreak   int
	RequireRight bool // 当前要求的梳毛方向，true 为向右
}

// brushRunner 梳毛阶段执行体
//
// 不使用区域：以拖拽的水平位移判定梳毛。正确方向计数并累积连击，
// 反方向把连击清零但不影响计数，每计满固定次数翻转要求方向。
type brushRunner struct {
	count  int
	streak int
	best   int

	requireRight bool
	dragging     bool
	startX       float64

	settling   bool
	settleLeft float64
}

func (r *brushRunner) enter(e *Engine) {
	r.requireRight = true // 起始方向固定向右
	e.view.SetPhaseOverlay(PhaseBrush)
	e.animator.SetExpression(ExpressionNeutral)
}

func (r *brushRunner) handlePointer(e *Engine, ev PointerEvent) {
	if r.settling {
		return
	}

	switch ev.Type {
	case PointerDown:
		r.dragging = true
		r.startX = ev.X

	case PointerUp:
		if !r.dragging {
			return
		}
		r.dragging = false

		dx := ev.X - r.startX
		if math.Abs(dx) < e.tuning.Brush.MinStrokePx {
			return // 位移不足，不是一次梳毛
		}

		if (dx > 0) != r.requireRight {
			// 方向错误：只清连击，计数不受影响
			r.streak = 0
			e.animator.SetExpression(ExpressionUnhappy)
			return
		}

		r.count++
		r.streak++
		if r.streak > r.best {
			r.best = r.streak
		}
		// 正确的一梳让宠物从沮丧中恢复
		e.animator.SetExpression(ExpressionNeutral)

		if hit, ok := e.view.ResolvePointer(ev.X, ev.Y); ok {
			e.pool.SpawnBurst(hit.Point, config.ParticleClassSpark, e.tuning.Burst.Count)
		}

		if r.count%e.tuning.Brush.FlipEvery == 0 {
			r.requireRight = !r.requireRight
		}

		if r.count >= e.tuning.Brush.Target {
			r.settling = true
			r.settleLeft = e.tuning.Scrub.SettleDelay
			e.recordScore(PhaseBrush, StreakScore(r.best, e.tuning.Brush))
			e.animator.SetExpression(ExpressionHappy)
		}
	}
}

func (r *brushRunner) tick(e *Engine, dt float64) {
	if r.settling {
		r.settleLeft -= dt
		if r.settleLeft <= 0 {
			e.advance()
		}
	}
}

func (r *brushRunner) exit(e *Engine) {}

// state 返回对外快照
func (r *brushRunner) state(e *Engine) BrushState {
	return BrushState{
		Count:        r.count,
		Target:       e.tuning.Brush.Target,
		Streak:       r.streak,
		BestStreak:   r.best,
		RequireRight: r.requireRight,
	}
}

// dressupRunner 装扮阶段执行体
//
// 不计分。饰品选择经由装扮架界面直达 Engine.ToggleCosmetic，
// 模型本体上的指针事件在本阶段没有含义；阶段只在显式的完成
// 信号（Engine.FinishDressup）上结束。
type dressupRunner struct{}

func (r *dressupRunner) enter(e *Engine) {
	e.view.SetPhaseOverlay(PhaseDressup)
	e.animator.SetExpression(ExpressionNeutral)
}

func (r *dressupRunner) handlePointer(e *Engine, ev PointerEvent) {}

func (r *dressupRunner) tick(e *Engine, dt float64) {}

func (r *dressupRunner) exit(e *Engine) {}

// resultRunner 结算阶段执行体
//
// 进入时汇总五个阶段的得分、定级、冻结装扮映射并把结果交付给
// 等待方（恰好一次），随后停留在结算画面直到宿主关闭会话。
type resultRunner struct{}

func (r *resultRunner) enter(e *Engine) {
	e.view.SetPhaseOverlay(PhaseResult)

	cumulative := 0
	for _, pr := range e.session.Results {
		cumulative += pr.Score
	}
	e.session.Cumulative = cumulative
	e.session.Stars = StarRating(cumulative, e.tuning.Stars)
	e.session.Equipped = e.rack.Equipped()

	switch e.session.Stars {
	case 3:
		e.animator.SetExpression(ExpressionBounce)
	case 2:
		e.animator.SetExpression(ExpressionHappy)
	default:
		e.animator.SetExpression(ExpressionUnhappy)
	}

	e.pool.SpawnBurst(celebrationBurstPos, config.ParticleClassConfetti, e.tuning.Burst.Celebration)

	e.deliver(Outcome{
		Stars:    e.session.Stars,
		Equipped: e.rack.Equipped(),
	})
}

func (r *resultRunner) handlePointer(e *Engine, ev PointerEvent) {}

func (r *resultRunner) tick(e *Engine, dt float64) {}

func (r *resultRunner) exit(e *Engine) {}
