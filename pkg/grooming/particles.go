package grooming

import (
	"image/color"
	"math/rand"

	"github.com/gonewx/petspa/internal/geom"
	"github.com/gonewx/petspa/pkg/config"
)

// PoolCapacity 粒子池容量（预分配，永不扩容）
const PoolCapacity = 50

// 渐隐起点：寿命比例超过该值后线性淡出到 0
const particleFadeStart = 0.6

// Particle 池内粒子。槽位由池独占持有，原地回收，会话期间零分配。
type Particle struct {
	Pos     geom.Vec3
	Vel     geom.Vec3
	Age     float64
	MaxLife float64
	Gravity float64
	Class   string
	Color   color.RGBA
	Radius  float64
	Alpha   float64 // 当前不透明度 [0,1]，渐隐阶段随寿命衰减

	active bool
}

// Pool 定容粒子池
//
// 空闲槽位用显式下标栈管理，生成为 O(1)，不做全槽扫描。
// 池满或类别未知时生成调用静默丢弃（视觉降级，不是错误）。
type Pool struct {
	slots [PoolCapacity]Particle
	free  []int
	table *config.ParticleTable
	rng   *rand.Rand
}

// NewPool 创建粒子池
//
// 参数:
//   - table: 粒子类别表（颜色/半径/重力/寿命）
//   - rng: 随机源；传 nil 使用全局随机源（测试注入固定种子以获得确定性）
func NewPool(table *config.ParticleTable, rng *rand.Rand) *Pool {
	p := &Pool{
		table: table,
		rng:   rng,
		free:  make([]int, 0, PoolCapacity),
	}
	// 倒序压栈，让首个弹出的是 0 号槽位
	for i := PoolCapacity - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
	return p
}

func (p *Pool) random() float64 {
	if p.rng != nil {
		return p.rng.Float64()
	}
	return rand.Float64()
}

// Spawn 在指定位置生成一个粒子
//
// 返回 false 表示调用被丢弃：池已满或类别未知。两种情况都不是错误，
// 调用方无需检查返回值（仅测试使用）。
func (p *Pool) Spawn(pos geom.Vec3, class string) bool {
	def, ok := p.table.Class(class)
	if !ok {
		return false
	}
	if len(p.free) == 0 {
		return false // 池满，静默丢弃
	}

	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]

	// 寿命随机抖动：基础寿命 × (0.8 + rand×0.4)
	maxLife := def.Lifetime * (0.8 + p.random()*0.4)

	// 水平方向小幅随机散开；垂直方向按类别偏置：
	// 上浮类（gravity>0）向上弹出，下落类带轻微下坠
	vx := (p.random() - 0.5) * 1.2
	vz := (p.random() - 0.5) * 1.2
	var vy float64
	if def.Gravity > 0 {
		vy = 0.8 + p.random()*0.8
	} else {
		vy = -(0.2 + p.random()*0.4)
	}

	slot := &p.slots[idx]
	slot.Pos = pos
	slot.Vel = geom.Vec3{X: vx, Y: vy, Z: vz}
	slot.Age = 0
	slot.MaxLife = maxLife
	slot.Gravity = def.Gravity
	slot.Class = class
	slot.Color = config.HexColorOr(def.Color, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	slot.Radius = def.Radius
	slot.Alpha = 1
	slot.active = true
	return true
}

// SpawnBurst 发出 count 次独立的生成调用
func (p *Pool) SpawnBurst(pos geom.Vec3, class string, count int) {
	for i := 0; i < count; i++ {
		p.Spawn(pos, class)
	}
}

// Update 推进所有活跃粒子一个 tick
//
// 积分顺序与帧率无关的简单欧拉法：先加速度后位移。寿命比例超过
// 渐隐起点后不透明度线性衰减，寿命耗尽时原地停用并归还槽位。
func (p *Pool) Update(dt float64) {
	for i := range p.slots {
		slot := &p.slots[i]
		if !slot.active {
			continue
		}

		slot.Vel.Y += slot.Gravity * dt
		slot.Pos = slot.Pos.Add(slot.Vel.Scale(dt))
		slot.Age += dt

		if slot.Age >= slot.MaxLife {
			slot.active = false
			slot.Alpha = 0
			p.free = append(p.free, i)
			continue
		}

		frac := slot.Age / slot.MaxLife
		if frac > particleFadeStart {
			slot.Alpha = 1 - (frac-particleFadeStart)/(1-particleFadeStart)
		} else {
			slot.Alpha = 1
		}
	}
}

// ActiveCount 返回活跃粒子数
func (p *Pool) ActiveCount() int {
	return PoolCapacity - len(p.free)
}

// ForEach 按槽位顺序遍历活跃粒子（绘制用，回调不得保留指针）
func (p *Pool) ForEach(fn func(*Particle)) {
	for i := range p.slots {
		if p.slots[i].active {
			fn(&p.slots[i])
		}
	}
}

// Clear 停用全部粒子并重建空闲栈
func (p *Pool) Clear() {
	p.free = p.free[:0]
	for i := PoolCapacity - 1; i >= 0; i-- {
		p.slots[i].active = false
		p.free = append(p.free, i)
	}
}
