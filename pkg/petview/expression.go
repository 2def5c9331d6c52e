package petview

import (
	"log"
	"math"

	"github.com/gonewx/petspa/pkg/grooming"
)

// 表情与体态动画的时序参数
const (
	blinkInterval = 3.4  // 相邻两次眨眼的间隔（秒）
	blinkDuration = 0.12 // 闭眼时长（秒）

	breathAmplitude = 0.02 // 呼吸起伏（世界单位）
	breathRate      = 2.1  // 呼吸角速度（弧度/秒）
	bounceAmplitude = 0.22 // 欢呼跳跃高度（世界单位）
	bounceRate      = 6.0  // 欢呼跳跃角速度（弧度/秒）
)

// Animator 宠物表情与体态动画器
//
// 实现 grooming.Animator。表情是引擎驱动的离散状态，呼吸、眨眼
// 与欢呼跳跃是时钟驱动的连续运动；视图每帧用 BodyOffset 和
// EyesClosed 的采样值绘制，动画器本身不触碰任何绘制对象。
type Animator struct {
	expression string
	clock      float64
	blinkClock float64
}

// NewAnimator 创建动画器，初始表情为中性
func NewAnimator() *Animator {
	return &Animator{expression: grooming.ExpressionNeutral}
}

// SetExpression 切换表情，未知表情名被忽略
func (a *Animator) SetExpression(name string) {
	switch name {
	case grooming.ExpressionNeutral, grooming.ExpressionHappy,
		grooming.ExpressionUnhappy, grooming.ExpressionBounce:
	default:
		log.Printf("[PetView] 未知表情: %s", name)
		return
	}
	if name == a.expression {
		return
	}
	a.expression = name
	if name == grooming.ExpressionBounce {
		// 跳跃从落地相位开始
		a.clock = 0
	}
}

// Advance 推进动画时钟
func (a *Animator) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	a.clock += dt
	a.blinkClock += dt
	for a.blinkClock >= blinkInterval+blinkDuration {
		a.blinkClock -= blinkInterval + blinkDuration
	}
}

// Expression 返回当前表情名
func (a *Animator) Expression() string {
	return a.expression
}

// BodyOffset 返回身体的竖直位移（世界单位，向上为正）
//
// 呼吸起伏始终存在，欢呼状态叠加跳跃。
func (a *Animator) BodyOffset() float64 {
	offset := breathAmplitude * math.Sin(a.clock*breathRate)
	if a.expression == grooming.ExpressionBounce {
		offset += bounceAmplitude * math.Abs(math.Sin(a.clock*bounceRate))
	}
	return offset
}

// EyesClosed 返回当前是否处于眨眼的闭眼窗口
func (a *Animator) EyesClosed() bool {
	return a.blinkClock >= blinkInterval
}
