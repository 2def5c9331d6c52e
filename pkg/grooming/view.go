package grooming

import (
	"github.com/gonewx/petspa/internal/geom"
)

// 表情词汇表（动画协作方必须识别的固定集合）
const (
	ExpressionNeutral = "neutral" // 平静
	ExpressionHappy   = "happy"   // 开心
	ExpressionUnhappy = "unhappy" // 不满
	ExpressionBounce  = "bounce"  // 欢呼弹跳
)

// PointerHit 指针命中结果：命中的区域名与世界空间命中点
type PointerHit struct {
	Zone  string
	Point geom.Vec3
}

// CosmeticState 会话开始时的装扮状态
type CosmeticState struct {
	// Unlocked 装扮阶段可供选择的饰品 ID 列表
	Unlocked []string
	// Equipped 进入会话前已穿戴的槽位映射（slot → 饰品 ID），
	// 会话开始时预先挂载
	Equipped map[string]string
}

// PetDescriptor 会话入口消费的宠物描述
//
// 引擎只读取这里列出的字段；模型几何、配色等渲染细节由视图协作方
// 自行加载。
type PetDescriptor struct {
	ID        string // 存档键
	Name      string // 显示名称
	Cosmetics CosmeticState
}

// ModelView 渲染子系统协作方
//
// 引擎不触碰任何绘制 API，所有视觉操作都经由这个接口表达。
// 实现方见 pkg/petview；测试使用桩实现。
type ModelView interface {
	// LoadModel 加载宠物模型并返回护理区域名列表。
	// 失败视为会话启动前置条件不满足（致命，不在引擎内恢复）。
	LoadModel(pet PetDescriptor) (zones []string, err error)

	// ResolvePointer 把交互表面局部坐标解析为最近的区域命中。
	// 未命中或区域集为空时返回 false，绝不报错。
	ResolvePointer(x, y float64) (PointerHit, bool)

	// SetPhaseOverlay 按阶段重新着色区域覆盖层
	SetPhaseOverlay(phase Phase)

	// SetZoneFade 设置某区域残留覆盖层的不透明度（1 − 进度）。
	// 未知区域名由实现方静默忽略。
	SetZoneFade(zone string, alpha float64)

	// AttachCosmetic 把饰品的视觉表示挂载到槽位锚点
	AttachCosmetic(slot, cosmeticID string)

	// DetachCosmetic 移除槽位上的饰品视觉；空槽位为无操作
	DetachCosmetic(slot string)

	// Teardown 释放视图持有的资源。会话结束或取消时恰好调用一次。
	Teardown()
}

// Animator 动画子系统协作方
type Animator interface {
	// SetExpression 切换表情，词汇表见 Expression* 常量。
	// 未知表情名由实现方静默忽略。
	SetExpression(name string)

	// Advance 推进表情动画时钟
	Advance(dt float64)
}
