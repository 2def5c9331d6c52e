package petview

import (
	"math"

	"github.com/gonewx/petspa/internal/geom"
)

// 相机默认机位与活动范围
const (
	defaultCameraDistance = 6.0
	defaultCameraPitch    = -0.22
	defaultCameraFOV      = math.Pi / 4

	minCameraPitch    = -1.2
	maxCameraPitch    = 1.2
	minCameraDistance = 2.0
	maxCameraDistance = 14.0

	nearClipDepth = 0.05
)

// OrbitCamera 环绕相机
//
// 相机按偏航/俯仰角围绕注视点布置，自身不含输入逻辑。视图用它
// 做两件事：把屏幕坐标转换为世界射线（拾取），把世界坐标投影回
// 屏幕（绘制）。两个方向共用同一组基向量，保证拾取与画面一致。
type OrbitCamera struct {
	Target   geom.Vec3 // 注视点（世界坐标）
	Distance float64   // 相机到注视点的距离
	Yaw      float64   // 偏航角（弧度），0 为正面
	Pitch    float64   // 俯仰角（弧度），负值为俯视
	FOV      float64   // 垂直视场角（弧度）

	width  float64
	height float64
}

// NewOrbitCamera 创建环绕相机
//
// 参数:
//   - width: 屏幕逻辑宽度（像素）
//   - height: 屏幕逻辑高度（像素）
//
// 返回:
//   - *OrbitCamera: 带默认机位的相机
func NewOrbitCamera(width, height int) *OrbitCamera {
	return &OrbitCamera{
		Target:   geom.Vec3{Y: 0.4},
		Distance: defaultCameraDistance,
		Pitch:    defaultCameraPitch,
		FOV:      defaultCameraFOV,
		width:    float64(width),
		height:   float64(height),
	}
}

// Resize 更新屏幕逻辑尺寸
func (c *OrbitCamera) Resize(width, height int) {
	c.width = float64(width)
	c.height = float64(height)
}

// Orbit 按增量旋转相机，俯仰角钳制在活动范围内
func (c *OrbitCamera) Orbit(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch = clamp(c.Pitch+deltaPitch, minCameraPitch, maxCameraPitch)
}

// Zoom 按增量调整相机距离，钳制在活动范围内
func (c *OrbitCamera) Zoom(delta float64) {
	c.Distance = clamp(c.Distance+delta, minCameraDistance, maxCameraDistance)
}

// Position 返回相机的世界坐标
func (c *OrbitCamera) Position() geom.Vec3 {
	cp := math.Cos(c.Pitch)
	back := geom.Vec3{
		X: math.Sin(c.Yaw) * cp,
		Y: -math.Sin(c.Pitch),
		Z: math.Cos(c.Yaw) * cp,
	}
	return c.Target.Add(back.Scale(c.Distance))
}

// basis 返回相机空间的右/上/前单位基向量
func (c *OrbitCamera) basis() (right, up, forward geom.Vec3) {
	forward = c.Target.Sub(c.Position()).Normalize()
	right = forward.Cross(geom.Vec3{Y: 1})
	if right.Length() < 1e-9 {
		// 俯仰接近正负 90 度时视线与世界上方向平行
		right = geom.Vec3{X: 1}
	}
	right = right.Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

// ScreenRay 把屏幕坐标转换为从相机出发的世界射线
//
// 参数:
//   - sx: 屏幕 X（像素）
//   - sy: 屏幕 Y（像素，向下为正）
//
// 返回:
//   - geom.Ray: 起点在相机位置、方向为单位向量的射线
func (c *OrbitCamera) ScreenRay(sx, sy float64) geom.Ray {
	right, up, forward := c.basis()
	tanHalf := math.Tan(c.FOV / 2)
	aspect := c.width / c.height
	nx := (2*sx/c.width - 1) * tanHalf * aspect
	ny := (1 - 2*sy/c.height) * tanHalf
	dir := forward.Add(right.Scale(nx)).Add(up.Scale(ny)).Normalize()
	return geom.Ray{Origin: c.Position(), Dir: dir}
}

// Project 把世界坐标投影到屏幕
//
// 参数:
//   - p: 世界坐标
//
// 返回:
//   - sx, sy: 屏幕坐标（像素）
//   - depth: 相机空间深度（沿视线方向的距离）
//   - ok: 点是否在近裁剪面之前
func (c *OrbitCamera) Project(p geom.Vec3) (sx, sy, depth float64, ok bool) {
	right, up, forward := c.basis()
	rel := p.Sub(c.Position())
	depth = rel.Dot(forward)
	if depth <= nearClipDepth {
		return 0, 0, depth, false
	}
	tanHalf := math.Tan(c.FOV / 2)
	aspect := c.width / c.height
	nx := rel.Dot(right) / depth / (tanHalf * aspect)
	ny := rel.Dot(up) / depth / tanHalf
	sx = (nx + 1) / 2 * c.width
	sy = (1 - ny) / 2 * c.height
	return sx, sy, depth, true
}

// ScaleAt 返回给定深度处一个世界单位对应的屏幕像素数
func (c *OrbitCamera) ScaleAt(depth float64) float64 {
	if depth <= nearClipDepth {
		return 0
	}
	return c.height / (2 * math.Tan(c.FOV/2) * depth)
}

// clamp 把 v 钳制在 [lo, hi] 区间
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
