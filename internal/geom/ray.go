package geom

import "math"

// Ray 由原点和（单位）方向向量构成的射线
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// Sphere 球体体积，模型视图用它表示可交互的护理区域
type Sphere struct {
	Center Vec3
	Radius float64
}

// IntersectSphere returns the distance along the ray to the nearest
// intersection with the sphere, or ok=false when the ray misses it.
// Intersections behind the ray origin are ignored; a ray starting inside
// the sphere reports the exit point.
//
// 标准几何解法：解二次方程 |o + t·d - c|² = r²。
func (r Ray) IntersectSphere(s Sphere) (t float64, ok bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Dir.Dot(r.Dir)
	if a == 0 {
		return 0, false // 零方向向量视为未命中
	}
	b := 2 * oc.Dot(r.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}

	sqrtDisc := math.Sqrt(disc)
	// 优先取较近的交点；若在射线起点之后则取较远交点（起点位于球内）
	t0 := (-b - sqrtDisc) / (2 * a)
	t1 := (-b + sqrtDisc) / (2 * a)
	if t0 > 1e-9 {
		return t0, true
	}
	if t1 > 1e-9 {
		return t1, true
	}
	return 0, false
}

// At 返回射线上距离 t 处的点
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}
