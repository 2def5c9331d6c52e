package geom

import (
	"math"
	"testing"
)

// TestIntersectSphereHit 测试射线正面命中球体
func TestIntersectSphereHit(t *testing.T) {
	ray := Ray{Origin: Vec3{0, 0, -5}, Dir: Vec3{0, 0, 1}}
	sphere := Sphere{Center: Vec3{0, 0, 0}, Radius: 1}

	dist, ok := ray.IntersectSphere(sphere)
	if !ok {
		t.Fatal("expected hit, got miss")
	}

	// 射线从 z=-5 沿 +z 方向，球面最近点在 z=-1，距离应为 4
	if math.Abs(dist-4) > 1e-9 {
		t.Errorf("distance: got %v, want 4", dist)
	}

	hit := ray.At(dist)
	if math.Abs(hit.Z-(-1)) > 1e-9 {
		t.Errorf("hit point Z: got %v, want -1", hit.Z)
	}
}

// TestIntersectSphereMiss 测试射线未命中球体
func TestIntersectSphereMiss(t *testing.T) {
	ray := Ray{Origin: Vec3{0, 5, -5}, Dir: Vec3{0, 0, 1}}
	sphere := Sphere{Center: Vec3{0, 0, 0}, Radius: 1}

	if _, ok := ray.IntersectSphere(sphere); ok {
		t.Error("expected miss, got hit")
	}
}

// TestIntersectSphereBehind 测试球体位于射线起点之后时不命中
func TestIntersectSphereBehind(t *testing.T) {
	ray := Ray{Origin: Vec3{0, 0, 5}, Dir: Vec3{0, 0, 1}}
	sphere := Sphere{Center: Vec3{0, 0, 0}, Radius: 1}

	if _, ok := ray.IntersectSphere(sphere); ok {
		t.Error("sphere behind ray origin should not be hit")
	}
}

// TestIntersectSphereInside 测试起点位于球内时返回出射点
func TestIntersectSphereInside(t *testing.T) {
	ray := Ray{Origin: Vec3{0, 0, 0}, Dir: Vec3{0, 0, 1}}
	sphere := Sphere{Center: Vec3{0, 0, 0}, Radius: 2}

	dist, ok := ray.IntersectSphere(sphere)
	if !ok {
		t.Fatal("ray starting inside sphere should hit the exit point")
	}
	if math.Abs(dist-2) > 1e-9 {
		t.Errorf("exit distance: got %v, want 2", dist)
	}
}

// TestIntersectSphereTangent 测试切线命中（判别式≈0）
func TestIntersectSphereTangent(t *testing.T) {
	ray := Ray{Origin: Vec3{1, 0, -5}, Dir: Vec3{0, 0, 1}}
	sphere := Sphere{Center: Vec3{0, 0, 0}, Radius: 1}

	dist, ok := ray.IntersectSphere(sphere)
	if !ok {
		t.Fatal("tangent ray should count as a hit")
	}
	if math.Abs(dist-5) > 1e-6 {
		t.Errorf("tangent distance: got %v, want 5", dist)
	}
}

// TestNormalize 测试单位化，包括零向量的安全处理
func TestNormalize(t *testing.T) {
	v := Vec3{3, 4, 0}.Normalize()
	if math.Abs(v.Length()-1) > 1e-9 {
		t.Errorf("normalized length: got %v, want 1", v.Length())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("normalizing zero vector: got %v, want zero", zero)
	}
}

// TestCross 测试叉积方向（右手系）
func TestCross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}

	z := x.Cross(y)
	if z != (Vec3{0, 0, 1}) {
		t.Errorf("x cross y: got %v, want (0,0,1)", z)
	}
}
