package utils

import "math"

// 缓动函数
//
// HUD 和菜单的过渡动画都从这里取速度曲线：输入进度 t ∈ [0, 1]，
// 返回缓动后的进度 ∈ [0, 1]。曲线公式见 https://easings.net/

// EaseOutCubic 三次方缓出
// 出发快、收尾缓，卡片悬停抬升和饰品架滑入用它
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
// 两头缓、中段快，结果页压暗层的淡入用它
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad 二次方缓出
// 比 Cubic 柔和的衰减，横幅高亮的消退用它
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseOutExpo 指数缓出
// 前 20% 就完成大半，星星"砰"地弹出靠它；超过 1 的输入截断
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b；配合缓动函数把进度映射到坐标或透明度
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
