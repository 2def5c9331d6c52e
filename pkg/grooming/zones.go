package grooming

import "math"

// ZoneTracker 区域进度追踪器
//
// 每个擦洗类阶段进入时重置，阶段内进度只增不减，并且钳制在 1.0。
// 区域名集合在会话内固定，由模型视图在加载时报告。
type ZoneTracker struct {
	names    []string
	progress map[string]float64
}

// NewZoneTracker 创建追踪器，所有区域进度为 0
func NewZoneTracker(names []string) *ZoneTracker {
	t := &ZoneTracker{
		names:    make([]string, len(names)),
		progress: make(map[string]float64, len(names)),
	}
	copy(t.names, names)
	for _, n := range t.names {
		t.progress[n] = 0
	}
	return t
}

// Reset 把所有已知区域的进度归零
func (t *ZoneTracker) Reset() {
	for _, n := range t.names {
		t.progress[n] = 0
	}
}

// Increment 给指定区域增加进度，钳制到 1.0
//
// 未知区域名或非正增量是防御性无操作（返回 false），不是错误。
// 已满区域的增量被钳制为原值不变，但仍算一次有效事件（返回 true），
// 阶段逻辑据此继续播放命中反馈。
func (t *ZoneTracker) Increment(zone string, amount float64) bool {
	current, known := t.progress[zone]
	if !known || amount <= 0 {
		return false
	}
	t.progress[zone] = math.Min(1, current+amount)
	return true
}

// Progress 返回指定区域的当前进度；未知区域返回 0
func (t *ZoneTracker) Progress(zone string) float64 {
	return t.progress[zone]
}

// OverallProgress 返回所有区域进度的算术平均；空集返回 0
func (t *ZoneTracker) OverallProgress() float64 {
	if len(t.names) == 0 {
		return 0
	}
	sum := 0.0
	for _, n := range t.names {
		sum += t.progress[n]
	}
	return sum / float64(len(t.names))
}

// AllComplete 当且仅当每个区域进度恰好为 1.0 时为真
//
// 进度通过 min 钳制写入，所以 1.0 的相等比较是可靠的。
// 空集按约定为真（调用方保证区域集非空）。
func (t *ZoneTracker) AllComplete() bool {
	for _, n := range t.names {
		if t.progress[n] != 1 {
			return false
		}
	}
	return true
}

// Unevenness 返回当前进度分布的总体标准差
//
// 0 表示完全均匀。打泡沫阶段在每次有效推进后采样该值并保留峰值。
func (t *ZoneTracker) Unevenness() float64 {
	n := len(t.names)
	if n == 0 {
		return 0
	}
	mean := 0.0
	for _, name := range t.names {
		mean += t.progress[name]
	}
	mean /= float64(n)

	variance := 0.0
	for _, name := range t.names {
		d := t.progress[name] - mean
		variance += d * d
	}
	variance /= float64(n)

	// 浮点误差可能产生极小的负方差
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Names 返回区域名（固定顺序，调用方不得修改）
func (t *ZoneTracker) Names() []string {
	return t.names
}
