package grooming

import "github.com/gonewx/petspa/pkg/config"

// 评分函数族：纯函数，阈值全部来自配置。
// 每个阶段产出 0~3 分，五个计分阶段的累计分映射到 1~3 星。

// TimeScore 计时评分（冲水/清洗/吹干）
//
// elapsed 为阶段进入到 AllComplete 首次成立的秒数。
func TimeScore(elapsed float64, cfg config.TimeScoreConfig) int {
	switch {
	case elapsed < cfg.Fast:
		return 3
	case elapsed < cfg.Medium:
		return 2
	case elapsed < cfg.Slow:
		return 1
	default:
		return 0
	}
}

// EvennessScore 均匀度评分（打泡沫）
//
// peak 为阶段内观测到的峰值不均匀度，不是结束时的终值：
// 全部区域到达 1.0 后终值恒为 0，没有区分度。
func EvennessScore(peak float64, cfg config.EvennessScoreConfig) int {
	switch {
	case peak < cfg.Great:
		return 3
	case peak < cfg.Good:
		return 2
	case peak < cfg.Fair:
		return 1
	default:
		return 0
	}
}

// StreakScore 连击评分（梳毛）
//
// best 为阶段内的最佳连击数。
func StreakScore(best int, cfg config.BrushConfig) int {
	switch {
	case best >= cfg.StreakGreat:
		return 3
	case best >= cfg.StreakGood:
		return 2
	case best >= cfg.StreakFair:
		return 1
	default:
		return 0
	}
}

// StarRating 把累计分映射到星级
//
// 星级保底 1 星，永不为 0：哪怕全程 0 分，完成会话本身也值一颗星。
func StarRating(cumulative int, cfg config.StarConfig) int {
	switch {
	case cumulative >= cfg.Three:
		return 3
	case cumulative >= cfg.Two:
		return 2
	default:
		return 1
	}
}
