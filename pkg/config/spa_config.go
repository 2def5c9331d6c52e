package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SpaConfig 水疗玩法参数配置
//
// 集中了护理会话的全部可调参数：擦洗增量、计时/均匀度/连击评分阈值、
// 梳毛目标和星级映射。引擎自身不携带任何魔法数字，全部从这里读取。
//
// 注意：粒子池容量不在配置中。池是定容预分配的（见 grooming 包），
// 改容量属于代码变更而非内容调整。
type SpaConfig struct {
	Scrub    ScrubConfig         `yaml:"scrub"`    // 擦洗阶段参数
	Time     TimeScoreConfig     `yaml:"time"`     // 计时评分阈值（冲水/清洗/吹干）
	Evenness EvennessScoreConfig `yaml:"evenness"` // 均匀度评分阈值（打泡沫）
	Brush    BrushConfig         `yaml:"brush"`    // 梳毛阶段参数
	Stars    StarConfig          `yaml:"stars"`    // 星级映射阈值
	Burst    BurstConfig         `yaml:"burst"`    // 粒子爆发参数
}

// ScrubConfig 擦洗类阶段（冲水/打泡沫/清洗/吹干）的公共参数
type ScrubConfig struct {
	// Increment 指针每次划过区域时的进度增量，范围 (0, 1]
	Increment float64 `yaml:"increment"`
	// SettleDelay 阶段完成后到进入下一阶段的停顿秒数
	SettleDelay float64 `yaml:"settleDelay"`
}

// TimeScoreConfig 计时评分阈值（秒）
//
// 用时 < Fast 得 3 分，< Medium 得 2 分，< Slow 得 1 分，否则 0 分。
type TimeScoreConfig struct {
	Fast   float64 `yaml:"fast"`
	Medium float64 `yaml:"medium"`
	Slow   float64 `yaml:"slow"`
}

// EvennessScoreConfig 均匀度评分阈值
//
// 以打泡沫过程中观测到的“峰值不均匀度”（各区域进度的总体标准差最大值）
// 评分：峰值 < Great 得 3 分，< Good 得 2 分，< Fair 得 1 分，否则 0 分。
type EvennessScoreConfig struct {
	Great float64 `yaml:"great"`
	Good  float64 `yaml:"good"`
	Fair  float64 `yaml:"fair"`
}

// BrushConfig 梳毛阶段参数
type BrushConfig struct {
	// Target 完成阶段所需的有效梳毛次数
	Target int `yaml:"target"`
	// FlipEvery 每计满多少次正确梳毛后翻转要求方向
	FlipEvery int `yaml:"flipEvery"`
	// MinStrokePx 一次拖拽被认定为梳毛的最小水平位移（逻辑像素）
	MinStrokePx float64 `yaml:"minStrokePx"`
	// StreakGreat/StreakGood/StreakFair 最佳连击的评分阈值
	StreakGreat int `yaml:"streakGreat"`
	StreakGood  int `yaml:"streakGood"`
	StreakFair  int `yaml:"streakFair"`
}

// StarConfig 星级映射阈值
//
// 五个评分阶段的累计分（0~15）映射到 1~3 星：
// 累计 ≥ Three 得 3 星，≥ Two 得 2 星，否则保底 1 星。
type StarConfig struct {
	Three int `yaml:"three"`
	Two   int `yaml:"two"`
}

// BurstConfig 粒子爆发参数
type BurstConfig struct {
	// Count 每次擦洗命中时生成的粒子数量
	Count int `yaml:"count"`
	// Celebration 结算时庆祝爆发的粒子数量
	Celebration int `yaml:"celebration"`
}

// DefaultSpaConfig 返回内置默认参数
//
// 与 data/config/spa.yaml 的出厂值一致；无头工具和测试可以直接使用，
// 不依赖任何文件。
func DefaultSpaConfig() *SpaConfig {
	return &SpaConfig{
		Scrub: ScrubConfig{
			Increment:   0.025,
			SettleDelay: 0.8,
		},
		Time: TimeScoreConfig{
			Fast:   8,
			Medium: 16,
			Slow:   28,
		},
		Evenness: EvennessScoreConfig{
			Great: 0.12,
			Good:  0.25,
			Fair:  0.38,
		},
		Brush: BrushConfig{
			Target:      14,
			FlipEvery:   3,
			MinStrokePx: 20,
			StreakGreat: 6,
			StreakGood:  4,
			StreakFair:  2,
		},
		Stars: StarConfig{
			Three: 12,
			Two:   7,
		},
		Burst: BurstConfig{
			Count:       3,
			Celebration: 24,
		},
	}
}

// LoadSpaConfig 从 YAML 文件加载水疗参数
//
// 参数：
//   - path: 配置文件路径（如 "data/config/spa.yaml"）
//
// 返回：
//   - *SpaConfig: 解析并校验后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadSpaConfig(path string) (*SpaConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	var cfg SpaConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse spa config %s: %w", path, err)
	}

	applySpaDefaults(&cfg)

	if err := validateSpaConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid spa config in %s: %w", path, err)
	}

	return &cfg, nil
}

// applySpaDefaults 为缺失字段填充默认值（向后兼容旧配置文件）
func applySpaDefaults(cfg *SpaConfig) {
	def := DefaultSpaConfig()

	if cfg.Scrub.Increment == 0 {
		cfg.Scrub.Increment = def.Scrub.Increment
	}
	if cfg.Scrub.SettleDelay == 0 {
		cfg.Scrub.SettleDelay = def.Scrub.SettleDelay
	}
	if cfg.Time.Fast == 0 {
		cfg.Time.Fast = def.Time.Fast
	}
	if cfg.Time.Medium == 0 {
		cfg.Time.Medium = def.Time.Medium
	}
	if cfg.Time.Slow == 0 {
		cfg.Time.Slow = def.Time.Slow
	}
	if cfg.Evenness.Great == 0 {
		cfg.Evenness.Great = def.Evenness.Great
	}
	if cfg.Evenness.Good == 0 {
		cfg.Evenness.Good = def.Evenness.Good
	}
	if cfg.Evenness.Fair == 0 {
		cfg.Evenness.Fair = def.Evenness.Fair
	}
	if cfg.Brush.Target == 0 {
		cfg.Brush.Target = def.Brush.Target
	}
	if cfg.Brush.FlipEvery == 0 {
		cfg.Brush.FlipEvery = def.Brush.FlipEvery
	}
	if cfg.Brush.MinStrokePx == 0 {
		cfg.Brush.MinStrokePx = def.Brush.MinStrokePx
	}
	if cfg.Brush.StreakGreat == 0 {
		cfg.Brush.StreakGreat = def.Brush.StreakGreat
	}
	if cfg.Brush.StreakGood == 0 {
		cfg.Brush.StreakGood = def.Brush.StreakGood
	}
	if cfg.Brush.StreakFair == 0 {
		cfg.Brush.StreakFair = def.Brush.StreakFair
	}
	if cfg.Stars.Three == 0 {
		cfg.Stars.Three = def.Stars.Three
	}
	if cfg.Stars.Two == 0 {
		cfg.Stars.Two = def.Stars.Two
	}
	if cfg.Burst.Count == 0 {
		cfg.Burst.Count = def.Burst.Count
	}
	if cfg.Burst.Celebration == 0 {
		cfg.Burst.Celebration = def.Burst.Celebration
	}
}

// validateSpaConfig 校验参数的合法性与阈值顺序
func validateSpaConfig(cfg *SpaConfig) error {
	if cfg.Scrub.Increment <= 0 || cfg.Scrub.Increment > 1 {
		return fmt.Errorf("scrub.increment must be in (0, 1], got %v", cfg.Scrub.Increment)
	}
	if cfg.Scrub.SettleDelay < 0 {
		return fmt.Errorf("scrub.settleDelay cannot be negative")
	}
	if !(cfg.Time.Fast < cfg.Time.Medium && cfg.Time.Medium < cfg.Time.Slow) {
		return fmt.Errorf("time thresholds must satisfy fast < medium < slow, got %v/%v/%v",
			cfg.Time.Fast, cfg.Time.Medium, cfg.Time.Slow)
	}
	if !(cfg.Evenness.Great < cfg.Evenness.Good && cfg.Evenness.Good < cfg.Evenness.Fair) {
		return fmt.Errorf("evenness thresholds must satisfy great < good < fair, got %v/%v/%v",
			cfg.Evenness.Great, cfg.Evenness.Good, cfg.Evenness.Fair)
	}
	if cfg.Brush.Target < 1 {
		return fmt.Errorf("brush.target must be at least 1, got %d", cfg.Brush.Target)
	}
	if cfg.Brush.FlipEvery < 1 {
		return fmt.Errorf("brush.flipEvery must be at least 1, got %d", cfg.Brush.FlipEvery)
	}
	if cfg.Brush.MinStrokePx <= 0 {
		return fmt.Errorf("brush.minStrokePx must be positive, got %v", cfg.Brush.MinStrokePx)
	}
	if !(cfg.Brush.StreakGreat > cfg.Brush.StreakGood && cfg.Brush.StreakGood > cfg.Brush.StreakFair) {
		return fmt.Errorf("brush streak thresholds must satisfy great > good > fair, got %d/%d/%d",
			cfg.Brush.StreakGreat, cfg.Brush.StreakGood, cfg.Brush.StreakFair)
	}
	if cfg.Stars.Three <= cfg.Stars.Two {
		return fmt.Errorf("stars.three must be greater than stars.two, got %d/%d",
			cfg.Stars.Three, cfg.Stars.Two)
	}
	if cfg.Burst.Count < 1 {
		return fmt.Errorf("burst.count must be at least 1, got %d", cfg.Burst.Count)
	}
	return nil
}
