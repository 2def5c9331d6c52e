package config

import (
	"fmt"
	"log"

	"gopkg.in/yaml.v3"
)

// 内置粒子类别名
//
// 各护理阶段按固定类别生成粒子爆发；类别的视觉参数来自
// data/particles.yaml。生成时遇到表中不存在的类别按静默丢弃处理，
// 所以这里只是惯用名，不是强制闭集。
const (
	ParticleClassSplash   = "splash"   // 冲水：下落的水花
	ParticleClassBubble   = "bubble"   // 打泡沫：上浮的泡泡
	ParticleClassDroplet  = "droplet"  // 清洗：下落的清水滴
	ParticleClassSteam    = "steam"    // 吹干：上浮的热气
	ParticleClassSpark    = "spark"    // 梳毛：缓落的亮屑
	ParticleClassConfetti = "confetti" // 结算：庆祝彩屑
)

// ParticleClassConfig 单个粒子类别的视觉参数
type ParticleClassConfig struct {
	Name string `yaml:"name"` // 类别名
	// Color 粒子主色（十六进制，可带透明度，如 "#8ecbff" 或 "#8ecbffcc"）
	Color string `yaml:"color"`
	// Radius 基础视觉半径（世界单位，绘制时按投影缩放）
	Radius float64 `yaml:"radius"`
	// Gravity 垂直加速度（世界单位/秒²）。正值为上浮类（泡泡、热气），
	// 负值为下落类（水花、水滴）。
	Gravity float64 `yaml:"gravity"`
	// Lifetime 基础寿命（秒）。实际寿命在生成时随机抖动。
	Lifetime float64 `yaml:"lifetime"`
}

// particleFile 粒子配置文件的顶层结构
type particleFile struct {
	Particles []ParticleClassConfig `yaml:"particles"`
}

// ParticleTable 粒子类别表（加载后只读）
type ParticleTable struct {
	classes map[string]ParticleClassConfig
}

// LoadParticleTable 从 YAML 文件加载粒子类别表
//
// 参数:
//   - path: 配置文件路径（如 "data/particles.yaml"）
//
// 返回:
//   - *ParticleTable: 加载并校验后的类别表
//   - error: 读取、解析或校验失败时返回错误
func LoadParticleTable(path string) (*ParticleTable, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	var file particleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse particle config %s: %w", path, err)
	}

	table, err := NewParticleTable(file.Particles)
	if err != nil {
		return nil, fmt.Errorf("invalid particle config %s: %w", path, err)
	}

	log.Printf("[ParticleConfig] 已加载 %d 个粒子类别", len(table.classes))
	return table, nil
}

// NewParticleTable 从内存中的类别构建表（测试和无头工具用）
func NewParticleTable(classes []ParticleClassConfig) (*ParticleTable, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("particle table is empty")
	}

	table := &ParticleTable{
		classes: make(map[string]ParticleClassConfig, len(classes)),
	}

	for i, pc := range classes {
		if pc.Name == "" {
			return nil, fmt.Errorf("particle class %d has no name", i)
		}
		if _, exists := table.classes[pc.Name]; exists {
			return nil, fmt.Errorf("duplicate particle class %q", pc.Name)
		}
		if pc.Radius <= 0 {
			return nil, fmt.Errorf("particle class %s: radius must be positive, got %v", pc.Name, pc.Radius)
		}
		if pc.Lifetime <= 0 {
			return nil, fmt.Errorf("particle class %s: lifetime must be positive, got %v", pc.Name, pc.Lifetime)
		}
		if _, err := ParseHexColor(pc.Color); err != nil {
			return nil, fmt.Errorf("particle class %s: %w", pc.Name, err)
		}
		table.classes[pc.Name] = pc
	}

	return table, nil
}

// Class 按类别名查找视觉参数
func (t *ParticleTable) Class(name string) (ParticleClassConfig, bool) {
	pc, ok := t.classes[name]
	return pc, ok
}

// Len 返回类别数量
func (t *ParticleTable) Len() int {
	return len(t.classes)
}
