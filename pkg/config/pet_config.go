package config

import (
	"fmt"
	"image/color"
	"log"

	"gopkg.in/yaml.v3"
)

// 装扮槽位名称（闭集）
//
// 配置校验和装扮架共用这一份定义；运行期出现集合之外的槽位名
// 一律按未知处理。
const (
	SlotHat  = "hat"
	SlotNeck = "neck"
	SlotBack = "back"
)

// CosmeticSlots 按固定顺序列出全部槽位
var CosmeticSlots = []string{SlotHat, SlotNeck, SlotBack}

// IsCosmeticSlot 判断槽位名是否属于闭集
func IsCosmeticSlot(slot string) bool {
	return slot == SlotHat || slot == SlotNeck || slot == SlotBack
}

// PetConfig 宠物定义
//
// 宠物模型由一组球体部件拼装而成，护理区域是附着在模型上的球形
// 感应体，装扮锚点给出每个槽位饰品的挂载位置。全部坐标使用模型
// 局部空间（原点在宠物身体中心，Y 轴朝上）。
type PetConfig struct {
	ID          string                  `yaml:"id"`          // 宠物标识（存档键，如 "cat"）
	Name        string                  `yaml:"name"`        // 显示名称（ASCII，用于界面绘制）
	Description string                  `yaml:"description"` // 选择界面上的一句话介绍
	Palette     PetPalette              `yaml:"palette"`     // 配色
	Parts       []PetPart               `yaml:"parts"`       // 模型部件
	Zones       []PetZone               `yaml:"zones"`       // 护理区域
	Attachments map[string]AnchorConfig `yaml:"attachments"` // 槽位 → 装扮锚点
	// StarterCosmetics 首次打开该宠物时自动解锁的饰品 ID。
	// 指向饰品目录之外的 ID 在运行期被静默忽略。
	StarterCosmetics []string `yaml:"starterCosmetics"`
}

// PetPalette 宠物配色（十六进制颜色串）
type PetPalette struct {
	Body   string `yaml:"body"`   // 主体毛色
	Accent string `yaml:"accent"` // 凸显色（口鼻/肚皮/耳内）
	Detail string `yaml:"detail"` // 细节色（眼睛/鼻头）
}

// PetPart 组成宠物模型的球体部件
type PetPart struct {
	Name   string  `yaml:"name"`   // 部件名（如 "head"、"ear_left"）
	Role   string  `yaml:"role"`   // 取色角色：body/accent/detail，缺省为 body
	X      float64 `yaml:"x"`      // 模型局部坐标
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	Radius float64 `yaml:"radius"` // 球体半径
}

// PetZone 附着在模型上的护理区域（球形感应体）
type PetZone struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	Radius float64 `yaml:"radius"`
}

// AnchorConfig 装扮锚点（模型局部坐标）
type AnchorConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// 部件取色角色
const (
	PartRoleBody   = "body"
	PartRoleAccent = "accent"
	PartRoleDetail = "detail"
)

// LoadPetConfig 从 YAML 文件加载单个宠物定义
//
// 参数:
//   - path: 配置文件路径（如 "data/pets/cat.yaml"）
//
// 返回:
//   - *PetConfig: 解析并校验后的宠物定义
//   - error: 读取、解析或校验失败时返回错误
func LoadPetConfig(path string) (*PetConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	var cfg PetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pet config %s: %w", path, err)
	}

	if err := validatePetConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid pet config in %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadAllPetConfigs 加载目录下的全部宠物定义
//
// 按文件名顺序返回（决定选择界面的排列顺序）。目录为空视为错误：
// 没有宠物就没有可玩内容。
func LoadAllPetConfigs(dir string) ([]*PetConfig, error) {
	paths, err := listConfigFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no pet configs found in %s", dir)
	}

	pets := make([]*PetConfig, 0, len(paths))
	seen := make(map[string]bool)
	for _, p := range paths {
		cfg, err := LoadPetConfig(p)
		if err != nil {
			return nil, err
		}
		if seen[cfg.ID] {
			return nil, fmt.Errorf("duplicate pet id %q in %s", cfg.ID, p)
		}
		seen[cfg.ID] = true
		pets = append(pets, cfg)
	}

	log.Printf("[PetConfig] 已加载 %d 个宠物定义", len(pets))
	return pets, nil
}

// validatePetConfig 校验宠物定义的完整性
func validatePetConfig(cfg *PetConfig) error {
	if cfg.ID == "" {
		return fmt.Errorf("pet id is required")
	}
	if cfg.Name == "" {
		return fmt.Errorf("pet %s: name is required", cfg.ID)
	}
	if len(cfg.Parts) == 0 {
		return fmt.Errorf("pet %s: at least one model part is required", cfg.ID)
	}
	if len(cfg.Zones) == 0 {
		return fmt.Errorf("pet %s: at least one grooming zone is required", cfg.ID)
	}

	for i, part := range cfg.Parts {
		if part.Name == "" {
			return fmt.Errorf("pet %s: part %d has no name", cfg.ID, i)
		}
		if part.Radius <= 0 {
			return fmt.Errorf("pet %s: part %s has non-positive radius %v", cfg.ID, part.Name, part.Radius)
		}
		switch part.Role {
		case "", PartRoleBody, PartRoleAccent, PartRoleDetail:
		default:
			return fmt.Errorf("pet %s: part %s has unknown role %q", cfg.ID, part.Name, part.Role)
		}
	}

	zoneNames := make(map[string]bool)
	for i, zone := range cfg.Zones {
		if zone.Name == "" {
			return fmt.Errorf("pet %s: zone %d has no name", cfg.ID, i)
		}
		if zoneNames[zone.Name] {
			return fmt.Errorf("pet %s: duplicate zone name %q", cfg.ID, zone.Name)
		}
		zoneNames[zone.Name] = true
		if zone.Radius <= 0 {
			return fmt.Errorf("pet %s: zone %s has non-positive radius %v", cfg.ID, zone.Name, zone.Radius)
		}
	}

	for slot := range cfg.Attachments {
		if !IsCosmeticSlot(slot) {
			return fmt.Errorf("pet %s: unknown attachment slot %q", cfg.ID, slot)
		}
	}

	return nil
}

// ZoneNames 按配置顺序返回全部护理区域名
func (p *PetConfig) ZoneNames() []string {
	names := make([]string, len(p.Zones))
	for i, z := range p.Zones {
		names[i] = z.Name
	}
	return names
}

// PartColor 根据部件角色从配色中取色
//
// 配色串非法时回落到内置的灰调，保证渲染永远有颜色可用。
func (p *PetConfig) PartColor(role string) color.RGBA {
	switch role {
	case PartRoleAccent:
		return HexColorOr(p.Palette.Accent, color.RGBA{R: 0xe8, G: 0xd5, B: 0xc0, A: 0xff})
	case PartRoleDetail:
		return HexColorOr(p.Palette.Detail, color.RGBA{R: 0x3a, G: 0x30, B: 0x2a, A: 0xff})
	default:
		return HexColorOr(p.Palette.Body, color.RGBA{R: 0xb0, G: 0x9a, B: 0x80, A: 0xff})
	}
}
