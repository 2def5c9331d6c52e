package config

import (
	"fmt"
	"log"

	"gopkg.in/yaml.v3"
)

// 饰品外形（渲染器支持的闭集）
//
// 每种外形对应 petview 中一段矢量绘制代码，新增外形需要同时扩展
// 渲染器，所以在加载期就拒绝未知外形。
const (
	CosmeticShapeCap   = "cap"   // 鸭舌帽（hat）
	CosmeticShapeCrown = "crown" // 王冠（hat）
	CosmeticShapeBow   = "bow"   // 蝴蝶结（neck）
	CosmeticShapeScarf = "scarf" // 围巾（neck）
	CosmeticShapeWings = "wings" // 小翅膀（back）
	CosmeticShapeCape  = "cape"  // 披风（back）
)

// CosmeticConfig 单件饰品定义
type CosmeticConfig struct {
	ID      string `yaml:"id"`      // 饰品标识（存档键）
	Name    string `yaml:"name"`    // 显示名称（ASCII）
	Slot    string `yaml:"slot"`    // 占用槽位：hat/neck/back
	Color   string `yaml:"color"`   // 主色（十六进制）
	Shape   string `yaml:"shape"`   // 外形，见 CosmeticShape* 常量
	Starter bool   `yaml:"starter"` // 新档是否自动解锁
}

// cosmeticFile 饰品目录文件的顶层结构
type cosmeticFile struct {
	Cosmetics []CosmeticConfig `yaml:"cosmetics"`
}

// CosmeticCatalog 饰品目录
//
// 保持配置文件中的顺序（决定装扮架上的排列），同时提供按 ID 的
// 静态查找。目录加载后只读。
type CosmeticCatalog struct {
	items []CosmeticConfig
	byID  map[string]int
}

// LoadCosmeticCatalog 从 YAML 文件加载饰品目录
//
// 参数:
//   - path: 目录文件路径（如 "data/cosmetics.yaml"）
//
// 返回:
//   - *CosmeticCatalog: 加载并校验后的目录
//   - error: 读取、解析或校验失败时返回错误
func LoadCosmeticCatalog(path string) (*CosmeticCatalog, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	var file cosmeticFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse cosmetic catalog %s: %w", path, err)
	}

	catalog, err := NewCosmeticCatalog(file.Cosmetics)
	if err != nil {
		return nil, fmt.Errorf("invalid cosmetic catalog %s: %w", path, err)
	}

	log.Printf("[CosmeticConfig] 已加载 %d 件饰品", len(catalog.items))
	return catalog, nil
}

// NewCosmeticCatalog 从内存中的条目构建目录（测试和无头工具用）
func NewCosmeticCatalog(items []CosmeticConfig) (*CosmeticCatalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("cosmetic catalog is empty")
	}

	catalog := &CosmeticCatalog{
		items: items,
		byID:  make(map[string]int, len(items)),
	}

	for i, c := range catalog.items {
		if err := validateCosmetic(&c); err != nil {
			return nil, fmt.Errorf("cosmetic %d: %w", i, err)
		}
		if _, exists := catalog.byID[c.ID]; exists {
			return nil, fmt.Errorf("duplicate cosmetic id %q", c.ID)
		}
		catalog.byID[c.ID] = i
	}

	return catalog, nil
}

// validateCosmetic 校验单件饰品定义
func validateCosmetic(c *CosmeticConfig) error {
	if c.ID == "" {
		return fmt.Errorf("cosmetic id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("cosmetic %s: name is required", c.ID)
	}
	if !IsCosmeticSlot(c.Slot) {
		return fmt.Errorf("cosmetic %s: unknown slot %q", c.ID, c.Slot)
	}
	switch c.Shape {
	case CosmeticShapeCap, CosmeticShapeCrown, CosmeticShapeBow,
		CosmeticShapeScarf, CosmeticShapeWings, CosmeticShapeCape:
	default:
		return fmt.Errorf("cosmetic %s: unknown shape %q", c.ID, c.Shape)
	}
	if _, err := ParseHexColor(c.Color); err != nil {
		return fmt.Errorf("cosmetic %s: %w", c.ID, err)
	}
	return nil
}

// All 按目录顺序返回全部饰品
func (c *CosmeticCatalog) All() []CosmeticConfig {
	return c.items
}

// ByID 按 ID 查找饰品
func (c *CosmeticCatalog) ByID(id string) (CosmeticConfig, bool) {
	i, ok := c.byID[id]
	if !ok {
		return CosmeticConfig{}, false
	}
	return c.items[i], true
}

// SlotOf 返回饰品占用的槽位；未知 ID 返回 false
func (c *CosmeticCatalog) SlotOf(id string) (string, bool) {
	item, ok := c.ByID(id)
	if !ok {
		return "", false
	}
	return item.Slot, true
}

// ForSlot 按目录顺序返回指定槽位的全部饰品
func (c *CosmeticCatalog) ForSlot(slot string) []CosmeticConfig {
	var out []CosmeticConfig
	for _, item := range c.items {
		if item.Slot == slot {
			out = append(out, item)
		}
	}
	return out
}

// StarterIDs 返回新档自动解锁的饰品 ID（目录顺序）
func (c *CosmeticCatalog) StarterIDs() []string {
	var out []string
	for _, item := range c.items {
		if item.Starter {
			out = append(out, item.ID)
		}
	}
	return out
}
