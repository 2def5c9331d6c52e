package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/petspa/pkg/config"
	"github.com/gonewx/petspa/pkg/grooming"
)

// PetRecord 单只宠物的档案记录
type PetRecord struct {
	BestStars    int               `yaml:"bestStars"`    // 历史最佳星级 1~3，0 表示没洗过
	Sessions     int               `yaml:"sessions"`     // 完成的会话次数
	LastEquipped map[string]string `yaml:"lastEquipped"` // 上次会话的装扮快照：槽位 → 饰品ID
}

// SaveData 存档数据结构
//
// 保存内容：
//   - 每只宠物的最佳星级、会话次数与最近装扮
//   - 全局解锁的饰品列表（三星奖励逐件解锁）
type SaveData struct {
	Pets              map[string]*PetRecord `yaml:"pets"`
	UnlockedCosmetics []string              `yaml:"unlockedCosmetics"`
}

// newSaveData 返回空的默认存档
func newSaveData() *SaveData {
	return &SaveData{
		Pets:              make(map[string]*PetRecord),
		UnlockedCosmetics: []string{},
	}
}

// SaveManager 存档管理器
//
// 职责：
//   - 加载和保存宠物档案与饰品解锁进度
//   - 结算会话结果（最佳星级、三星奖励解锁）
//
// 架构说明：
//   - 经 gdata 持久化（与设置管理器同一套跨平台存储），YAML 序列化
//   - gdataManager 为 nil 时降级为仅内存模式（verify 工具和测试路径）
//   - 由场景在会话结束时调用，不直接与引擎交互
type SaveManager struct {
	gdataManager *gdata.Manager
	data         *SaveData
}

// 存储路径常量
const (
	saveObject   = "save"
	saveProperty = "progress"
)

// NewSaveManager 创建存档管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存存档）
//
// 返回：
//   - *SaveManager: 存档管理器实例
//   - error: 如果加载存档失败返回错误（不影响创建）
func NewSaveManager(gdataManager *gdata.Manager) (*SaveManager, error) {
	sm := &SaveManager{
		gdataManager: gdataManager,
		data:         newSaveData(),
	}

	if err := sm.Load(); err != nil {
		// 存档损坏不是致命错误，从空档案开始
		log.Printf("[SaveManager] Warning: Failed to load save data: %v (starting fresh)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载存档
//
// 如果 gdataManager 为 nil 或存档不存在，使用空档案
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SaveManager) Load() error {
	if sm.gdataManager == nil {
		sm.data = newSaveData()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(saveObject, saveProperty) {
		sm.data = newSaveData()
		return nil
	}

	raw, err := sm.gdataManager.LoadObjectProp(saveObject, saveProperty)
	if err != nil {
		sm.data = newSaveData()
		return fmt.Errorf("failed to load save data: %w", err)
	}

	var loaded SaveData
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		sm.data = newSaveData()
		return fmt.Errorf("failed to unmarshal save data: %w", err)
	}
	if loaded.Pets == nil {
		loaded.Pets = make(map[string]*PetRecord)
	}
	if loaded.UnlockedCosmetics == nil {
		loaded.UnlockedCosmetics = []string{}
	}

	sm.data = &loaded
	log.Printf("[SaveManager] 存档加载完成: %d 只宠物, %d 件饰品", len(loaded.Pets), len(loaded.UnlockedCosmetics))
	return nil
}

// Save 保存存档到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
//
// 返回：
//   - error: 如果序列化或保存失败返回错误
func (sm *SaveManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	raw, err := yaml.Marshal(sm.data)
	if err != nil {
		return fmt.Errorf("failed to marshal save data: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(saveObject, saveProperty, raw); err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}

	log.Printf("[SaveManager] 存档保存完成")
	return nil
}

// EnsureStarters 保证初始饰品处于解锁状态
//
// 初始集合 = 目录里标记 starter 的饰品 ∪ 各宠物配置的随身饰品。
// 幂等：重复调用不会产生重复条目，也不会影响已解锁的其他饰品。
// 注意：仅修改内存中的存档，需调用 Save() 方法持久化
//
// 参数：
//   - catalog: 饰品目录
//   - pets: 全部宠物配置
func (sm *SaveManager) EnsureStarters(catalog *config.CosmeticCatalog, pets []*config.PetConfig) {
	for _, id := range catalog.StarterIDs() {
		sm.UnlockCosmetic(id)
	}
	for _, pet := range pets {
		for _, id := range pet.StarterCosmetics {
			if _, ok := catalog.ByID(id); !ok {
				log.Printf("[SaveManager] 宠物 %s 的随身饰品不在目录中: %s", pet.ID, id)
				continue
			}
			sm.UnlockCosmetic(id)
		}
	}
}

// IsUnlocked 检查饰品是否已解锁
//
// 参数：
//   - cosmeticID: 饰品ID，如 "bow_pink"
//
// 返回：
//   - bool: true 表示已解锁
func (sm *SaveManager) IsUnlocked(cosmeticID string) bool {
	for _, id := range sm.data.UnlockedCosmetics {
		if id == cosmeticID {
			return true
		}
	}
	return false
}

// UnlockCosmetic 解锁饰品
//
// 注意：仅修改内存中的存档，需调用 Save() 方法持久化
//
// 参数：
//   - cosmeticID: 饰品ID
//
// 返回：
//   - bool: true 表示本次新解锁，false 表示此前已解锁
func (sm *SaveManager) UnlockCosmetic(cosmeticID string) bool {
	if sm.IsUnlocked(cosmeticID) {
		return false
	}
	sm.data.UnlockedCosmetics = append(sm.data.UnlockedCosmetics, cosmeticID)
	return true
}

// UnlockedCosmetics 获取已解锁饰品列表
//
// 返回：
//   - []string: 已解锁饰品ID列表（副本，修改不影响原数据）
func (sm *SaveManager) UnlockedCosmetics() []string {
	unlocked := make([]string, len(sm.data.UnlockedCosmetics))
	copy(unlocked, sm.data.UnlockedCosmetics)
	return unlocked
}

// BestStars 返回宠物的历史最佳星级，0 表示没洗过
func (sm *SaveManager) BestStars(petID string) int {
	if record, ok := sm.data.Pets[petID]; ok {
		return record.BestStars
	}
	return 0
}

// Sessions 返回宠物完成的会话次数
func (sm *SaveManager) Sessions(petID string) int {
	if record, ok := sm.data.Pets[petID]; ok {
		return record.Sessions
	}
	return 0
}

// LastEquipped 返回宠物上次会话的装扮快照
//
// 返回：
//   - map[string]string: 槽位 → 饰品ID（副本，修改不影响原数据）
func (sm *SaveManager) LastEquipped(petID string) map[string]string {
	equipped := make(map[string]string)
	if record, ok := sm.data.Pets[petID]; ok {
		for slot, id := range record.LastEquipped {
			equipped[slot] = id
		}
	}
	return equipped
}

// RecordSession 结算一次会话结果
//
// 更新宠物档案（次数、最佳星级、装扮快照）；三星结果按目录顺序
// 解锁下一件未解锁的饰品作为奖励。取消的会话（空结果）不留痕迹。
// 注意：仅修改内存中的存档，需调用 Save() 方法持久化
//
// 参数：
//   - petID: 宠物ID
//   - outcome: 会话结果
//   - catalog: 饰品目录（三星奖励的解锁顺序来源）
//
// 返回：
//   - string: 本次新解锁的饰品ID，空字符串表示没有新解锁
func (sm *SaveManager) RecordSession(petID string, outcome grooming.Outcome, catalog *config.CosmeticCatalog) string {
	if outcome.Empty() {
		return ""
	}

	record, ok := sm.data.Pets[petID]
	if !ok {
		record = &PetRecord{}
		sm.data.Pets[petID] = record
	}

	record.Sessions++
	if outcome.Stars > record.BestStars {
		record.BestStars = outcome.Stars
	}
	record.LastEquipped = make(map[string]string)
	for slot, id := range outcome.Equipped {
		record.LastEquipped[slot] = id
	}

	if outcome.Stars < 3 || catalog == nil {
		return ""
	}

	// 三星奖励：目录顺序里第一件还没解锁的饰品
	for _, item := range catalog.All() {
		if sm.UnlockCosmetic(item.ID) {
			log.Printf("[SaveManager] 三星奖励解锁饰品: %s", item.ID)
			return item.ID
		}
	}
	return ""
}
