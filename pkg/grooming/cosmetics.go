package grooming

import (
	"log"

	"github.com/gonewx/petspa/pkg/config"
)

// Rack 装扮挂载解析器
//
// 维护槽位 → 饰品的占用关系（每槽至多一件），并把挂载/卸下动作
// 转发给模型视图。未知饰品 ID 一律静默忽略：装扮的优雅降级优先于
// 打断会话。
type Rack struct {
	catalog  *config.CosmeticCatalog
	view     ModelView
	equipped map[string]string // slot → 饰品 ID
}

// NewRack 创建装扮架，初始所有槽位为空
func NewRack(catalog *config.CosmeticCatalog, view ModelView) *Rack {
	return &Rack{
		catalog:  catalog,
		view:     view,
		equipped: make(map[string]string, len(config.CosmeticSlots)),
	}
}

// Equip 把饰品穿到它所属的槽位
//
// 槽位已被占用时先卸下原饰品再挂载新饰品。未知 ID 无操作，
// 返回 false。
func (r *Rack) Equip(id string) bool {
	slot, ok := r.catalog.SlotOf(id)
	if !ok {
		log.Printf("[Rack] 忽略未知饰品: %s", id)
		return false
	}

	if current, occupied := r.equipped[slot]; occupied {
		if current == id {
			return true // 已穿戴，无需重复挂载
		}
		r.view.DetachCosmetic(slot)
		delete(r.equipped, slot)
	}

	r.view.AttachCosmetic(slot, id)
	r.equipped[slot] = id
	return true
}

// Unequip 卸下槽位上的饰品；空槽位为无操作，返回 false
func (r *Rack) Unequip(slot string) bool {
	if _, occupied := r.equipped[slot]; !occupied {
		return false
	}
	r.view.DetachCosmetic(slot)
	delete(r.equipped, slot)
	return true
}

// Toggle 装扮阶段的点选语义
//
// 点已穿戴的饰品卸下它；点其他饰品穿上它（占用槽位时替换）。
func (r *Rack) Toggle(id string) {
	slot, ok := r.catalog.SlotOf(id)
	if !ok {
		return
	}
	if r.equipped[slot] == id {
		r.Unequip(slot)
		return
	}
	r.Equip(id)
}

// IsEquipped 判断指定饰品当前是否穿戴中
func (r *Rack) IsEquipped(id string) bool {
	slot, ok := r.catalog.SlotOf(id)
	if !ok {
		return false
	}
	return r.equipped[slot] == id
}

// Equipped 返回当前槽位映射的副本
func (r *Rack) Equipped() map[string]string {
	out := make(map[string]string, len(r.equipped))
	for slot, id := range r.equipped {
		out[slot] = id
	}
	return out
}
