package grooming

import (
	"testing"

	"github.com/gonewx/petspa/pkg/config"
)

func newTestRack() (*Rack, *stubView) {
	view := newStubView("head")
	return NewRack(testCatalog(), view), view
}

// TestRackEquip 测试穿戴与槽位替换语义
func TestRackEquip(t *testing.T) {
	t.Run("equip attaches to the catalog slot", func(t *testing.T) {
		rack, view := newTestRack()

		if !rack.Equip("cap_red") {
			t.Fatal("Equip(cap_red) should succeed")
		}
		if got := view.attached[config.SlotHat]; got != "cap_red" {
			t.Errorf("Expected cap_red attached to hat, got %q", got)
		}
		if !rack.IsEquipped("cap_red") {
			t.Error("cap_red should report as equipped")
		}
	})

	t.Run("equipping a second item replaces the first", func(t *testing.T) {
		rack, view := newTestRack()

		rack.Equip("cap_red")
		rack.Equip("crown_gold")

		// 槽位上只剩 B：先卸下 A 再挂载 B
		if got := view.attached[config.SlotHat]; got != "crown_gold" {
			t.Errorf("Expected crown_gold on hat after replace, got %q", got)
		}
		if rack.IsEquipped("cap_red") {
			t.Error("cap_red should be detached after replacement")
		}
		wantCalls := []string{"attach:hat:cap_red", "detach:hat", "attach:hat:crown_gold"}
		if len(view.calls) != len(wantCalls) {
			t.Fatalf("Expected calls %v, got %v", wantCalls, view.calls)
		}
		for i := range wantCalls {
			if view.calls[i] != wantCalls[i] {
				t.Errorf("Call %d: expected %q, got %q", i, wantCalls[i], view.calls[i])
			}
		}
	})

	t.Run("re-equipping the same item is idempotent", func(t *testing.T) {
		rack, view := newTestRack()
		rack.Equip("cap_red")
		rack.Equip("cap_red")
		if len(view.calls) != 1 {
			t.Errorf("Expected a single attach call, got %v", view.calls)
		}
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		rack, view := newTestRack()
		if rack.Equip("halo_secret") {
			t.Error("Equip with unknown id should return false")
		}
		if len(view.attached) != 0 {
			t.Errorf("Unknown id must not attach anything, got %v", view.attached)
		}
	})

	t.Run("different slots are independent", func(t *testing.T) {
		rack, view := newTestRack()
		rack.Equip("cap_red")
		rack.Equip("bow_pink")
		rack.Equip("cape_blue")

		equipped := rack.Equipped()
		if len(equipped) != 3 {
			t.Fatalf("Expected 3 slots occupied, got %v", equipped)
		}
		if view.attached[config.SlotNeck] != "bow_pink" || view.attached[config.SlotBack] != "cape_blue" {
			t.Errorf("Unexpected attachments: %v", view.attached)
		}
	})
}

// TestRackUnequip 测试卸下语义
func TestRackUnequip(t *testing.T) {
	rack, view := newTestRack()

	rack.Equip("cap_red")
	if !rack.Unequip(config.SlotHat) {
		t.Fatal("Unequip(hat) should succeed")
	}
	if _, occupied := view.attached[config.SlotHat]; occupied {
		t.Error("Hat slot should be empty after unequip, no dangling attachment")
	}
	if len(rack.Equipped()) != 0 {
		t.Errorf("Expected no equipped items, got %v", rack.Equipped())
	}

	// 空槽位卸下是无操作
	if rack.Unequip(config.SlotHat) {
		t.Error("Unequip on empty slot should return false")
	}
}

// TestRackToggle 测试装扮阶段的点选语义
func TestRackToggle(t *testing.T) {
	rack, view := newTestRack()

	// 点选穿上
	rack.Toggle("bow_pink")
	if !rack.IsEquipped("bow_pink") {
		t.Fatal("Toggle should equip an unworn item")
	}

	// 再点同一件卸下
	rack.Toggle("bow_pink")
	if rack.IsEquipped("bow_pink") {
		t.Error("Toggle on a worn item should unequip it")
	}
	if _, occupied := view.attached[config.SlotNeck]; occupied {
		t.Error("Neck slot should be empty after toggle-off")
	}

	// 占用槽位时点另一件替换
	rack.Toggle("bow_pink")
	rack.Toggle("scarf_green")
	if rack.IsEquipped("bow_pink") || !rack.IsEquipped("scarf_green") {
		t.Errorf("Expected scarf_green to replace bow_pink, got %v", rack.Equipped())
	}

	// 未知 ID 点选无操作
	rack.Toggle("halo_secret")
	if len(rack.Equipped()) != 1 {
		t.Errorf("Unknown toggle should not change state, got %v", rack.Equipped())
	}
}

// TestRackEquippedCopy 测试快照与内部状态解耦
func TestRackEquippedCopy(t *testing.T) {
	rack, _ := newTestRack()
	rack.Equip("cap_red")

	snap := rack.Equipped()
	snap[config.SlotHat] = "tampered"

	if got := rack.Equipped()[config.SlotHat]; got != "cap_red" {
		t.Errorf("Mutating the snapshot must not affect the rack, got %q", got)
	}
}
