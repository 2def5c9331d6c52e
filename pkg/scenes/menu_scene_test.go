package scenes

import (
	"testing"

	"github.com/gonewx/petspa/pkg/config"
	"github.com/gonewx/petspa/pkg/game"
)

// resetSceneGameState installs fresh in-memory managers on the global game
// state so tests do not leak selections, unlocks or counters into each other.
func resetSceneGameState(t *testing.T) *game.GameState {
	t.Helper()

	gs := game.GetGameState()
	settings, err := game.NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager failed: %v", err)
	}
	saves, err := game.NewSaveManager(nil)
	if err != nil {
		t.Fatalf("NewSaveManager failed: %v", err)
	}
	gs.SetSettingsManager(settings)
	gs.SetSaveManager(saves)
	gs.SetAudioManager(nil)
	gs.SetSpaStrings(game.DefaultSpaStrings())
	gs.SelectedPetID = ""
	gs.SessionsPlayed = 0
	gs.LastStars = 0
	return gs
}

// newScenePets builds a minimal pet list for layout tests.
func newScenePets() []*config.PetConfig {
	return []*config.PetConfig{
		{ID: "cat", Name: "Mochi", Description: "A round little cat."},
		{ID: "dog", Name: "Biscuit", Description: "A floppy-eared pup."},
		{ID: "rabbit", Name: "Clover", Description: "A fluffy rabbit."},
	}
}

// newSceneCatalog builds a two-item catalog: one starter, one reward.
func newSceneCatalog(t *testing.T) *config.CosmeticCatalog {
	t.Helper()

	catalog, err := config.NewCosmeticCatalog([]config.CosmeticConfig{
		{ID: "cap_red", Name: "Red Cap", Slot: config.SlotHat, Color: "#d94f4f", Shape: config.CosmeticShapeCap, Starter: true},
		{ID: "crown_gold", Name: "Gold Crown", Slot: config.SlotHat, Color: "#e8c34a", Shape: config.CosmeticShapeCrown},
	})
	if err != nil {
		t.Fatalf("NewCosmeticCatalog failed: %v", err)
	}
	return catalog
}

func newMenuScene(t *testing.T) *MenuScene {
	t.Helper()
	return NewMenuScene(game.NewSceneManager(), newScenePets(), newSceneCatalog(t))
}

// TestNewMenuScene verifies the initial state of a freshly built menu.
func TestNewMenuScene(t *testing.T) {
	resetSceneGameState(t)
	menu := newMenuScene(t)

	if menu.hoveredIndex != -1 {
		t.Errorf("hoveredIndex = %d, want -1", menu.hoveredIndex)
	}
	if len(menu.pets) != 3 {
		t.Errorf("len(pets) = %d, want 3", len(menu.pets))
	}
}

// TestMenuCardLayoutCentered verifies that the card row is centered for
// three pets and that cards are spaced by the configured gap.
func TestMenuCardLayoutCentered(t *testing.T) {
	resetSceneGameState(t)
	menu := newMenuScene(t)

	total := 3*config.MenuCardWidth + 2*config.MenuCardGap
	wantStartX := (config.GameWindowWidth - total) / 2

	first := menu.cardRect(0)
	if first.x != wantStartX {
		t.Errorf("cardRect(0).x = %d, want %d", first.x, wantStartX)
	}
	if first.y != config.MenuCardY {
		t.Errorf("cardRect(0).y = %d, want %d", first.y, config.MenuCardY)
	}
	if first.w != config.MenuCardWidth || first.h != config.MenuCardHeight {
		t.Errorf("cardRect(0) size = %dx%d, want %dx%d", first.w, first.h, config.MenuCardWidth, config.MenuCardHeight)
	}

	second := menu.cardRect(1)
	if got, want := second.x-first.x, config.MenuCardWidth+config.MenuCardGap; got != want {
		t.Errorf("card stride = %d, want %d", got, want)
	}

	// The row must leave equal margins on both sides.
	last := menu.cardRect(2)
	rightMargin := config.GameWindowWidth - (last.x + last.w)
	if rightMargin != wantStartX {
		t.Errorf("right margin = %d, want %d", rightMargin, wantStartX)
	}
}

// TestMenuCardLayoutSinglePet verifies centering with only one card.
func TestMenuCardLayoutSinglePet(t *testing.T) {
	resetSceneGameState(t)
	menu := NewMenuScene(game.NewSceneManager(), newScenePets()[:1], newSceneCatalog(t))

	r := menu.cardRect(0)
	want := (config.GameWindowWidth - config.MenuCardWidth) / 2
	if r.x != want {
		t.Errorf("cardRect(0).x = %d, want %d", r.x, want)
	}
}

// TestMenuCardIndexAt verifies hit detection over the card row.
func TestMenuCardIndexAt(t *testing.T) {
	resetSceneGameState(t)
	menu := newMenuScene(t)

	first := menu.cardRect(0)
	third := menu.cardRect(2)

	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"center of first card", first.x + first.w/2, first.y + first.h/2, 0},
		{"center of third card", third.x + third.w/2, third.y + third.h/2, 2},
		{"gap between cards", first.x + first.w + config.MenuCardGap/2, first.y + 10, -1},
		{"above the row", first.x + 10, first.y - 10, -1},
		{"below the row", first.x + 10, first.y + first.h + 10, -1},
		{"right edge is exclusive", first.x + first.w, first.y + 10, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := menu.cardIndexAt(tt.x, tt.y); got != tt.want {
				t.Errorf("cardIndexAt(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// TestMenuSelectPet verifies that clicking a card records the selection on
// the global game state.
func TestMenuSelectPet(t *testing.T) {
	gs := resetSceneGameState(t)
	menu := newMenuScene(t)

	menu.selectPet(menu.pets[1])

	if got := gs.GetSelectedPet(); got != "dog" {
		t.Errorf("GetSelectedPet() = %q, want %q", got, "dog")
	}
}

// TestMenuToggleSound verifies the sound toggle flips and persists the
// setting in memory.
func TestMenuToggleSound(t *testing.T) {
	gs := resetSceneGameState(t)
	menu := newMenuScene(t)

	if !gs.GetSettingsManager().GetSettings().SoundEnabled {
		t.Fatal("SoundEnabled should default to true")
	}

	menu.toggleSound()
	if gs.GetSettingsManager().GetSettings().SoundEnabled {
		t.Error("SoundEnabled should be false after first toggle")
	}

	menu.toggleSound()
	if !gs.GetSettingsManager().GetSettings().SoundEnabled {
		t.Error("SoundEnabled should be true after second toggle")
	}
}

// TestMenuSoundToggleRectInsideWindow verifies the toggle button stays
// within the logical screen.
func TestMenuSoundToggleRectInsideWindow(t *testing.T) {
	resetSceneGameState(t)
	menu := newMenuScene(t)

	r := menu.soundToggleRect()
	if r.x < 0 || r.x+r.w > config.GameWindowWidth {
		t.Errorf("toggle rect x range [%d, %d] outside window width %d", r.x, r.x+r.w, config.GameWindowWidth)
	}
	if r.y < 0 || r.y+r.h > config.GameWindowHeight {
		t.Errorf("toggle rect y range [%d, %d] outside window height %d", r.y, r.y+r.h, config.GameWindowHeight)
	}
}

// TestMenuUpdateHeadless verifies Update runs without a display and keeps
// the internal clock moving.
func TestMenuUpdateHeadless(t *testing.T) {
	resetSceneGameState(t)
	menu := newMenuScene(t)

	for i := 0; i < 3; i++ {
		menu.Update(0.016)
	}
	if menu.clock <= 0 {
		t.Errorf("clock = %v, want > 0", menu.clock)
	}
	if menu.hoveredIndex != -1 {
		t.Errorf("hoveredIndex = %d, want -1 without a pointer", menu.hoveredIndex)
	}
}
