package scenes

import (
	"testing"

	"github.com/gonewx/petspa/pkg/config"
	"github.com/gonewx/petspa/pkg/game"
	"github.com/gonewx/petspa/pkg/grooming"
)

// Compile-time interface checks for the scene contracts.
var (
	_ Scene         = (*MenuScene)(nil)
	_ Scene         = (*SpaScene)(nil)
	_ game.Saveable = (*SpaScene)(nil)
)

// newSpaPet builds a pet config with enough parts and zones to start a
// grooming session.
func newSpaPet() *config.PetConfig {
	return &config.PetConfig{
		ID:   "cat",
		Name: "Mochi",
		Parts: []config.PetPart{
			{Name: "body", Role: config.PartRoleBody, X: 0, Y: 0, Z: 0, Radius: 1.0},
			{Name: "head", Role: config.PartRoleBody, X: 0, Y: 1.1, Z: 0.2, Radius: 0.6},
		},
		Zones: []config.PetZone{
			{Name: "back", X: 0, Y: 0.4, Z: 0, Radius: 0.7},
			{Name: "head", X: 0, Y: 1.1, Z: 0.2, Radius: 0.5},
		},
	}
}

func newSpaParticles(t *testing.T) *config.ParticleTable {
	t.Helper()

	table, err := config.NewParticleTable([]config.ParticleClassConfig{
		{Name: config.ParticleClassSplash, Color: "#8ecbff", Radius: 0.05, Gravity: -3.0, Lifetime: 0.6},
		{Name: config.ParticleClassBubble, Color: "#ffffffcc", Radius: 0.08, Gravity: 0.6, Lifetime: 1.2},
		{Name: config.ParticleClassDroplet, Color: "#9ad4ff", Radius: 0.04, Gravity: -2.4, Lifetime: 0.7},
		{Name: config.ParticleClassSteam, Color: "#f0f0f0aa", Radius: 0.09, Gravity: 0.8, Lifetime: 1.0},
		{Name: config.ParticleClassSpark, Color: "#ffe08a", Radius: 0.05, Gravity: -0.8, Lifetime: 0.9},
		{Name: config.ParticleClassConfetti, Color: "#e8c34a", Radius: 0.06, Gravity: -1.2, Lifetime: 1.5},
	})
	if err != nil {
		t.Fatalf("NewParticleTable failed: %v", err)
	}
	return table
}

// newSpaScene builds a fully wired scene with in-memory managers.
func newSpaScene(t *testing.T) *SpaScene {
	t.Helper()
	resetSceneGameState(t)

	scene, err := NewSpaScene(game.NewSceneManager(), newSpaPet(), newSceneCatalog(t), config.DefaultSpaConfig(), newSpaParticles(t))
	if err != nil {
		t.Fatalf("NewSpaScene failed: %v", err)
	}
	return scene
}

// TestNewSpaSceneStartsSession verifies the scene comes up in the wash
// phase with an idle progress bar.
func TestNewSpaSceneStartsSession(t *testing.T) {
	scene := newSpaScene(t)

	if got := scene.engine.Phase(); got != grooming.PhaseWash {
		t.Errorf("Phase() = %v, want %v", got, grooming.PhaseWash)
	}
	if !scene.engine.AcceptingInput() {
		t.Error("AcceptingInput() should be true at session start")
	}
	if got := scene.engine.OverallProgress(); got != 0 {
		t.Errorf("OverallProgress() = %v, want 0", got)
	}
}

// TestNewSpaSceneNilPet verifies construction fails without a pet config.
func TestNewSpaSceneNilPet(t *testing.T) {
	resetSceneGameState(t)

	_, err := NewSpaScene(game.NewSceneManager(), nil, newSceneCatalog(t), config.DefaultSpaConfig(), newSpaParticles(t))
	if err == nil {
		t.Fatal("NewSpaScene with nil pet should fail")
	}
}

// TestSpaSceneUpdateHeadless verifies a few idle ticks keep the session in
// the wash phase without input.
func TestSpaSceneUpdateHeadless(t *testing.T) {
	scene := newSpaScene(t)

	for i := 0; i < 10; i++ {
		scene.Update(0.016)
	}

	if got := scene.engine.Phase(); got != grooming.PhaseWash {
		t.Errorf("Phase() = %v, want %v after idle ticks", got, grooming.PhaseWash)
	}
	if scene.outcomeReceived {
		t.Error("outcomeReceived should be false while the session is running")
	}
}

// TestSpaSceneLeaveCancelsSession verifies leaving mid-session cancels the
// engine and delivers the empty outcome exactly once.
func TestSpaSceneLeaveCancelsSession(t *testing.T) {
	scene := newSpaScene(t)

	scene.leave()

	if !scene.engine.Cancelled() {
		t.Error("engine should be cancelled after leave()")
	}
	if !scene.outcomeReceived {
		t.Error("cancelling should deliver an outcome")
	}
	if !scene.outcome.Empty() {
		t.Errorf("cancelled outcome should be empty, got stars %d", scene.outcome.Stars)
	}

	// A second leave must not panic or re-deliver.
	scene.leave()
	if got := game.GetGameState().SessionsPlayed; got != 0 {
		t.Errorf("SessionsPlayed = %d, want 0 after cancelled session", got)
	}
}

// TestSpaSceneBackButtonPress verifies a press on the back button is
// consumed by the HUD and cancels the session.
func TestSpaSceneBackButtonPress(t *testing.T) {
	scene := newSpaScene(t)

	back := backButtonRect()
	if !scene.handleHUDPress(back.x+back.w/2, back.y+back.h/2) {
		t.Fatal("press on the back button should be consumed")
	}
	if !scene.engine.Cancelled() {
		t.Error("engine should be cancelled after pressing back")
	}
}

// TestSpaSceneDoneButtonOutsideDressup verifies the done button is inert
// during scored phases.
func TestSpaSceneDoneButtonOutsideDressup(t *testing.T) {
	scene := newSpaScene(t)

	done := doneButtonRect()
	if scene.handleHUDPress(done.x+done.w/2, done.y+done.h/2) {
		t.Error("done button should not consume presses during the wash phase")
	}
	if got := scene.engine.Phase(); got != grooming.PhaseWash {
		t.Errorf("Phase() = %v, want %v", got, grooming.PhaseWash)
	}
}

// TestHandleOutcomePersistsSession verifies the outcome callback writes the
// save, counts the session and resolves the three-star reward.
func TestHandleOutcomePersistsSession(t *testing.T) {
	gs := resetSceneGameState(t)
	catalog := newSceneCatalog(t)
	saves := gs.GetSaveManager()
	saves.EnsureStarters(catalog, nil)

	scene := &SpaScene{
		sceneManager: game.NewSceneManager(),
		pet:          newSpaPet(),
		catalog:      catalog,
	}

	scene.handleOutcome(grooming.Outcome{
		Stars:    3,
		Equipped: map[string]string{config.SlotHat: "cap_red"},
	})

	if !scene.outcomeReceived {
		t.Fatal("outcomeReceived should be true")
	}
	if scene.rewardID != "crown_gold" {
		t.Errorf("rewardID = %q, want %q", scene.rewardID, "crown_gold")
	}
	if got := saves.BestStars("cat"); got != 3 {
		t.Errorf("BestStars(cat) = %d, want 3", got)
	}
	if got := saves.Sessions("cat"); got != 1 {
		t.Errorf("Sessions(cat) = %d, want 1", got)
	}
	if got := saves.LastEquipped("cat")[config.SlotHat]; got != "cap_red" {
		t.Errorf("LastEquipped hat = %q, want %q", got, "cap_red")
	}
	if gs.SessionsPlayed != 1 {
		t.Errorf("SessionsPlayed = %d, want 1", gs.SessionsPlayed)
	}
	if gs.LastStars != 3 {
		t.Errorf("LastStars = %d, want 3", gs.LastStars)
	}
}

// TestHandleOutcomeTwoStarsNoReward verifies sub-three-star sessions do not
// unlock anything.
func TestHandleOutcomeTwoStarsNoReward(t *testing.T) {
	gs := resetSceneGameState(t)
	catalog := newSceneCatalog(t)

	scene := &SpaScene{
		sceneManager: game.NewSceneManager(),
		pet:          newSpaPet(),
		catalog:      catalog,
	}

	scene.handleOutcome(grooming.Outcome{Stars: 2, Equipped: map[string]string{}})

	if scene.rewardID != "" {
		t.Errorf("rewardID = %q, want empty", scene.rewardID)
	}
	if got := gs.GetSaveManager().BestStars("cat"); got != 2 {
		t.Errorf("BestStars(cat) = %d, want 2", got)
	}
}

// TestHandleOutcomeEmptyLeavesNoTrace verifies the cancel outcome does not
// touch the save or the session counters.
func TestHandleOutcomeEmptyLeavesNoTrace(t *testing.T) {
	gs := resetSceneGameState(t)

	scene := &SpaScene{
		sceneManager: game.NewSceneManager(),
		pet:          newSpaPet(),
		catalog:      newSceneCatalog(t),
	}

	scene.handleOutcome(grooming.Outcome{})

	if !scene.outcomeReceived {
		t.Error("outcomeReceived should be true even for the empty outcome")
	}
	if scene.rewardID != "" {
		t.Errorf("rewardID = %q, want empty", scene.rewardID)
	}
	if got := gs.GetSaveManager().Sessions("cat"); got != 0 {
		t.Errorf("Sessions(cat) = %d, want 0", got)
	}
	if gs.SessionsPlayed != 0 {
		t.Errorf("SessionsPlayed = %d, want 0", gs.SessionsPlayed)
	}
}

// TestSpaSceneSaveOnExit verifies the forced-exit hook reports success with
// in-memory managers.
func TestSpaSceneSaveOnExit(t *testing.T) {
	scene := newSpaScene(t)

	if !scene.SaveOnExit() {
		t.Error("SaveOnExit() = false, want true")
	}
}

// TestRackSlotLayout verifies the rack slots are centered and sized by the
// HUD constants.
func TestRackSlotLayout(t *testing.T) {
	const count = 4
	total := count*config.HUDRackSlotSize + (count-1)*config.HUDRackSlotGap
	wantStartX := (config.GameWindowWidth - total) / 2
	wantY := config.GameWindowHeight - config.HUDRackHeight + (config.HUDRackHeight-config.HUDRackSlotSize)/2

	first := rackSlotRect(0, count)
	if first.x != wantStartX {
		t.Errorf("rackSlotRect(0).x = %d, want %d", first.x, wantStartX)
	}
	if first.y != wantY {
		t.Errorf("rackSlotRect(0).y = %d, want %d", first.y, wantY)
	}
	if first.w != config.HUDRackSlotSize || first.h != config.HUDRackSlotSize {
		t.Errorf("slot size = %dx%d, want %dx%d", first.w, first.h, config.HUDRackSlotSize, config.HUDRackSlotSize)
	}

	last := rackSlotRect(count-1, count)
	if got, want := last.x+last.w, config.GameWindowWidth-wantStartX; got != want {
		t.Errorf("last slot right edge = %d, want %d", got, want)
	}
}

// TestRackSlotLayoutSingle verifies a single unlocked item sits centered.
func TestRackSlotLayoutSingle(t *testing.T) {
	r := rackSlotRect(0, 1)
	want := (config.GameWindowWidth - config.HUDRackSlotSize) / 2
	if r.x != want {
		t.Errorf("rackSlotRect(0, 1).x = %d, want %d", r.x, want)
	}
}

// TestPhaseTitles verifies every phase maps to a distinct banner title.
func TestPhaseTitles(t *testing.T) {
	phases := []grooming.Phase{
		grooming.PhaseWash, grooming.PhaseSoap, grooming.PhaseRinse,
		grooming.PhaseDry, grooming.PhaseBrush, grooming.PhaseDressup,
		grooming.PhaseResult,
	}

	seen := make(map[string]bool)
	for _, p := range phases {
		title := phaseTitle(p)
		if title == "" {
			t.Errorf("phaseTitle(%v) is empty", p)
		}
		if seen[title] {
			t.Errorf("phaseTitle(%v) = %q duplicates another phase", p, title)
		}
		seen[title] = true
	}

	if got := phaseTitle(grooming.PhaseResult); got != "ALL DONE" {
		t.Errorf("phaseTitle(result) = %q, want %q", got, "ALL DONE")
	}
}

// TestPhaseHints verifies interactive phases have a hint and the result
// phase stays silent.
func TestPhaseHints(t *testing.T) {
	interactive := []grooming.Phase{
		grooming.PhaseWash, grooming.PhaseSoap, grooming.PhaseRinse,
		grooming.PhaseDry, grooming.PhaseBrush, grooming.PhaseDressup,
	}
	for _, p := range interactive {
		if phaseHint(p) == "" {
			t.Errorf("phaseHint(%v) should not be empty", p)
		}
	}
	if got := phaseHint(grooming.PhaseResult); got != "" {
		t.Errorf("phaseHint(result) = %q, want empty", got)
	}
}

// TestResultTitle verifies the headline tracks the star rating.
func TestResultTitle(t *testing.T) {
	tests := []struct {
		stars int
		want  string
	}{
		{3, "SQUEAKY CLEAN!"},
		{2, "ALL CLEAN!"},
		{1, "CLEAN ENOUGH"},
		{0, "CLEAN ENOUGH"},
	}
	for _, tt := range tests {
		if got := resultTitle(tt.stars); got != tt.want {
			t.Errorf("resultTitle(%d) = %q, want %q", tt.stars, got, tt.want)
		}
	}
}

// TestScoreLabel verifies the per-phase rating text.
func TestScoreLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{3, "GREAT"},
		{2, "GOOD"},
		{1, "FAIR"},
		{0, "MISSED"},
		{-1, "MISSED"},
	}
	for _, tt := range tests {
		if got := scoreLabel(tt.score); got != tt.want {
			t.Errorf("scoreLabel(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
