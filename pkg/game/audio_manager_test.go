package game

import (
	"testing"
)

// 音频管理器的测试只覆盖降级路径：audio.NewContext 进程内只能创建一次
// 且依赖音频设备，合成与播放路径由 cmd/spa_preview 人工验证。

// TestNewAudioManagerNilContext 测试无音频上下文时的静音降级
func TestNewAudioManagerNilContext(t *testing.T) {
	am := NewAudioManager(nil, nil)
	if am == nil {
		t.Fatal("NewAudioManager(nil, nil) returned nil")
	}

	// 静音模式下播放不崩溃、返回 false
	if am.Play(SoundSplash) {
		t.Error("Play() without an audio context should return false")
	}
	if am.PlayStarChime(3) {
		t.Error("PlayStarChime() without an audio context should return false")
	}
}

// TestPlayStarChimeClamp 测试星级范围外的输入不崩溃
func TestPlayStarChimeClamp(t *testing.T) {
	am := NewAudioManager(nil, nil)

	for _, stars := range []int{-1, 0, 1, 2, 3, 4, 10} {
		if am.PlayStarChime(stars) {
			t.Errorf("PlayStarChime(%d) in mute mode should return false", stars)
		}
	}
}

// TestAudioManagerVolumeDefault 测试没有设置管理器时的默认音量
func TestAudioManagerVolumeDefault(t *testing.T) {
	am := NewAudioManager(nil, nil)

	if got := am.GetSoundVolume(); got != 0.8 {
		t.Errorf("Default sound volume: got %v, want 0.8", got)
	}
}

// TestAudioManagerVolumeFromSettings 测试音量跟随设置管理器
func TestAudioManagerVolumeFromSettings(t *testing.T) {
	settings, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, settings)

	settings.SetSoundVolume(0.3)
	if got := am.GetSoundVolume(); got != 0.3 {
		t.Errorf("Sound volume after settings change: got %v, want 0.3", got)
	}

	// SetSoundVolume 反向写回设置
	am.SetSoundVolume(0.55)
	if got := settings.GetSettings().SoundVolume; got != 0.55 {
		t.Errorf("Settings volume after AudioManager change: got %v, want 0.55", got)
	}
}

// TestAudioManagerDisabledSound 测试音效开关关闭时不播放
func TestAudioManagerDisabledSound(t *testing.T) {
	settings, _ := NewSettingsManager(nil)
	settings.SetSoundEnabled(false)
	am := NewAudioManager(nil, settings)

	if am.Play(SoundClick) {
		t.Error("Play() with sound disabled should return false")
	}
}
