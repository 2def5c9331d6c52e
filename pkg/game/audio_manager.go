package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/gonewx/petspa/internal/tone"
)

// 音效ID
//
// 游戏不携带任何音频素材，全部音效在启动时由 internal/tone 合成。
const (
	SoundClick   = "click"   // 界面点击
	SoundSplash  = "splash"  // 冲水/清洗的水声
	SoundBubble  = "bubble"  // 打泡沫
	SoundDryer   = "dryer"   // 吹风
	SoundBrush   = "brush"   // 正确的一梳
	SoundMiss    = "miss"    // 反方向的一梳
	SoundEquip   = "equip"   // 穿戴饰品
	SoundAdvance = "advance" // 阶段切换

	soundChime1 = "chime_1" // 结算 1 星
	soundChime2 = "chime_2" // 结算 2 星
	soundChime3 = "chime_3" // 结算 3 星
)

// AudioManager 音频管理器
// 职责：
//   - 启动时合成全部音效并缓存播放器
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 提供便捷的播放接口
//
// 设计原则：
//   - 中心化管理：所有音频播放都通过 AudioManager
//   - 与设置联动：自动应用 SettingsManager 中的音量设置
//   - 无音频环境降级：上下文为 nil 时所有播放调用静默返回 false
type AudioManager struct {
	settingsManager *SettingsManager         // 设置管理器（用于读取音量设置，可为 nil）
	players         map[string]*audio.Player // 音效播放器缓存（音效ID -> 播放器）
}

// NewAudioManager 创建新的音频管理器并合成全部音效
//
// 参数：
//   - ctx: 音频上下文，可为 nil（降级静音模式）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		settingsManager: sm,
		players:         make(map[string]*audio.Player),
	}

	if ctx == nil {
		log.Printf("[AudioManager] 无音频上下文，静音运行")
		return am
	}

	rate := ctx.SampleRate()
	c5 := tone.Chime(rate, 523.25, 0.4, 0.55)
	e5 := tone.Chime(rate, 659.25, 0.4, 0.55)
	g5 := tone.Chime(rate, 783.99, 0.5, 0.55)

	effects := map[string][]byte{
		SoundClick:   tone.Sine(rate, 880, 0.05, 0.4),
		SoundSplash:  tone.Mix(tone.Noise(rate, 0.22, 0.5), tone.Sweep(rate, 520, 180, 0.22, 0.35)),
		SoundBubble:  tone.Sweep(rate, 320, 980, 0.16, 0.4),
		SoundDryer:   tone.Noise(rate, 0.35, 0.3),
		SoundBrush:   tone.Noise(rate, 0.1, 0.45),
		SoundMiss:    tone.Sweep(rate, 420, 160, 0.2, 0.45),
		SoundEquip:   tone.Concat(tone.Sine(rate, 660, 0.07, 0.4), tone.Sine(rate, 990, 0.09, 0.4)),
		SoundAdvance: tone.Concat(tone.Sine(rate, 523.25, 0.08, 0.45), tone.Sine(rate, 783.99, 0.12, 0.45)),
		soundChime1:  c5,
		soundChime2:  tone.Concat(c5, e5),
		soundChime3:  tone.Concat(c5, e5, g5),
	}
	for id, pcm := range effects {
		am.players[id] = ctx.NewPlayerFromBytes(pcm)
	}

	log.Printf("[AudioManager] 合成音效 %d 个（采样率 %d Hz）", len(am.players), rate)
	return am
}

// Play 播放音效
// 音效使用 SoundVolume 设置控制音量，单次播放后停止
//
// 参数：
//   - soundID: 音效ID（如 SoundSplash）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) Play(soundID string) bool {
	// 检查音效是否启用
	if am.settingsManager != nil {
		if !am.settingsManager.GetSettings().SoundEnabled {
			return false // 音效已禁用
		}
	}

	player, exists := am.players[soundID]
	if !exists {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return false
	}

	player.SetVolume(am.getSoundVolume())

	// 重置并播放
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()

	return true
}

// PlayStarChime 播放结算钟声，每颗星一记
//
// 参数：
//   - stars: 星级 1~3，范围外钳制
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayStarChime(stars int) bool {
	if stars < 1 {
		stars = 1
	}
	if stars > 3 {
		stars = 3
	}
	switch stars {
	case 1:
		return am.Play(soundChime1)
	case 2:
		return am.Play(soundChime2)
	default:
		return am.Play(soundChime3)
	}
}

// SetSoundVolume 设置音效音量
// 此方法会影响后续播放的所有音效
//
// 参数：
//   - volume: 音量值 (0.0 ~ 1.0)
func (am *AudioManager) SetSoundVolume(volume float64) {
	// 更新 SettingsManager
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}

	// 更新所有缓存的播放器
	for _, player := range am.players {
		player.SetVolume(volume)
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}
